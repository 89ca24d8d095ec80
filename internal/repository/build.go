package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"APEX_BACK-END/internal/models"
)

// CreateBuild inserts a new build owned by build.UserID.
func (r *Repository) CreateBuild(ctx context.Context, build *models.Build) error {
	parts, err := json.Marshal(build.SelectedParts)
	if err != nil {
		return fmt.Errorf("failed to encode selected parts: %w", err)
	}

	query := `
		INSERT INTO builds (id, user_id, car_model, color, selected_parts, total_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err = r.pool.Exec(ctx, query,
		build.ID,
		build.UserID,
		build.CarModel,
		build.Color,
		parts,
		build.TotalPrice,
		build.CreatedAt,
		build.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create build: %w", err)
	}

	return nil
}

// GetBuildByID retrieves a build regardless of owner. Ownership is
// checked at the handler level so the caller can decide how much to
// reveal.
func (r *Repository) GetBuildByID(ctx context.Context, id uuid.UUID) (*models.Build, error) {
	query := `
		SELECT id, user_id, car_model, color, selected_parts, total_price, created_at, updated_at
		FROM builds
		WHERE id = $1
	`

	build, err := scanBuild(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBuildNotFound
		}
		return nil, fmt.Errorf("failed to get build: %w", err)
	}

	return build, nil
}

// ListBuildsByUser returns all builds owned by userID.
func (r *Repository) ListBuildsByUser(ctx context.Context, userID uuid.UUID) ([]models.Build, error) {
	query := `
		SELECT id, user_id, car_model, color, selected_parts, total_price, created_at, updated_at
		FROM builds
		WHERE user_id = $1
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list builds: %w", err)
	}
	defer rows.Close()

	builds := make([]models.Build, 0)
	for rows.Next() {
		build, err := scanBuild(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan build: %w", err)
		}
		builds = append(builds, *build)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list builds: %w", err)
	}

	return builds, nil
}

// UpdateBuild persists the mutable fields of build.
func (r *Repository) UpdateBuild(ctx context.Context, build *models.Build) error {
	parts, err := json.Marshal(build.SelectedParts)
	if err != nil {
		return fmt.Errorf("failed to encode selected parts: %w", err)
	}

	query := `
		UPDATE builds
		SET car_model = $1, color = $2, selected_parts = $3, total_price = $4, updated_at = $5
		WHERE id = $6
	`

	tag, err := r.pool.Exec(ctx, query,
		build.CarModel,
		build.Color,
		parts,
		build.TotalPrice,
		build.UpdatedAt,
		build.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update build: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrBuildNotFound
	}

	return nil
}

// DeleteBuild removes a build by ID.
func (r *Repository) DeleteBuild(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM builds WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete build: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrBuildNotFound
	}

	return nil
}

// scanBuild reads one build row, decoding the selected_parts JSONB
// column into its typed slice.
func scanBuild(row pgx.Row) (*models.Build, error) {
	var build models.Build
	var parts []byte

	if err := row.Scan(
		&build.ID,
		&build.UserID,
		&build.CarModel,
		&build.Color,
		&parts,
		&build.TotalPrice,
		&build.CreatedAt,
		&build.UpdatedAt,
	); err != nil {
		return nil, err
	}

	build.SelectedParts = make([]models.BuildPart, 0)
	if len(parts) > 0 {
		if err := json.Unmarshal(parts, &build.SelectedParts); err != nil {
			return nil, fmt.Errorf("failed to decode selected parts: %w", err)
		}
	}

	return &build, nil
}
