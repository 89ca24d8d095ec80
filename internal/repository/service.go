package repository

import (
	"context"
	"fmt"

	"APEX_BACK-END/internal/models"
)

// ListServices returns the full catalog ordered by name.
func (r *Repository) ListServices(ctx context.Context) ([]models.Service, error) {
	query := `
		SELECT id, name, description, price, category, icon, created_at
		FROM services
		ORDER BY name
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	defer rows.Close()

	services := make([]models.Service, 0)
	for rows.Next() {
		var svc models.Service
		if err := rows.Scan(
			&svc.ID,
			&svc.Name,
			&svc.Description,
			&svc.Price,
			&svc.Category,
			&svc.Icon,
			&svc.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan service: %w", err)
		}
		services = append(services, svc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}

	return services, nil
}

// InsertServiceIfAbsent inserts svc unless a service with the same name
// exists. The ON CONFLICT clause makes the operation atomic, so two
// processes seeding at the same time cannot both insert. Returns true
// when a row was actually inserted.
func (r *Repository) InsertServiceIfAbsent(ctx context.Context, svc *models.Service) (bool, error) {
	query := `
		INSERT INTO services (id, name, description, price, category, icon, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (name) DO NOTHING
	`

	tag, err := r.pool.Exec(ctx, query,
		svc.ID,
		svc.Name,
		svc.Description,
		svc.Price,
		svc.Category,
		svc.Icon,
		svc.CreatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert service: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}
