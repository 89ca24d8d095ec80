package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"APEX_BACK-END/internal/models"
)

// CreateVerification stores a new password-reset code.
func (r *Repository) CreateVerification(ctx context.Context, v *models.AuthVerification) error {
	query := `
		INSERT INTO auth_verifications (id, user_id, email, code, expires_at, used, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		v.ID,
		v.UserID,
		v.Email,
		v.Code,
		v.ExpiresAt,
		v.Used,
		v.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create verification: %w", err)
	}

	return nil
}

// LatestVerification returns the most recent code issued for the user.
func (r *Repository) LatestVerification(ctx context.Context, userID uuid.UUID, email string) (*models.AuthVerification, error) {
	query := `
		SELECT id, user_id, email, code, expires_at, used, created_at
		FROM auth_verifications
		WHERE user_id = $1 AND email = $2
		ORDER BY created_at DESC
		LIMIT 1
	`

	var v models.AuthVerification
	err := r.pool.QueryRow(ctx, query, userID, email).Scan(
		&v.ID,
		&v.UserID,
		&v.Email,
		&v.Code,
		&v.ExpiresAt,
		&v.Used,
		&v.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrVerificationNotFound
		}
		return nil, fmt.Errorf("failed to get verification: %w", err)
	}

	return &v, nil
}

// ActiveVerification returns the newest unused, unexpired code for the
// user, if any.
func (r *Repository) ActiveVerification(ctx context.Context, userID uuid.UUID) (*models.AuthVerification, error) {
	query := `
		SELECT id, user_id, email, code, expires_at, used, created_at
		FROM auth_verifications
		WHERE user_id = $1 AND used = FALSE AND expires_at > NOW()
		ORDER BY created_at DESC
		LIMIT 1
	`

	var v models.AuthVerification
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&v.ID,
		&v.UserID,
		&v.Email,
		&v.Code,
		&v.ExpiresAt,
		&v.Used,
		&v.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrVerificationNotFound
		}
		return nil, fmt.Errorf("failed to get active verification: %w", err)
	}

	return &v, nil
}

// ResetPassword updates the user's password hash and marks the
// verification code used in one transaction.
func (r *Repository) ResetPassword(ctx context.Context, userID, verificationID uuid.UUID, passwordHash string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE users SET password_hash = $1, updated_at = $2 WHERE id = $3`,
		passwordHash, time.Now(), userID); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`UPDATE auth_verifications SET used = TRUE WHERE id = $1`,
		verificationID); err != nil {
		return fmt.Errorf("failed to mark verification used: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
