package postgres

import (
	"context"
	"errors"
	"fmt"

	"inventory-sync-gateway/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// CredentialRepo implements ports.CredentialRepository. The table holds at
// most one row.
type CredentialRepo struct {
	pool Pool
}

// NewCredentialRepo creates a new CredentialRepo.
func NewCredentialRepo(pool Pool) *CredentialRepo {
	return &CredentialRepo{pool: pool}
}

// Get returns the stored credential, or nil if none exists yet.
func (r *CredentialRepo) Get(ctx context.Context) (*domain.SettingsCredential, error) {
	query := `SELECT password_hash, updated_at FROM settings_credential WHERE id = TRUE`

	var cred domain.SettingsCredential
	err := r.pool.QueryRow(ctx, query).Scan(&cred.PasswordHash, &cred.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan credential: %w", err)
	}
	return &cred, nil
}

// Set inserts or replaces the credential.
func (r *CredentialRepo) Set(ctx context.Context, cred *domain.SettingsCredential) error {
	query := `INSERT INTO settings_credential (id, password_hash, updated_at)
		VALUES (TRUE, $1, $2)
		ON CONFLICT (id) DO UPDATE SET password_hash = $1, updated_at = $2`

	_, err := r.pool.Exec(ctx, query, cred.PasswordHash, cred.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert credential: %w", err)
	}
	return nil
}
