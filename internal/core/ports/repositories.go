package ports

import (
	"context"

	"inventory-sync-gateway/internal/core/domain"

	"github.com/google/uuid"
)

// TransactionRepository defines persistence operations for inventory
// transactions. The store is append-only: records are never deleted and the
// only update is the synced flag.
type TransactionRepository interface {
	Create(ctx context.Context, tx *domain.Transaction) error
	// ListUnsynced returns all transactions with synced=false in creation
	// order. The result is a fresh snapshot on every call.
	ListUnsynced(ctx context.Context) ([]domain.Transaction, error)
	// MarkSynced sets the synced flag. Marking an already-synced transaction
	// is a no-op; an unknown id is a NotFound error.
	MarkSynced(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
}

// WebhookRepository defines persistence operations for webhook endpoint
// configurations.
type WebhookRepository interface {
	Create(ctx context.Context, cfg *domain.WebhookConfig) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.WebhookConfig, error)
	List(ctx context.Context) ([]domain.WebhookConfig, error)
}

// CredentialRepository persists the settings password hash. There is exactly
// one credential per deployment.
type CredentialRepository interface {
	// Get returns the current credential, or nil if none has been stored yet.
	Get(ctx context.Context) (*domain.SettingsCredential, error)
	// Set inserts or replaces the credential.
	Set(ctx context.Context, cred *domain.SettingsCredential) error
}
