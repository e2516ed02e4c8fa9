package ports

import (
	"context"
	"time"

	"inventory-sync-gateway/internal/core/domain"

	"github.com/google/uuid"
)

// DeliveryClient performs a single outbound delivery attempt of one
// transaction to one endpoint URL. It has no retry of its own; retry policy
// lives in the sync engine. Any non-2xx response or transport error is a
// failure.
type DeliveryClient interface {
	Deliver(ctx context.Context, url string, tx *domain.Transaction) error
	// Probe performs a lightweight connectivity check against an endpoint.
	Probe(ctx context.Context, url string) error
}

// SyncService reconciles unsynced transactions against the current webhook
// registry.
type SyncService interface {
	// RunPass executes one sync pass. Passes are serialized: a call arriving
	// while a pass is running blocks until that pass finishes, then runs its
	// own full pass and returns its result. Storage errors abort the pass
	// and are returned; individual delivery failures only leave their
	// transaction unsynced.
	RunPass(ctx context.Context) (*PassResult, error)
	// Backlog returns the transactions still awaiting delivery, in intake
	// order.
	Backlog(ctx context.Context) ([]domain.Transaction, error)
}

// PassResult summarizes one sync pass.
type PassResult struct {
	Processed  int // unsynced transactions examined
	Synced     int // transactions marked synced this pass
	Remaining  int // transactions still unsynced after the pass
	Deliveries int // delivery attempts made
	Failures   int // delivery attempts that failed
}

// IntakeService accepts scan results and records them durably.
type IntakeService interface {
	Submit(ctx context.Context, req IntakeRequest) (*IntakeResult, error)
}

// IntakeRequest holds validated input for one inventory operation.
type IntakeRequest struct {
	Code         string
	Operation    domain.OperationType
	RackLocation string
}

// IntakeResult reports the outcome of an intake. Stored is the only field
// that determines success; Synced is informational.
type IntakeResult struct {
	TransactionID uuid.UUID
	Synced        bool
	Message       string
}

// RegistryService manages webhook endpoint configurations on behalf of the
// settings surface.
type RegistryService interface {
	Add(ctx context.Context, url string, stockInEnabled, stockOutEnabled bool) (*domain.WebhookConfig, error)
	Remove(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]domain.WebhookConfig, error)
	// Probe checks reachability of an arbitrary URL without touching the
	// registry or the transaction store.
	Probe(ctx context.Context, url string) (bool, error)
	// Test probes a registered endpoint by id.
	Test(ctx context.Context, id uuid.UUID) (bool, error)
}

// AuthService gates access to the settings surface behind a password.
type AuthService interface {
	// Login exchanges the settings password for a session token.
	Login(ctx context.Context, password string) (string, time.Time, error)
	ChangePassword(ctx context.Context, current, next string) error
}

// HashService handles password hashing.
type HashService interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) (bool, error)
}

// TokenService handles session token operations.
type TokenService interface {
	Generate(deviceID string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed session token claims.
type TokenClaims struct {
	DeviceID string
}
