package postgres

import (
	"context"
	"errors"
	"fmt"

	"inventory-sync-gateway/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// TransactionRepo implements ports.TransactionRepository.
type TransactionRepo struct {
	pool Pool
}

// NewTransactionRepo creates a new TransactionRepo.
func NewTransactionRepo(pool Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

// Create inserts a new transaction.
func (r *TransactionRepo) Create(ctx context.Context, t *domain.Transaction) error {
	query := `INSERT INTO transactions (id, code, operation, rack_location, ts, device_id, synced)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		t.ID, t.Code, string(t.Operation), t.RackLocation, t.Timestamp, t.DeviceID, t.Synced,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// ListUnsynced returns all unsynced transactions in creation order.
func (r *TransactionRepo) ListUnsynced(ctx context.Context) ([]domain.Transaction, error) {
	query := `SELECT id, code, operation, rack_location, ts, device_id, synced
		FROM transactions WHERE synced = FALSE ORDER BY ts, id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list unsynced transactions: %w", err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		var t domain.Transaction
		var op string
		if err := rows.Scan(&t.ID, &t.Code, &op, &t.RackLocation, &t.Timestamp, &t.DeviceID, &t.Synced); err != nil {
			return nil, fmt.Errorf("scan transaction row: %w", err)
		}
		t.Operation = domain.OperationType(op)
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transaction rows: %w", err)
	}
	return txns, nil
}

// MarkSynced sets a transaction's synced flag. Re-marking an already-synced
// row is a no-op; an unknown id is an error.
func (r *TransactionRepo) MarkSynced(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE transactions SET synced = TRUE WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("mark transaction synced: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("transaction not found: %s: %w", id, pgx.ErrNoRows)
	}
	return nil
}

// GetByID fetches a transaction by id. Returns nil, nil when absent.
func (r *TransactionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	query := `SELECT id, code, operation, rack_location, ts, device_id, synced
		FROM transactions WHERE id = $1`

	var t domain.Transaction
	var op string
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.Code, &op, &t.RackLocation, &t.Timestamp, &t.DeviceID, &t.Synced,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan transaction: %w", err)
	}
	t.Operation = domain.OperationType(op)
	return &t, nil
}
