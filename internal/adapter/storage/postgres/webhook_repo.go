package postgres

import (
	"context"
	"errors"
	"fmt"

	"inventory-sync-gateway/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// WebhookRepo implements ports.WebhookRepository.
type WebhookRepo struct {
	pool Pool
}

// NewWebhookRepo creates a new WebhookRepo.
func NewWebhookRepo(pool Pool) *WebhookRepo {
	return &WebhookRepo{pool: pool}
}

// Create inserts a new webhook configuration. No uniqueness constraint on
// URL: duplicates are permitted.
func (r *WebhookRepo) Create(ctx context.Context, cfg *domain.WebhookConfig) error {
	query := `INSERT INTO webhooks (id, url, stock_in_enabled, stock_out_enabled, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.pool.Exec(ctx, query,
		cfg.ID, cfg.URL, cfg.StockInEnabled, cfg.StockOutEnabled, cfg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert webhook: %w", err)
	}
	return nil
}

// Delete removes a webhook configuration by id.
func (r *WebhookRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM webhooks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete webhook: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("webhook not found: %s: %w", id, pgx.ErrNoRows)
	}
	return nil
}

// GetByID fetches a webhook configuration. Returns nil, nil when absent.
func (r *WebhookRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.WebhookConfig, error) {
	query := `SELECT id, url, stock_in_enabled, stock_out_enabled, created_at
		FROM webhooks WHERE id = $1`

	var w domain.WebhookConfig
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&w.ID, &w.URL, &w.StockInEnabled, &w.StockOutEnabled, &w.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan webhook: %w", err)
	}
	return &w, nil
}

// List returns all registered webhook configurations.
func (r *WebhookRepo) List(ctx context.Context) ([]domain.WebhookConfig, error) {
	query := `SELECT id, url, stock_in_enabled, stock_out_enabled, created_at
		FROM webhooks ORDER BY created_at, id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list webhooks: %w", err)
	}
	defer rows.Close()

	var webhooks []domain.WebhookConfig
	for rows.Next() {
		var w domain.WebhookConfig
		if err := rows.Scan(&w.ID, &w.URL, &w.StockInEnabled, &w.StockOutEnabled, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan webhook row: %w", err)
		}
		webhooks = append(webhooks, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate webhook rows: %w", err)
	}
	return webhooks, nil
}
