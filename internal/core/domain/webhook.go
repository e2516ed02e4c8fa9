package domain

import (
	"time"

	"github.com/google/uuid"
)

// WebhookConfig is one configured remote endpoint. Each endpoint subscribes
// independently to stock-in and stock-out operations. URL uniqueness is not
// enforced: duplicate URLs each receive their own deliveries.
type WebhookConfig struct {
	ID              uuid.UUID `json:"id"`
	URL             string    `json:"url"`
	StockInEnabled  bool      `json:"stock_in_enabled"`
	StockOutEnabled bool      `json:"stock_out_enabled"`
	CreatedAt       time.Time `json:"created_at"`
}

// SubscribesTo reports whether this endpoint is interested in the given
// operation kind.
func (w *WebhookConfig) SubscribesTo(op OperationType) bool {
	switch op {
	case OperationStockIn:
		return w.StockInEnabled
	case OperationStockOut:
		return w.StockOutEnabled
	default:
		return false
	}
}
