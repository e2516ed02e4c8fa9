package domain

import (
	"time"

	"github.com/google/uuid"
)

// OperationType represents the kind of inventory movement.
type OperationType string

const (
	OperationStockIn  OperationType = "STOCK_IN"
	OperationStockOut OperationType = "STOCK_OUT"
)

// IsValid reports whether the operation type is one of the known kinds.
func (o OperationType) IsValid() bool {
	return o == OperationStockIn || o == OperationStockOut
}

// Transaction is a durable record of one inventory operation performed on a
// device. It is append-only: after creation the only mutable field is Synced,
// which transitions false -> true exactly once.
type Transaction struct {
	ID           uuid.UUID     `json:"id"`
	Code         string        `json:"code"` // scanned barcode payload, opaque
	Operation    OperationType `json:"operation"`
	RackLocation string        `json:"rack_location"`
	Timestamp    time.Time     `json:"timestamp"`
	DeviceID     string        `json:"device_id"`
	Synced       bool          `json:"synced"`
}

// NewTransaction builds an unsynced transaction with a fresh id and the
// current UTC time.
func NewTransaction(code string, op OperationType, rackLocation, deviceID string) *Transaction {
	return &Transaction{
		ID:           uuid.New(),
		Code:         code,
		Operation:    op,
		RackLocation: rackLocation,
		Timestamp:    time.Now().UTC(),
		DeviceID:     deviceID,
		Synced:       false,
	}
}
