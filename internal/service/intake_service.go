package service

import (
	"context"
	"fmt"
	"strings"

	"inventory-sync-gateway/internal/core/domain"
	"inventory-sync-gateway/internal/core/ports"
	"inventory-sync-gateway/pkg/apperror"
	"inventory-sync-gateway/pkg/metrics"

	"github.com/rs/zerolog"
)

// IntakeServiceImpl implements ports.IntakeService.
type IntakeServiceImpl struct {
	txRepo   ports.TransactionRepository
	syncSvc  ports.SyncService
	deviceID string
	log      zerolog.Logger
}

// NewIntakeService creates a new IntakeServiceImpl. deviceID is the stable
// originating-device identity stamped on every transaction.
func NewIntakeService(
	txRepo ports.TransactionRepository,
	syncSvc ports.SyncService,
	deviceID string,
	log zerolog.Logger,
) *IntakeServiceImpl {
	return &IntakeServiceImpl{
		txRepo:   txRepo,
		syncSvc:  syncSvc,
		deviceID: deviceID,
		log:      log,
	}
}

// Submit validates, persists and then attempts to sync one inventory
// operation. Storage success alone decides the outcome: a failed or partial
// sync pass still returns success with the transaction pending delivery.
func (s *IntakeServiceImpl) Submit(ctx context.Context, req ports.IntakeRequest) (*ports.IntakeResult, error) {
	if strings.TrimSpace(req.RackLocation) == "" {
		return nil, apperror.ErrEmptyRackLocation()
	}
	if !req.Operation.IsValid() {
		return nil, apperror.ErrInvalidOperation(string(req.Operation))
	}

	tx := domain.NewTransaction(req.Code, req.Operation, req.RackLocation, s.deviceID)

	if err := s.txRepo.Create(ctx, tx); err != nil {
		return nil, apperror.ErrStorage(fmt.Errorf("store transaction: %w", err))
	}
	metrics.IntakeTransactions.WithLabelValues(string(req.Operation)).Inc()

	s.log.Info().
		Str("tx_id", tx.ID.String()).
		Str("operation", string(tx.Operation)).
		Str("rack", tx.RackLocation).
		Msg("transaction recorded")

	// The delivery outcome is informational only and never rolls back the
	// stored record.
	if _, err := s.syncSvc.RunPass(ctx); err != nil {
		s.log.Warn().Err(err).Str("tx_id", tx.ID.String()).Msg("sync pass after intake failed")
		return &ports.IntakeResult{
			TransactionID: tx.ID,
			Synced:        false,
			Message:       "stored, delivery pending",
		}, nil
	}

	stored, err := s.txRepo.GetByID(ctx, tx.ID)
	if err != nil || stored == nil {
		return &ports.IntakeResult{
			TransactionID: tx.ID,
			Synced:        false,
			Message:       "stored, delivery pending",
		}, nil
	}

	msg := "stored, delivery pending"
	if stored.Synced {
		msg = "stored and delivered"
	}
	return &ports.IntakeResult{
		TransactionID: tx.ID,
		Synced:        stored.Synced,
		Message:       msg,
	}, nil
}
