package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"inventory-sync-gateway/internal/core/domain"
	"inventory-sync-gateway/internal/core/ports"
	"inventory-sync-gateway/pkg/apperror"
	"inventory-sync-gateway/pkg/metrics"

	"github.com/rs/zerolog"
)

// SyncServiceImpl implements ports.SyncService. It is the sole writer of the
// synced flag.
type SyncServiceImpl struct {
	txRepo      ports.TransactionRepository
	webhookRepo ports.WebhookRepository
	delivery    ports.DeliveryClient
	log         zerolog.Logger

	// passMu serializes passes: at most one in flight, later callers queue
	// behind the current one and run their own pass when it finishes.
	passMu sync.Mutex
}

// NewSyncService creates a new SyncServiceImpl.
func NewSyncService(
	txRepo ports.TransactionRepository,
	webhookRepo ports.WebhookRepository,
	delivery ports.DeliveryClient,
	log zerolog.Logger,
) *SyncServiceImpl {
	return &SyncServiceImpl{
		txRepo:      txRepo,
		webhookRepo: webhookRepo,
		delivery:    delivery,
		log:         log,
	}
}

// RunPass reconciles every unsynced transaction against the webhook registry.
//
// The registry is snapshotted once at the start of the pass; concurrent
// registry edits take effect on the next pass. Each transaction is
// all-or-nothing for the pass: the first failed delivery short-circuits its
// remaining endpoints and leaves it unsynced, so every subscribed endpoint
// (including ones already reached) is re-delivered to on the next pass.
// Delivery is therefore at-least-once per endpoint until a pass succeeds for
// the whole subscribed set.
func (s *SyncServiceImpl) RunPass(ctx context.Context) (*ports.PassResult, error) {
	s.passMu.Lock()
	defer s.passMu.Unlock()

	start := time.Now()
	defer func() {
		metrics.PassDuration.Observe(time.Since(start).Seconds())
	}()

	registry, err := s.webhookRepo.List(ctx)
	if err != nil {
		metrics.SyncPasses.WithLabelValues("aborted").Inc()
		return nil, apperror.ErrStorage(fmt.Errorf("list webhooks: %w", err))
	}

	unsynced, err := s.txRepo.ListUnsynced(ctx)
	if err != nil {
		metrics.SyncPasses.WithLabelValues("aborted").Inc()
		return nil, apperror.ErrStorage(fmt.Errorf("list unsynced transactions: %w", err))
	}

	res := &ports.PassResult{Processed: len(unsynced)}

	for i := range unsynced {
		tx := &unsynced[i]

		subscribed := subscribedEndpoints(registry, tx.Operation)
		if len(subscribed) == 0 {
			// No endpoint cares about this operation kind: trivially fully
			// delivered.
			if err := s.txRepo.MarkSynced(ctx, tx.ID); err != nil {
				metrics.SyncPasses.WithLabelValues("aborted").Inc()
				return nil, apperror.ErrStorage(fmt.Errorf("mark synced %s: %w", tx.ID, err))
			}
			res.Synced++
			continue
		}

		delivered := true
		for _, w := range subscribed {
			res.Deliveries++
			if err := s.delivery.Deliver(ctx, w.URL, tx); err != nil {
				res.Failures++
				metrics.Deliveries.WithLabelValues("failure").Inc()
				s.log.Warn().
					Err(err).
					Str("tx_id", tx.ID.String()).
					Str("url", w.URL).
					Msg("webhook delivery failed, transaction stays unsynced")
				delivered = false
				break
			}
			metrics.Deliveries.WithLabelValues("success").Inc()
		}
		if !delivered {
			continue
		}

		if err := s.txRepo.MarkSynced(ctx, tx.ID); err != nil {
			metrics.SyncPasses.WithLabelValues("aborted").Inc()
			return nil, apperror.ErrStorage(fmt.Errorf("mark synced %s: %w", tx.ID, err))
		}
		res.Synced++
	}

	res.Remaining = res.Processed - res.Synced
	metrics.UnsyncedBacklog.Set(float64(res.Remaining))

	outcome := "clean"
	if res.Failures > 0 {
		outcome = "partial"
	}
	metrics.SyncPasses.WithLabelValues(outcome).Inc()

	if res.Processed > 0 {
		s.log.Info().
			Int("processed", res.Processed).
			Int("synced", res.Synced).
			Int("remaining", res.Remaining).
			Int("deliveries", res.Deliveries).
			Int("failures", res.Failures).
			Dur("duration", time.Since(start)).
			Msg("sync pass completed")
	}

	return res, nil
}

// Backlog returns the transactions still awaiting delivery, in intake order.
func (s *SyncServiceImpl) Backlog(ctx context.Context) ([]domain.Transaction, error) {
	unsynced, err := s.txRepo.ListUnsynced(ctx)
	if err != nil {
		return nil, apperror.ErrStorage(fmt.Errorf("list unsynced transactions: %w", err))
	}
	return unsynced, nil
}

// RunSweeper triggers a recovery pass every interval until ctx is cancelled.
// It picks up transactions left unsynced by earlier failed passes, e.g. after
// connectivity returns.
func (s *SyncServiceImpl) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.log.Info().Dur("interval", interval).Msg("sync sweeper started")

	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("sync sweeper stopped")
			return
		case <-ticker.C:
			if _, err := s.RunPass(ctx); err != nil {
				s.log.Error().Err(err).Msg("recovery sweep failed")
			}
		}
	}
}

// subscribedEndpoints filters the registry snapshot down to endpoints whose
// enabled flag matches the operation kind.
func subscribedEndpoints(registry []domain.WebhookConfig, op domain.OperationType) []domain.WebhookConfig {
	var out []domain.WebhookConfig
	for _, w := range registry {
		if w.SubscribesTo(op) {
			out = append(out, w)
		}
	}
	return out
}
