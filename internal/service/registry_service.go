package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"inventory-sync-gateway/internal/core/domain"
	"inventory-sync-gateway/internal/core/ports"
	"inventory-sync-gateway/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const probeCacheTTL = 30 * time.Second

// ProbeCache caches recent probe outcomes so the settings surface does not
// hammer endpoints on every render. A nil cache disables caching.
type ProbeCache interface {
	Get(ctx context.Context, url string) (found bool, reachable bool, err error)
	Set(ctx context.Context, url string, reachable bool, ttl time.Duration) error
}

// RegistryServiceImpl implements ports.RegistryService.
type RegistryServiceImpl struct {
	webhookRepo ports.WebhookRepository
	delivery    ports.DeliveryClient
	probeCache  ProbeCache
	log         zerolog.Logger
}

// NewRegistryService creates a new RegistryServiceImpl.
func NewRegistryService(
	webhookRepo ports.WebhookRepository,
	delivery ports.DeliveryClient,
	probeCache ProbeCache,
	log zerolog.Logger,
) *RegistryServiceImpl {
	return &RegistryServiceImpl{
		webhookRepo: webhookRepo,
		delivery:    delivery,
		probeCache:  probeCache,
		log:         log,
	}
}

// Add registers a new endpoint. Duplicate URLs are allowed; each registered
// copy receives independent deliveries.
func (s *RegistryServiceImpl) Add(ctx context.Context, url string, stockInEnabled, stockOutEnabled bool) (*domain.WebhookConfig, error) {
	if strings.TrimSpace(url) == "" {
		return nil, apperror.ErrEmptyURL()
	}

	cfg := &domain.WebhookConfig{
		ID:              uuid.New(),
		URL:             url,
		StockInEnabled:  stockInEnabled,
		StockOutEnabled: stockOutEnabled,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.webhookRepo.Create(ctx, cfg); err != nil {
		return nil, apperror.ErrStorage(fmt.Errorf("store webhook: %w", err))
	}

	s.log.Info().
		Str("webhook_id", cfg.ID.String()).
		Str("url", cfg.URL).
		Bool("stock_in", cfg.StockInEnabled).
		Bool("stock_out", cfg.StockOutEnabled).
		Msg("webhook registered")

	return cfg, nil
}

// Remove deletes an endpoint from the registry. Transactions already synced
// through it keep their flag; unsynced ones simply stop targeting it on the
// next pass.
func (s *RegistryServiceImpl) Remove(ctx context.Context, id uuid.UUID) error {
	existing, err := s.webhookRepo.GetByID(ctx, id)
	if err != nil {
		return apperror.ErrStorage(fmt.Errorf("find webhook: %w", err))
	}
	if existing == nil {
		return apperror.ErrNotFound("webhook")
	}
	if err := s.webhookRepo.Delete(ctx, id); err != nil {
		return apperror.ErrStorage(fmt.Errorf("delete webhook: %w", err))
	}
	s.log.Info().Str("webhook_id", id.String()).Msg("webhook removed")
	return nil
}

// List returns every registered endpoint.
func (s *RegistryServiceImpl) List(ctx context.Context) ([]domain.WebhookConfig, error) {
	webhooks, err := s.webhookRepo.List(ctx)
	if err != nil {
		return nil, apperror.ErrStorage(fmt.Errorf("list webhooks: %w", err))
	}
	return webhooks, nil
}

// Probe checks reachability of a URL. The outcome is cached briefly; a cache
// failure degrades to probing directly.
func (s *RegistryServiceImpl) Probe(ctx context.Context, url string) (bool, error) {
	if strings.TrimSpace(url) == "" {
		return false, apperror.ErrEmptyURL()
	}

	if s.probeCache != nil {
		found, reachable, err := s.probeCache.Get(ctx, url)
		if err != nil {
			s.log.Warn().Err(err).Str("url", url).Msg("probe cache read failed, probing directly")
		} else if found {
			return reachable, nil
		}
	}

	reachable := s.delivery.Probe(ctx, url) == nil

	if s.probeCache != nil {
		if err := s.probeCache.Set(ctx, url, reachable, probeCacheTTL); err != nil {
			s.log.Warn().Err(err).Str("url", url).Msg("probe cache write failed")
		}
	}

	return reachable, nil
}

// Test probes a registered endpoint by id.
func (s *RegistryServiceImpl) Test(ctx context.Context, id uuid.UUID) (bool, error) {
	cfg, err := s.webhookRepo.GetByID(ctx, id)
	if err != nil {
		return false, apperror.ErrStorage(fmt.Errorf("find webhook: %w", err))
	}
	if cfg == nil {
		return false, apperror.ErrNotFound("webhook")
	}
	return s.Probe(ctx, cfg.URL)
}
