package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"inventory-sync-gateway/internal/core/domain"
	"inventory-sync-gateway/internal/core/ports/mocks"
	"inventory-sync-gateway/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// memProbeCache is an in-memory ProbeCache for tests.
type memProbeCache struct {
	mu      sync.Mutex
	entries map[string]bool
	getErr  error
	setErr  error
}

func newMemProbeCache() *memProbeCache {
	return &memProbeCache{entries: make(map[string]bool)}
}

func (c *memProbeCache) Get(_ context.Context, url string) (bool, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return false, false, c.getErr
	}
	reachable, ok := c.entries[url]
	return ok, reachable, nil
}

func (c *memProbeCache) Set(_ context.Context, url string, reachable bool, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.setErr != nil {
		return c.setErr
	}
	c.entries[url] = reachable
	return nil
}

func TestRegistryService_Add(t *testing.T) {
	ctrl := gomock.NewController(t)
	webhookRepo := mocks.NewMockWebhookRepository(ctrl)
	delivery := mocks.NewMockDeliveryClient(ctrl)

	var stored *domain.WebhookConfig
	webhookRepo.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, cfg *domain.WebhookConfig) error {
			stored = cfg
			return nil
		})

	svc := NewRegistryService(webhookRepo, delivery, nil, zerolog.Nop())
	cfg, err := svc.Add(context.Background(), "http://a.internal/hook", true, false)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, cfg.ID)
	assert.True(t, cfg.StockInEnabled)
	assert.False(t, cfg.StockOutEnabled)
	assert.Equal(t, stored, cfg)
}

func TestRegistryService_AddEmptyURL(t *testing.T) {
	ctrl := gomock.NewController(t)
	webhookRepo := mocks.NewMockWebhookRepository(ctrl)
	delivery := mocks.NewMockDeliveryClient(ctrl)

	svc := NewRegistryService(webhookRepo, delivery, nil, zerolog.Nop())
	_, err := svc.Add(context.Background(), "  ", true, true)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VAL_004", appErr.Code)
}

func TestRegistryService_AddAllowsDuplicateURLs(t *testing.T) {
	ctrl := gomock.NewController(t)
	webhookRepo := mocks.NewMockWebhookRepository(ctrl)
	delivery := mocks.NewMockDeliveryClient(ctrl)

	webhookRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	svc := NewRegistryService(webhookRepo, delivery, nil, zerolog.Nop())

	first, err := svc.Add(context.Background(), "http://a.internal/hook", true, true)
	require.NoError(t, err)
	second, err := svc.Add(context.Background(), "http://a.internal/hook", true, true)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestRegistryService_Remove(t *testing.T) {
	ctrl := gomock.NewController(t)
	webhookRepo := mocks.NewMockWebhookRepository(ctrl)
	delivery := mocks.NewMockDeliveryClient(ctrl)

	id := uuid.New()
	webhookRepo.EXPECT().GetByID(gomock.Any(), id).Return(&domain.WebhookConfig{ID: id, URL: "http://a.internal/hook"}, nil)
	webhookRepo.EXPECT().Delete(gomock.Any(), id).Return(nil)

	svc := NewRegistryService(webhookRepo, delivery, nil, zerolog.Nop())
	require.NoError(t, svc.Remove(context.Background(), id))
}

func TestRegistryService_RemoveUnknown(t *testing.T) {
	ctrl := gomock.NewController(t)
	webhookRepo := mocks.NewMockWebhookRepository(ctrl)
	delivery := mocks.NewMockDeliveryClient(ctrl)

	id := uuid.New()
	webhookRepo.EXPECT().GetByID(gomock.Any(), id).Return(nil, nil)

	svc := NewRegistryService(webhookRepo, delivery, nil, zerolog.Nop())
	err := svc.Remove(context.Background(), id)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "STG_002", appErr.Code)
}

func TestRegistryService_ProbeCachesResult(t *testing.T) {
	ctrl := gomock.NewController(t)
	webhookRepo := mocks.NewMockWebhookRepository(ctrl)
	delivery := mocks.NewMockDeliveryClient(ctrl)
	cache := newMemProbeCache()

	// The endpoint is probed once; the second call is served from cache.
	delivery.EXPECT().Probe(gomock.Any(), "http://a.internal/hook").Return(nil).Times(1)

	svc := NewRegistryService(webhookRepo, delivery, cache, zerolog.Nop())

	reachable, err := svc.Probe(context.Background(), "http://a.internal/hook")
	require.NoError(t, err)
	assert.True(t, reachable)

	reachable, err = svc.Probe(context.Background(), "http://a.internal/hook")
	require.NoError(t, err)
	assert.True(t, reachable)
}

func TestRegistryService_ProbeUnreachable(t *testing.T) {
	ctrl := gomock.NewController(t)
	webhookRepo := mocks.NewMockWebhookRepository(ctrl)
	delivery := mocks.NewMockDeliveryClient(ctrl)

	delivery.EXPECT().Probe(gomock.Any(), "http://down.internal/hook").Return(errors.New("connection refused"))

	svc := NewRegistryService(webhookRepo, delivery, nil, zerolog.Nop())
	reachable, err := svc.Probe(context.Background(), "http://down.internal/hook")

	require.NoError(t, err, "unreachable is a result, not an error")
	assert.False(t, reachable)
}

func TestRegistryService_ProbeCacheFailureDegradesToDirect(t *testing.T) {
	ctrl := gomock.NewController(t)
	webhookRepo := mocks.NewMockWebhookRepository(ctrl)
	delivery := mocks.NewMockDeliveryClient(ctrl)
	cache := newMemProbeCache()
	cache.getErr = errors.New("redis down")
	cache.setErr = errors.New("redis down")

	delivery.EXPECT().Probe(gomock.Any(), "http://a.internal/hook").Return(nil)

	svc := NewRegistryService(webhookRepo, delivery, cache, zerolog.Nop())
	reachable, err := svc.Probe(context.Background(), "http://a.internal/hook")

	require.NoError(t, err)
	assert.True(t, reachable)
}

func TestRegistryService_Test(t *testing.T) {
	ctrl := gomock.NewController(t)
	webhookRepo := mocks.NewMockWebhookRepository(ctrl)
	delivery := mocks.NewMockDeliveryClient(ctrl)

	id := uuid.New()
	webhookRepo.EXPECT().GetByID(gomock.Any(), id).Return(&domain.WebhookConfig{ID: id, URL: "http://a.internal/hook"}, nil)
	delivery.EXPECT().Probe(gomock.Any(), "http://a.internal/hook").Return(nil)

	svc := NewRegistryService(webhookRepo, delivery, nil, zerolog.Nop())
	reachable, err := svc.Test(context.Background(), id)

	require.NoError(t, err)
	assert.True(t, reachable)
}

func TestRegistryService_TestUnknownWebhook(t *testing.T) {
	ctrl := gomock.NewController(t)
	webhookRepo := mocks.NewMockWebhookRepository(ctrl)
	delivery := mocks.NewMockDeliveryClient(ctrl)

	id := uuid.New()
	webhookRepo.EXPECT().GetByID(gomock.Any(), id).Return(nil, nil)

	svc := NewRegistryService(webhookRepo, delivery, nil, zerolog.Nop())
	_, err := svc.Test(context.Background(), id)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "STG_002", appErr.Code)
}
