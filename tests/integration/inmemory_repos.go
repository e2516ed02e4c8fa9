package integration

import (
	"context"
	"fmt"
	"sync"

	"inventory-sync-gateway/internal/core/domain"

	"github.com/google/uuid"
)

// --- In-Memory Transaction Repo ---

type inMemoryTransactionRepo struct {
	mu    sync.RWMutex
	txs   map[uuid.UUID]*domain.Transaction
	order []uuid.UUID // insertion order
}

func newInMemoryTransactionRepo() *inMemoryTransactionRepo {
	return &inMemoryTransactionRepo{txs: make(map[uuid.UUID]*domain.Transaction)}
}

func (r *inMemoryTransactionRepo) Create(ctx context.Context, tx *domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *tx
	r.txs[tx.ID] = &cp
	r.order = append(r.order, tx.ID)
	return nil
}

func (r *inMemoryTransactionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tx, ok := r.txs[id]
	if !ok {
		return nil, nil
	}
	cp := *tx
	return &cp, nil
}

func (r *inMemoryTransactionRepo) ListUnsynced(ctx context.Context) ([]domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Transaction
	for _, id := range r.order {
		if tx := r.txs[id]; !tx.Synced {
			out = append(out, *tx)
		}
	}
	return out, nil
}

func (r *inMemoryTransactionRepo) MarkSynced(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	tx, ok := r.txs[id]
	if !ok {
		return fmt.Errorf("transaction not found: %s", id)
	}
	tx.Synced = true
	return nil
}

// --- In-Memory Webhook Repo ---

type inMemoryWebhookRepo struct {
	mu       sync.RWMutex
	webhooks map[uuid.UUID]*domain.WebhookConfig
	order    []uuid.UUID
}

func newInMemoryWebhookRepo() *inMemoryWebhookRepo {
	return &inMemoryWebhookRepo{webhooks: make(map[uuid.UUID]*domain.WebhookConfig)}
}

func (r *inMemoryWebhookRepo) Create(ctx context.Context, cfg *domain.WebhookConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *cfg
	r.webhooks[cfg.ID] = &cp
	r.order = append(r.order, cfg.ID)
	return nil
}

func (r *inMemoryWebhookRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.webhooks[id]; !ok {
		return fmt.Errorf("webhook not found: %s", id)
	}
	delete(r.webhooks, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *inMemoryWebhookRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.WebhookConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg, ok := r.webhooks[id]
	if !ok {
		return nil, nil
	}
	cp := *cfg
	return &cp, nil
}

func (r *inMemoryWebhookRepo) List(ctx context.Context) ([]domain.WebhookConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.WebhookConfig
	for _, id := range r.order {
		out = append(out, *r.webhooks[id])
	}
	return out, nil
}

// --- In-Memory Credential Repo ---

type inMemoryCredentialRepo struct {
	mu   sync.RWMutex
	cred *domain.SettingsCredential
}

func newInMemoryCredentialRepo() *inMemoryCredentialRepo {
	return &inMemoryCredentialRepo{}
}

func (r *inMemoryCredentialRepo) Get(ctx context.Context) (*domain.SettingsCredential, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.cred == nil {
		return nil, nil
	}
	cp := *r.cred
	return &cp, nil
}

func (r *inMemoryCredentialRepo) Set(ctx context.Context, cred *domain.SettingsCredential) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *cred
	r.cred = &cp
	return nil
}
