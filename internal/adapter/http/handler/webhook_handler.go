package handler

import (
	"time"

	"inventory-sync-gateway/internal/adapter/http/dto"
	"inventory-sync-gateway/internal/core/ports"
	"inventory-sync-gateway/pkg/apperror"
	"inventory-sync-gateway/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WebhookHandler handles webhook registry management.
type WebhookHandler struct {
	registrySvc ports.RegistryService
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(registrySvc ports.RegistryService) *WebhookHandler {
	return &WebhookHandler{registrySvc: registrySvc}
}

// Create handles POST /api/v1/webhooks.
func (h *WebhookHandler) Create(c *gin.Context) {
	var req dto.WebhookCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	cfg, err := h.registrySvc.Add(c.Request.Context(), req.URL, req.StockInEnabled, req.StockOutEnabled)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.WebhookResponse{
		ID:              cfg.ID.String(),
		URL:             cfg.URL,
		StockInEnabled:  cfg.StockInEnabled,
		StockOutEnabled: cfg.StockOutEnabled,
		CreatedAt:       cfg.CreatedAt.Format(time.RFC3339),
	})
}

// List handles GET /api/v1/webhooks.
func (h *WebhookHandler) List(c *gin.Context) {
	webhooks, err := h.registrySvc.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]dto.WebhookResponse, 0, len(webhooks))
	for _, w := range webhooks {
		out = append(out, dto.WebhookResponse{
			ID:              w.ID.String(),
			URL:             w.URL,
			StockInEnabled:  w.StockInEnabled,
			StockOutEnabled: w.StockOutEnabled,
			CreatedAt:       w.CreatedAt.Format(time.RFC3339),
		})
	}
	response.OK(c, out)
}

// Delete handles DELETE /api/v1/webhooks/:id.
func (h *WebhookHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid webhook id"))
		return
	}

	if err := h.registrySvc.Remove(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"deleted": id.String()})
}

// Test handles POST /api/v1/webhooks/:id/test — sends a probe to a
// registered endpoint.
func (h *WebhookHandler) Test(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid webhook id"))
		return
	}

	reachable, err := h.registrySvc.Test(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.ProbeResponse{Reachable: reachable})
}

// Probe handles POST /api/v1/webhooks/probe — checks reachability of an
// arbitrary URL before registering it.
func (h *WebhookHandler) Probe(c *gin.Context) {
	var req dto.ProbeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	reachable, err := h.registrySvc.Probe(c.Request.Context(), req.URL)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.ProbeResponse{URL: req.URL, Reachable: reachable})
}
