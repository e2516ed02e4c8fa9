package handler

import (
	"time"

	"inventory-sync-gateway/internal/adapter/http/dto"
	"inventory-sync-gateway/internal/core/ports"
	"inventory-sync-gateway/pkg/response"

	"github.com/gin-gonic/gin"
)

// SyncHandler exposes manual sync pass triggering.
type SyncHandler struct {
	syncSvc ports.SyncService
}

// NewSyncHandler creates a new SyncHandler.
func NewSyncHandler(syncSvc ports.SyncService) *SyncHandler {
	return &SyncHandler{syncSvc: syncSvc}
}

// Run handles POST /api/v1/sync. Concurrent calls queue behind the pass in
// flight and each run their own pass.
func (h *SyncHandler) Run(c *gin.Context) {
	result, err := h.syncSvc.RunPass(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.SyncResponse{
		Processed:  result.Processed,
		Synced:     result.Synced,
		Remaining:  result.Remaining,
		Deliveries: result.Deliveries,
		Failures:   result.Failures,
	})
}

// Backlog handles GET /api/v1/transactions/unsynced — lists the transactions
// still awaiting delivery, in intake order.
func (h *SyncHandler) Backlog(c *gin.Context) {
	backlog, err := h.syncSvc.Backlog(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]dto.TransactionResponse, 0, len(backlog))
	for _, tx := range backlog {
		out = append(out, dto.TransactionResponse{
			ID:           tx.ID.String(),
			Code:         tx.Code,
			Operation:    string(tx.Operation),
			RackLocation: tx.RackLocation,
			Timestamp:    tx.Timestamp.Format(time.RFC3339),
			DeviceID:     tx.DeviceID,
			Synced:       tx.Synced,
		})
	}
	response.OK(c, out)
}
