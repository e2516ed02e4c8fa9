package handler

import (
	"inventory-sync-gateway/internal/adapter/http/dto"
	"inventory-sync-gateway/internal/core/domain"
	"inventory-sync-gateway/internal/core/ports"
	"inventory-sync-gateway/pkg/apperror"
	"inventory-sync-gateway/pkg/response"

	"github.com/gin-gonic/gin"
)

// IntakeHandler handles inventory operation intake.
type IntakeHandler struct {
	intakeSvc ports.IntakeService
}

// NewIntakeHandler creates a new IntakeHandler.
func NewIntakeHandler(intakeSvc ports.IntakeService) *IntakeHandler {
	return &IntakeHandler{intakeSvc: intakeSvc}
}

// Submit handles POST /api/v1/intake.
func (h *IntakeHandler) Submit(c *gin.Context) {
	var req dto.IntakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	result, err := h.intakeSvc.Submit(c.Request.Context(), ports.IntakeRequest{
		Code:         req.Code,
		Operation:    domain.OperationType(req.Operation),
		RackLocation: req.RackLocation,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.IntakeResponse{
		TransactionID: result.TransactionID.String(),
		Synced:        result.Synced,
		Message:       result.Message,
	})
}
