package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"stream-ledger.backend/internal/domain/entities"
	domainerrors "stream-ledger.backend/internal/domain/errors"
	"stream-ledger.backend/internal/interfaces/http/middleware"
	"stream-ledger.backend/internal/interfaces/http/response"
	"stream-ledger.backend/internal/usecases"
)

type unlockService interface {
	UnlockMedia(ctx context.Context, viewerID, mediaID uuid.UUID) (*entities.UnlockResult, error)
}

// MediaHandler handles media unlock endpoints
type MediaHandler struct {
	unlockUsecase unlockService
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(unlockUsecase *usecases.UnlockUsecase) *MediaHandler {
	return &MediaHandler{unlockUsecase: unlockUsecase}
}

// UnlockMedia charges the caller for permanent access to one media item
// POST /api/v1/media/:id/unlock
func (h *MediaHandler) UnlockMedia(c *gin.Context) {
	mediaID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid media ID"))
		return
	}

	viewerID, ok := middleware.GetAccountID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Account not authenticated"))
		return
	}

	result, err := h.unlockUsecase.UnlockMedia(c.Request.Context(), viewerID, mediaID)
	if err != nil {
		response.Error(c, err)
		return
	}

	status := http.StatusCreated
	if result.AlreadyUnlocked {
		status = http.StatusOK
	}
	response.Success(c, status, result)
}
