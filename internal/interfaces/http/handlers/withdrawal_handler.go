package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"stream-ledger.backend/internal/domain/entities"
	domainerrors "stream-ledger.backend/internal/domain/errors"
	"stream-ledger.backend/internal/interfaces/http/middleware"
	"stream-ledger.backend/internal/interfaces/http/response"
	"stream-ledger.backend/internal/usecases"
	"stream-ledger.backend/pkg/utils"
)

type withdrawalService interface {
	CreateRequest(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal) (*entities.WithdrawalRequest, error)
	Review(ctx context.Context, requestID uuid.UUID, decision entities.ReviewDecision, reviewerID uuid.UUID, note string) (*entities.WithdrawalRequest, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*entities.WithdrawalRequest, int64, error)
	ListByStatus(ctx context.Context, status entities.WithdrawalStatus, limit, offset int) ([]*entities.WithdrawalRequest, int64, error)
}

// WithdrawalHandler handles withdrawal request and review endpoints
type WithdrawalHandler struct {
	withdrawalUsecase withdrawalService
}

// NewWithdrawalHandler creates a new withdrawal handler
func NewWithdrawalHandler(withdrawalUsecase *usecases.WithdrawalUsecase) *WithdrawalHandler {
	return &WithdrawalHandler{withdrawalUsecase: withdrawalUsecase}
}

type createWithdrawalInput struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// CreateWithdrawal records a PENDING payout request
// POST /api/v1/withdrawals
func (h *WithdrawalHandler) CreateWithdrawal(c *gin.Context) {
	var input createWithdrawalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Account not authenticated"))
		return
	}

	request, err := h.withdrawalUsecase.CreateRequest(c.Request.Context(), accountID, input.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, request)
}

// ListWithdrawals lists the caller's withdrawal requests
// GET /api/v1/withdrawals
func (h *WithdrawalHandler) ListWithdrawals(c *gin.Context) {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Account not authenticated"))
		return
	}

	var p utils.PaginationParams
	if err := c.ShouldBindQuery(&p); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	params := utils.GetPaginationParams(p.Page, p.Limit)
	requests, total, err := h.withdrawalUsecase.ListByAccount(c.Request.Context(), accountID, params.Limit, params.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	if requests == nil {
		requests = []*entities.WithdrawalRequest{}
	}
	response.Success(c, http.StatusOK, gin.H{
		"withdrawals": requests,
		"pagination":  utils.CalculateMeta(total, params.Page, params.Limit),
	})
}

// ListReviewQueue lists withdrawal requests by status for reviewers
// GET /api/v1/admin/withdrawals
func (h *WithdrawalHandler) ListReviewQueue(c *gin.Context) {
	status := entities.WithdrawalStatus(c.DefaultQuery("status", string(entities.WithdrawalStatusPending)))
	switch status {
	case entities.WithdrawalStatusPending, entities.WithdrawalStatusApproved, entities.WithdrawalStatusRejected:
	default:
		response.Error(c, domainerrors.BadRequest("Invalid status"))
		return
	}

	var p utils.PaginationParams
	if err := c.ShouldBindQuery(&p); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	params := utils.GetPaginationParams(p.Page, p.Limit)
	requests, total, err := h.withdrawalUsecase.ListByStatus(c.Request.Context(), status, params.Limit, params.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	if requests == nil {
		requests = []*entities.WithdrawalRequest{}
	}
	response.Success(c, http.StatusOK, gin.H{
		"withdrawals": requests,
		"pagination":  utils.CalculateMeta(total, params.Page, params.Limit),
	})
}

type reviewWithdrawalInput struct {
	Decision entities.ReviewDecision `json:"decision" binding:"required"`
	Note     string                  `json:"note"`
}

// ReviewWithdrawal approves or rejects a pending request
// POST /api/v1/admin/withdrawals/:id/review
func (h *WithdrawalHandler) ReviewWithdrawal(c *gin.Context) {
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid withdrawal request ID"))
		return
	}

	var input reviewWithdrawalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	reviewerID, ok := middleware.GetAccountID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Account not authenticated"))
		return
	}

	request, err := h.withdrawalUsecase.Review(c.Request.Context(), requestID, input.Decision, reviewerID, input.Note)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, request)
}
