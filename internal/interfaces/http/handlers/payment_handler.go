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

type paymentService interface {
	CreditPayment(ctx context.Context, input usecases.CreditPaymentInput) (*entities.CreditResult, error)
	GetPayments(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*entities.Payment, int64, error)
}

// PaymentHandler handles payment crediting and history endpoints
type PaymentHandler struct {
	paymentUsecase paymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentUsecase *usecases.PaymentUsecase) *PaymentHandler {
	return &PaymentHandler{paymentUsecase: paymentUsecase}
}

type paymentWebhookInput struct {
	ProviderRef string          `json:"providerRef" binding:"required"`
	AccountID   uuid.UUID       `json:"accountId" binding:"required"`
	Tokens      decimal.Decimal `json:"tokens" binding:"required"`
	Payload     string          `json:"payload"`
}

// HandleWebhook credits a confirmed token purchase. The provider
// delivers at least once; redelivery returns the stored payment with
// alreadyProcessed set and a 200.
// POST /api/v1/payments/webhook
func (h *PaymentHandler) HandleWebhook(c *gin.Context) {
	var input paymentWebhookInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	result, err := h.paymentUsecase.CreditPayment(c.Request.Context(), usecases.CreditPaymentInput{
		ProviderRef: input.ProviderRef,
		AccountID:   input.AccountID,
		Tokens:      input.Tokens,
		RawPayload:  input.Payload,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	status := http.StatusCreated
	if result.AlreadyProcessed {
		status = http.StatusOK
	}
	response.Success(c, status, gin.H{
		"alreadyProcessed": result.AlreadyProcessed,
		"payment":          result.Payment,
		"wallet": gin.H{
			"balance": result.NewBalance,
		},
	})
}

// ListPayments lists the caller's payment history
// GET /api/v1/payments
func (h *PaymentHandler) ListPayments(c *gin.Context) {
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
	payments, total, err := h.paymentUsecase.GetPayments(c.Request.Context(), accountID, params.Limit, params.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	if payments == nil {
		payments = []*entities.Payment{}
	}
	response.Success(c, http.StatusOK, gin.H{
		"payments":   payments,
		"pagination": utils.CalculateMeta(total, params.Page, params.Limit),
	})
}
