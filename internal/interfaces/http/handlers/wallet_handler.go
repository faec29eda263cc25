package handlers

import (
	"context"
	"net/http"
	"time"

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

type walletService interface {
	GetBalance(ctx context.Context, accountID uuid.UUID) (*usecases.BalanceInfo, error)
	GetLedger(ctx context.Context, accountID uuid.UUID, filter entities.LedgerFilter, limit, offset int) ([]*entities.LedgerEntry, int64, error)
	GetEarnings(ctx context.Context, accountID uuid.UUID, filter entities.LedgerFilter) (decimal.Decimal, error)
}

// WalletHandler handles wallet read endpoints
type WalletHandler struct {
	walletUsecase walletService
}

// NewWalletHandler creates a new wallet handler
func NewWalletHandler(walletUsecase *usecases.WalletUsecase) *WalletHandler {
	return &WalletHandler{walletUsecase: walletUsecase}
}

// GetWallet returns the caller's balance
// GET /api/v1/wallet
func (h *WalletHandler) GetWallet(c *gin.Context) {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Account not authenticated"))
		return
	}

	info, err := h.walletUsecase.GetBalance(c.Request.Context(), accountID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, info)
}

// parseLedgerFilter reads filter query parameters. Timestamps are
// RFC 3339; an unparseable value is an input error, not ignored.
func parseLedgerFilter(c *gin.Context) (entities.LedgerFilter, error) {
	var filter entities.LedgerFilter
	filter.Type = entities.EntryType(c.Query("type"))
	if ref := c.Query("referenceType"); ref != "" {
		filter.ReferenceTypes = []entities.ReferenceType{entities.ReferenceType(ref)}
	}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return filter, err
		}
		filter.From = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return filter, err
		}
		filter.To = &t
	}
	return filter, nil
}

// GetLedger returns the caller's ledger history, newest first
// GET /api/v1/wallet/ledger
func (h *WalletHandler) GetLedger(c *gin.Context) {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Account not authenticated"))
		return
	}

	filter, err := parseLedgerFilter(c)
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid time filter, expected RFC 3339"))
		return
	}

	var p utils.PaginationParams
	if err := c.ShouldBindQuery(&p); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	params := utils.GetPaginationParams(p.Page, p.Limit)
	entries, total, err := h.walletUsecase.GetLedger(c.Request.Context(), accountID, filter, params.Limit, params.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	if entries == nil {
		entries = []*entities.LedgerEntry{}
	}
	response.Success(c, http.StatusOK, gin.H{
		"entries":    entries,
		"pagination": utils.CalculateMeta(total, params.Page, params.Limit),
	})
}

// GetEarnings returns the caller's aggregated earnings
// GET /api/v1/wallet/earnings
func (h *WalletHandler) GetEarnings(c *gin.Context) {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Account not authenticated"))
		return
	}

	filter, err := parseLedgerFilter(c)
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid time filter, expected RFC 3339"))
		return
	}
	// Reference filters from the query apply; type is fixed to DEPOSIT
	// inside the usecase.

	earnings, err := h.walletUsecase.GetEarnings(c.Request.Context(), accountID, filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"earnings": earnings})
}
