package usecases

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"stream-ledger.backend/internal/domain/entities"
	"stream-ledger.backend/internal/domain/repositories"
)

// WalletUsecase serves wallet reads: balance, ledger history and
// earnings aggregates. It never mutates state.
type WalletUsecase struct {
	walletRepo repositories.WalletRepository
	ledgerRepo repositories.LedgerRepository
	cache      BalanceCache
	currency   string
}

// NewWalletUsecase creates a new wallet usecase
func NewWalletUsecase(
	walletRepo repositories.WalletRepository,
	ledgerRepo repositories.LedgerRepository,
	cache BalanceCache,
	currency string,
) *WalletUsecase {
	return &WalletUsecase{
		walletRepo: walletRepo,
		ledgerRepo: ledgerRepo,
		cache:      cache,
		currency:   currency,
	}
}

// BalanceInfo is the wallet read surface exposed to handlers.
type BalanceInfo struct {
	Balance  decimal.Decimal `json:"balance"`
	Currency string          `json:"currency"`
}

// GetBalance returns the current balance, zero for accounts that have
// never been credited.
func (u *WalletUsecase) GetBalance(ctx context.Context, accountID uuid.UUID) (*BalanceInfo, error) {
	if u.cache != nil {
		if balance, ok := u.cache.Get(ctx, accountID); ok {
			return &BalanceInfo{Balance: balance, Currency: u.currency}, nil
		}
	}

	balance, err := u.walletRepo.GetBalance(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if u.cache != nil {
		u.cache.Set(ctx, accountID, balance)
	}
	return &BalanceInfo{Balance: balance, Currency: u.currency}, nil
}

// GetLedger lists ledger entries newest first
func (u *WalletUsecase) GetLedger(ctx context.Context, accountID uuid.UUID, filter entities.LedgerFilter, limit, offset int) ([]*entities.LedgerEntry, int64, error) {
	return u.ledgerRepo.ListByAccount(ctx, accountID, filter, limit, offset)
}

// GetEarnings sums DEPOSIT entries earned from media unlocks and stream
// activity; purchases via the payment provider are excluded.
func (u *WalletUsecase) GetEarnings(ctx context.Context, accountID uuid.UUID, filter entities.LedgerFilter) (decimal.Decimal, error) {
	filter.Type = entities.EntryTypeDeposit
	if len(filter.ReferenceTypes) == 0 {
		filter.ReferenceTypes = []entities.ReferenceType{
			entities.ReferenceTypeMediaUnlock,
			entities.ReferenceTypeStreamEarnings,
		}
	}
	return u.ledgerRepo.SumByAccount(ctx, accountID, filter)
}
