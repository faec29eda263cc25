package usecases

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	// DefaultCurrency is the platform token currency code.
	DefaultCurrency = "TOK"

	// DefaultMinWithdrawalTokens is the platform minimum for a
	// withdrawal request when no override is configured.
	DefaultMinWithdrawalTokens = "50"
)

// BalanceCache is a read-through cache for wallet balances. Settlement
// operations invalidate it after commit; a miss always falls back to
// the wallet store.
type BalanceCache interface {
	Get(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, bool)
	Set(ctx context.Context, accountID uuid.UUID, balance decimal.Decimal)
	Invalidate(ctx context.Context, accountIDs ...uuid.UUID)
}
