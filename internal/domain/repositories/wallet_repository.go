package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"stream-ledger.backend/internal/domain/entities"
)

// WalletRepository defines wallet data operations. Balances are only
// ever changed through ApplyDelta; there is no absolute overwrite.
type WalletRepository interface {
	// GetByAccountID returns the wallet row, or ErrNotFound if the
	// account has never been credited.
	GetByAccountID(ctx context.Context, accountID uuid.UUID) (*entities.Wallet, error)

	// GetBalance returns the current balance, zero (not an error) when
	// no wallet row exists yet.
	GetBalance(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, error)

	// ApplyDelta atomically adds delta to the balance, creating the
	// wallet at zero first if absent. Returns the new balance, or an
	// InsufficientFundsError if the result would go negative.
	ApplyDelta(ctx context.Context, accountID uuid.UUID, delta decimal.Decimal) (decimal.Decimal, error)
}
