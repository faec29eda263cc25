package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"stream-ledger.backend/internal/domain/entities"
)

// LedgerRepository defines operations on the append-only ledger.
// Entries are never updated or deleted.
type LedgerRepository interface {
	// Append writes one immutable entry. BalanceAfter must be the value
	// returned by the wallet mutation in the same transaction.
	Append(ctx context.Context, entry *entities.LedgerEntry) error

	// ListByAccount returns entries newest first, with the total count
	// for pagination.
	ListByAccount(ctx context.Context, accountID uuid.UUID, filter entities.LedgerFilter, limit, offset int) ([]*entities.LedgerEntry, int64, error)

	// SumByAccount aggregates entry magnitudes over the filter. Derived
	// purely from stored entries, no hidden counters.
	SumByAccount(ctx context.Context, accountID uuid.UUID, filter entities.LedgerFilter) (decimal.Decimal, error)
}
