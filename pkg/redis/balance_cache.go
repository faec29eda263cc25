package redis

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const balanceKeyPrefix = "wallet:balance:"

var (
	setBalanceValue = Set
	getBalanceValue = Get
	delBalanceValue = Del
)

// BalanceCache is a short-lived read cache in front of the wallet
// store. Settlement operations invalidate affected accounts after
// commit; stale reads are bounded by the TTL either way.
type BalanceCache struct {
	ttl time.Duration
}

// NewBalanceCache creates a new balance cache
func NewBalanceCache(ttl time.Duration) *BalanceCache {
	return &BalanceCache{ttl: ttl}
}

// Get returns the cached balance and whether it was present
func (c *BalanceCache) Get(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, bool) {
	val, err := getBalanceValue(ctx, balanceKeyPrefix+accountID.String())
	if err != nil {
		return decimal.Zero, false
	}
	balance, err := decimal.NewFromString(val)
	if err != nil {
		return decimal.Zero, false
	}
	return balance, true
}

// Set caches a balance for the configured TTL. Cache errors are
// swallowed: the wallet store stays authoritative.
func (c *BalanceCache) Set(ctx context.Context, accountID uuid.UUID, balance decimal.Decimal) {
	_ = setBalanceValue(ctx, balanceKeyPrefix+accountID.String(), balance.String(), c.ttl)
}

// Invalidate drops cached balances for the given accounts
func (c *BalanceCache) Invalidate(ctx context.Context, accountIDs ...uuid.UUID) {
	if len(accountIDs) == 0 {
		return
	}
	keys := make([]string, 0, len(accountIDs))
	for _, id := range accountIDs {
		keys = append(keys, balanceKeyPrefix+id.String())
	}
	_ = delBalanceValue(ctx, keys...)
}
