package repositories

import (
	"context"
)

// UnitOfWork defines the interface for atomic operations. Every
// settlement operation runs inside Do: either every wallet mutation and
// every ledger append commits, or none does.
type UnitOfWork interface {
	// Do executes the given function within a transaction scope
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
