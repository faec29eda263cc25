package repositories

import (
	"context"

	"github.com/google/uuid"
	"stream-ledger.backend/internal/domain/entities"
)

// WithdrawalRepository defines withdrawal request data operations
type WithdrawalRepository interface {
	Create(ctx context.Context, request *entities.WithdrawalRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.WithdrawalRequest, error)
	// GetPendingByAccount returns the account's PENDING request, or
	// ErrNotFound when there is none.
	GetPendingByAccount(ctx context.Context, accountID uuid.UUID) (*entities.WithdrawalRequest, error)
	// Update persists review outcome fields (status, reviewer,
	// timestamps) only if the stored status still equals from, so two
	// reviewers racing on one request cannot both settle it. Returns
	// ErrNotPending when the guard fails.
	Update(ctx context.Context, request *entities.WithdrawalRequest, from entities.WithdrawalStatus) error
	ListByAccount(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*entities.WithdrawalRequest, int64, error)
	ListByStatus(ctx context.Context, status entities.WithdrawalStatus, limit, offset int) ([]*entities.WithdrawalRequest, int64, error)
}
