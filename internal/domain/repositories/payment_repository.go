package repositories

import (
	"context"

	"github.com/google/uuid"
	"stream-ledger.backend/internal/domain/entities"
)

// PaymentRepository defines payment data operations
type PaymentRepository interface {
	// Create inserts the payment, returning ErrAlreadyExists when the
	// provider reference was already recorded.
	Create(ctx context.Context, payment *entities.Payment) error
	GetByProviderRef(ctx context.Context, providerRef string) (*entities.Payment, error)
	GetByAccountID(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*entities.Payment, int64, error)
}
