package repositories

import (
	"context"

	"github.com/google/uuid"
	"stream-ledger.backend/internal/domain/entities"
)

// AccountRepository is the read interface onto provisioned accounts.
type AccountRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Account, error)
}
