package repositories

import (
	"context"

	"github.com/google/uuid"
	"stream-ledger.backend/internal/domain/entities"
)

// MediaRepository is the read interface onto the media catalog. The
// catalog is owned elsewhere; settlement only needs owner, price and
// visibility.
type MediaRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entities.MediaItem, error)
}

// MediaUnlockRepository defines media unlock data operations
type MediaUnlockRepository interface {
	// Create inserts the unlock row, returning ErrAlreadyExists when
	// the (account, media) pair is already unlocked.
	Create(ctx context.Context, unlock *entities.MediaUnlock) error
	GetByAccountAndMedia(ctx context.Context, accountID, mediaID uuid.UUID) (*entities.MediaUnlock, error)
}
