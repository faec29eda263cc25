package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"stream-ledger.backend/internal/domain/entities"
	domainerrors "stream-ledger.backend/internal/domain/errors"
	"stream-ledger.backend/internal/infrastructure/models"
)

// MediaRepository implements catalog reads
type MediaRepository struct {
	db *gorm.DB
}

// NewMediaRepository creates a new media repository
func NewMediaRepository(db *gorm.DB) *MediaRepository {
	return &MediaRepository{db: db}
}

// GetByID gets a media item by ID
func (r *MediaRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.MediaItem, error) {
	var m models.MediaItem
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return &entities.MediaItem{
		ID:        m.ID,
		OwnerID:   m.OwnerID,
		Title:     m.Title,
		TokenCost: m.TokenCost,
		IsPublic:  m.IsPublic,
		CreatedAt: m.CreatedAt,
	}, nil
}

// MediaUnlockRepository implements media unlock data operations
type MediaUnlockRepository struct {
	db *gorm.DB
}

// NewMediaUnlockRepository creates a new media unlock repository
func NewMediaUnlockRepository(db *gorm.DB) *MediaUnlockRepository {
	return &MediaUnlockRepository{db: db}
}

// Create inserts the unlock row
func (r *MediaUnlockRepository) Create(ctx context.Context, unlock *entities.MediaUnlock) error {
	if unlock.ID == uuid.Nil {
		unlock.ID = uuid.New()
	}
	if unlock.CreatedAt.IsZero() {
		unlock.CreatedAt = time.Now()
	}

	m := &models.MediaUnlock{
		ID:        unlock.ID,
		AccountID: unlock.AccountID,
		MediaID:   unlock.MediaID,
		Price:     unlock.Price,
		CreatedAt: unlock.CreatedAt,
	}

	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetByAccountAndMedia gets an unlock by its unique (account, media) pair
func (r *MediaUnlockRepository) GetByAccountAndMedia(ctx context.Context, accountID, mediaID uuid.UUID) (*entities.MediaUnlock, error) {
	var m models.MediaUnlock
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("account_id = ? AND media_id = ?", accountID, mediaID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return &entities.MediaUnlock{
		ID:        m.ID,
		AccountID: m.AccountID,
		MediaID:   m.MediaID,
		Price:     m.Price,
		CreatedAt: m.CreatedAt,
	}, nil
}
