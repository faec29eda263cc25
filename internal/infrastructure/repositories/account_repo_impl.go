package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"stream-ledger.backend/internal/domain/entities"
	domainerrors "stream-ledger.backend/internal/domain/errors"
	"stream-ledger.backend/internal/infrastructure/models"
)

// AccountRepository implements account reads
type AccountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// GetByID gets an account by ID
func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Account, error) {
	var m models.Account
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return &entities.Account{
		ID:        m.ID,
		Username:  m.Username,
		Role:      entities.Role(m.Role),
		CreatedAt: m.CreatedAt,
	}, nil
}
