package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type MediaItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OwnerID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Title     string          `gorm:"type:varchar(255);not null"`
	TokenCost decimal.Decimal `gorm:"type:decimal(20,8);not null;default:0"`
	IsPublic  bool            `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (MediaItem) TableName() string {
	return "media_items"
}

type MediaUnlock struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	AccountID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_unlock_account_media"`
	MediaID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_unlock_account_media"`
	Price     decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	CreatedAt time.Time
}

func (MediaUnlock) TableName() string {
	return "media_unlocks"
}
