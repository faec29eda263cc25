package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Wallet struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	AccountID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	Balance   decimal.Decimal `gorm:"type:decimal(20,8);not null;default:0"`
	Currency  string          `gorm:"type:varchar(10);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Wallet) TableName() string {
	return "wallets"
}
