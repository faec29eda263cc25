package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Payment struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProviderRef string          `gorm:"type:varchar(255);not null;uniqueIndex"`
	AccountID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Tokens      decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	Status      string          `gorm:"type:varchar(20);not null"`
	RawPayload  *string         `gorm:"type:jsonb"`
	CreatedAt   time.Time
}

func (Payment) TableName() string {
	return "payments"
}
