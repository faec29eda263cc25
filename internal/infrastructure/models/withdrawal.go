package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type WithdrawalRequest struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	AccountID  uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_withdrawal_pending_account,where:status = 'PENDING'"`
	Amount     decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	Currency   string          `gorm:"type:varchar(10);not null"`
	Status     string          `gorm:"type:varchar(20);not null;index"`
	ReviewedBy *uuid.UUID      `gorm:"type:uuid"`
	ReviewedAt *time.Time
	ReviewNote *string `gorm:"type:varchar(500)"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (WithdrawalRequest) TableName() string {
	return "withdrawal_requests"
}
