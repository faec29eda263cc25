package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerEntry has no UpdatedAt and no soft delete: rows are append-only.
type LedgerEntry struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	AccountID     uuid.UUID       `gorm:"type:uuid;not null;index:idx_ledger_account_created"`
	Type          string          `gorm:"type:varchar(10);not null;index"`
	Amount        decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	Currency      string          `gorm:"type:varchar(10);not null"`
	BalanceAfter  decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	ReferenceType string          `gorm:"type:varchar(50);not null;index"`
	ReferenceID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description   string          `gorm:"type:varchar(255)"`
	Metadata      string          `gorm:"type:jsonb;default:'{}'"`
	CreatedAt     time.Time       `gorm:"index:idx_ledger_account_created"`
}

func (LedgerEntry) TableName() string {
	return "ledger_entries"
}
