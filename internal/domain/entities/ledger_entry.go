package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryType is the direction of a ledger entry.
type EntryType string

const (
	EntryTypeDeposit EntryType = "DEPOSIT"
	EntryTypeDebit   EntryType = "DEBIT"
)

// ReferenceType categorizes the business event behind a ledger entry.
type ReferenceType string

const (
	ReferenceTypeMediaUnlock    ReferenceType = "media-unlock"
	ReferenceTypeStreamEarnings ReferenceType = "stream-earnings"
	ReferenceTypePayment        ReferenceType = "payment"
	ReferenceTypeWithdrawal     ReferenceType = "withdrawal"
)

// LedgerEntry is one immutable balance-affecting fact. Entries are only
// ever appended; BalanceAfter is the wallet balance captured from the
// same mutation that justified the entry.
type LedgerEntry struct {
	ID            uuid.UUID       `json:"id"`
	AccountID     uuid.UUID       `json:"accountId"`
	Type          EntryType       `json:"type"`
	Amount        decimal.Decimal `json:"amount"` // positive magnitude, sign implied by Type
	Currency      string          `json:"currency"`
	BalanceAfter  decimal.Decimal `json:"balanceAfter"`
	ReferenceType ReferenceType   `json:"referenceType"`
	ReferenceID   uuid.UUID       `json:"referenceId"`
	Description   string          `json:"description"`
	Metadata      string          `json:"metadata,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// SignedAmount returns the amount with the sign implied by the entry type.
func (e *LedgerEntry) SignedAmount() decimal.Decimal {
	if e.Type == EntryTypeDebit {
		return e.Amount.Neg()
	}
	return e.Amount
}

// LedgerFilter narrows ledger listing and aggregation queries.
type LedgerFilter struct {
	Type           EntryType
	ReferenceTypes []ReferenceType
	From           *time.Time
	To             *time.Time
}
