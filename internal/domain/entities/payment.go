package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

// PaymentStatus is the state of an external purchase record.
type PaymentStatus string

const (
	PaymentStatusSucceeded PaymentStatus = "SUCCEEDED"
)

// Payment records one external token purchase, keyed by the provider's
// reference so that at-least-once webhook delivery never double-credits.
type Payment struct {
	ID          uuid.UUID       `json:"id"`
	ProviderRef string          `json:"providerRef"`
	AccountID   uuid.UUID       `json:"accountId"`
	Tokens      decimal.Decimal `json:"tokens"`
	Status      PaymentStatus   `json:"status"`
	RawPayload  null.String     `json:"-"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// CreditResult is the outcome of crediting a payment. Redelivery of a
// known provider reference is a success with AlreadyProcessed set.
type CreditResult struct {
	AlreadyProcessed bool            `json:"alreadyProcessed"`
	Payment          *Payment        `json:"payment"`
	NewBalance       decimal.Decimal `json:"newBalance"`
}
