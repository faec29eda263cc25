package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

// WithdrawalStatus is the review state of a withdrawal request.
type WithdrawalStatus string

const (
	WithdrawalStatusPending  WithdrawalStatus = "PENDING"
	WithdrawalStatusApproved WithdrawalStatus = "APPROVED"
	WithdrawalStatusRejected WithdrawalStatus = "REJECTED"
)

// ReviewDecision is the reviewer's verdict on a pending withdrawal.
type ReviewDecision string

const (
	ReviewDecisionApprove ReviewDecision = "approve"
	ReviewDecisionReject  ReviewDecision = "reject"
)

// WithdrawalRequest is a creator's request to convert wallet balance to
// an off-platform payout. The amount stays spendable until approval,
// which re-validates the balance before executing the transfer.
type WithdrawalRequest struct {
	ID         uuid.UUID        `json:"id"`
	AccountID  uuid.UUID        `json:"accountId"`
	Amount     decimal.Decimal  `json:"amount"`
	Currency   string           `json:"currency"`
	Status     WithdrawalStatus `json:"status"`
	ReviewedBy *uuid.UUID       `json:"reviewedBy,omitempty"`
	ReviewedAt *time.Time       `json:"reviewedAt,omitempty"`
	ReviewNote null.String      `json:"reviewNote,omitempty"`
	CreatedAt  time.Time        `json:"createdAt"`
	UpdatedAt  time.Time        `json:"updatedAt"`
}
