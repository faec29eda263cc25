package entities

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestLedgerEntrySignedAmount(t *testing.T) {
	deposit := &LedgerEntry{Type: EntryTypeDeposit, Amount: decimal.NewFromInt(25)}
	if !deposit.SignedAmount().Equal(decimal.NewFromInt(25)) {
		t.Errorf("deposit signed amount = %s, want 25", deposit.SignedAmount())
	}

	debit := &LedgerEntry{Type: EntryTypeDebit, Amount: decimal.NewFromInt(25)}
	if !debit.SignedAmount().Equal(decimal.NewFromInt(-25)) {
		t.Errorf("debit signed amount = %s, want -25", debit.SignedAmount())
	}
}
