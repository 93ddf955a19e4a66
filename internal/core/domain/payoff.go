package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PayoffMode is the payment means of a payoff.
type PayoffMode int

const (
	PayoffCash PayoffMode = iota
	PayoffCheque
	PayoffTransfer
	PayoffCreditCard
	PayoffOther
	PayoffLevy
)

func (m PayoffMode) String() string {
	switch m {
	case PayoffCash:
		return "CASH"
	case PayoffCheque:
		return "CHEQUE"
	case PayoffTransfer:
		return "TRANSFER"
	case PayoffCreditCard:
		return "CREDIT_CARD"
	case PayoffOther:
		return "OTHER"
	case PayoffLevy:
		return "LEVY"
	}
	return fmt.Sprintf("PayoffMode(%d)", int(m))
}

// Payoff is one payment (or repayment) against a supporting document. Saving a
// payoff regenerates its ledger entry; deleting it removes the entry, which is
// refused once that entry is closed.
type Payoff struct {
	PayoffID      string
	SupportingID  string
	Date          time.Time
	Amount        decimal.Decimal
	Mode          PayoffMode
	Payer         string
	Reference     string
	EntryID       *string
	BankAccountID *int64
	BankFee       decimal.Decimal
	AuditFields
}

// BankAccount designates a bank or cash chart account payoffs are posted to.
type BankAccount struct {
	BankAccountID int64
	Designation   string
	AccountCode   string
}

// PayoffRepartition selects how a multi-pay amount is distributed across
// documents.
type PayoffRepartition int

const (
	// RepartitionProRata splits proportionally to each document's rest to pay.
	RepartitionProRata PayoffRepartition = iota
	// RepartitionByDate allocates oldest document first, each capped at its
	// own maximum payable.
	RepartitionByDate
)
