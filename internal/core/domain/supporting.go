package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountMask names a jurisdiction-defined class of chart-account codes. The
// accounting-system strategy maps each mask to its concrete pattern.
type AccountMask int

const (
	MaskCash AccountMask = iota
	MaskThird
	MaskCustomer
	MaskProvider
	MaskRevenue
	MaskExpense
)

// Supportable is a business document the payoff flow can settle: it exposes
// its payable total, the mask selecting eligible counterparty accounts, the
// polarity of its payments and the prior ledger entries a payment may be
// lettered with.
type Supportable interface {
	SupportingID() string
	SupportingThirdID() int64
	Total() decimal.Decimal
	ThirdMask() AccountMask
	PayoffIsRevenue() bool
	EntryLinks() []string
	DefaultCostAccountingID() *string
	CurrentDate() time.Time
}
