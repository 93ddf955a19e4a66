package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CostAccountingStatus is the two-state lifecycle of a cost accounting:
// Opened -> Closed, Closed being terminal.
type CostAccountingStatus int

const (
	CostOpened CostAccountingStatus = iota
	CostClosed
)

func (s CostAccountingStatus) String() string {
	switch s {
	case CostOpened:
		return "OPENED"
	case CostClosed:
		return "CLOSED"
	}
	return fmt.Sprintf("CostAccountingStatus(%d)", int(s))
}

// CostAccounting is an analytic cost-center dimension orthogonal to the chart
// of accounts. At most one opened cost accounting is the default at any time.
// A protected one is owned by another module and cannot be deleted by hand.
type CostAccounting struct {
	CostAccountingID string
	Name             string
	Description      string
	Status           CostAccountingStatus
	FiscalYearID     *string
	IsDefault        bool
	IsProtected      bool
	AuditFields
}

// CostAccountingResult carries the aggregated revenue/expense of one cost
// accounting across the entries referencing it.
type CostAccountingResult struct {
	Revenue decimal.Decimal
	Expense decimal.Decimal
}

// Result returns revenue minus expense.
func (r CostAccountingResult) Result() decimal.Decimal {
	return r.Revenue.Sub(r.Expense)
}
