package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of a chart account.
type AccountType int

const (
	Asset AccountType = iota
	Liability
	Equity
	Revenue
	Expense
	Contra
)

func (t AccountType) String() string {
	switch t {
	case Asset:
		return "ASSET"
	case Liability:
		return "LIABILITY"
	case Equity:
		return "EQUITY"
	case Revenue:
		return "REVENUE"
	case Expense:
		return "EXPENSE"
	case Contra:
		return "CONTRA"
	}
	return fmt.Sprintf("AccountType(%d)", int(t))
}

// CreditDebitWay returns the sign convention of the account type: asset and
// expense accounts increase with debit (-1), every other type increases with
// credit (+1). Stored line amounts are signed following this convention.
func (t AccountType) CreditDebitWay() int64 {
	if t == Asset || t == Expense {
		return -1
	}
	return 1
}

// ChartAccount is one account code within a fiscal year's chart of accounts.
// (FiscalYearID, Code) is unique; codes are normalized before storage.
type ChartAccount struct {
	ChartAccountID int64
	FiscalYearID   string
	Code           string
	Name           string
	Type           AccountType
	AuditFields
}

func (a ChartAccount) String() string {
	return fmt.Sprintf("[%s] %s", a.Code, a.Name)
}

// ChartAccountTotals carries the aggregated positions of one chart account,
// signed by the account's credit/debit way for presentation.
type ChartAccountTotals struct {
	LastYear  decimal.Decimal // lines posted on the last-year-report journal
	Current   decimal.Decimal // all lines
	Validated decimal.Decimal // lines of closed entries only
}

// FiscalYearTotals aggregates the year's headline figures.
type FiscalYearTotals struct {
	Revenue    decimal.Decimal
	Expense    decimal.Decimal
	Cash       decimal.Decimal
	CashClosed decimal.Decimal
}

// Result returns revenue minus expense.
func (t FiscalYearTotals) Result() decimal.Decimal {
	return t.Revenue.Sub(t.Expense)
}
