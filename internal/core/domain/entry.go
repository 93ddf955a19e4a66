package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AmountEpsilon is the tolerance used for every balance or equality comparison
// on currency amounts.
var AmountEpsilon = decimal.RequireFromString("0.0001")

// AmountIsZero reports whether amount is zero within AmountEpsilon.
func AmountIsZero(amount decimal.Decimal) bool {
	return amount.Abs().LessThanOrEqual(AmountEpsilon)
}

// AmountEqual reports whether a and b are equal within AmountEpsilon.
func AmountEqual(a, b decimal.Decimal) bool {
	return AmountIsZero(a.Sub(b))
}

// EntryAccount is a journal entry: a dated, journaled set of debit/credit
// lines. While unclosed it is freely mutable and its lines are replaced
// wholesale; once closed it is immutable, carries a permanent sequence number
// scoped to its fiscal year, and can only be affected through explicit
// unlink operations.
type EntryAccount struct {
	EntryID          string
	FiscalYearID     string
	Num              *int
	JournalID        int64
	EntryDate        *time.Time // set at close time
	ValueDate        time.Time
	Designation      string
	Closed           bool
	CostAccountingID *string
	LinkID           *string
	AuditFields
}

// IsGhost reports whether the entry is an unclosed entry with no lines,
// eligible for the periodic ghost sweep. Line count is supplied by the caller.
func (e EntryAccount) IsGhost(lineCount int) bool {
	return !e.Closed && lineCount == 0
}

// EntryLineAccount is a single account posting within an entry. The stored
// amount is signed such that debit = max(0, -way*amount) and
// credit = max(0, way*amount) where way is the account type's credit/debit way.
type EntryLineAccount struct {
	Ref       LineRef
	EntryID   string
	Account   ChartAccount
	Amount    decimal.Decimal
	ThirdID   int64 // 0 = no counterparty
	Reference *string
}

// Debit returns the debit part of the line, zero if the line is a credit.
func (l EntryLineAccount) Debit() decimal.Decimal {
	d := l.Amount.Mul(decimal.NewFromInt(-l.Account.Type.CreditDebitWay()))
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Credit returns the credit part of the line, zero if the line is a debit.
func (l EntryLineAccount) Credit() decimal.Decimal {
	c := l.Amount.Mul(decimal.NewFromInt(l.Account.Type.CreditDebitWay()))
	if c.IsNegative() {
		return decimal.Zero
	}
	return c
}

// SetAmounts stores the signed amount from an explicit debit or credit value.
// Exactly one of the two is expected to be positive.
func (l *EntryLineAccount) SetAmounts(debit, credit decimal.Decimal) {
	way := decimal.NewFromInt(l.Account.Type.CreditDebitWay())
	switch {
	case debit.IsPositive():
		l.Amount = debit.Mul(way).Neg()
	case credit.IsPositive():
		l.Amount = credit.Mul(way)
	default:
		l.Amount = decimal.Zero
	}
}

// Equals compares two lines field by field: same ref, account, amount within
// epsilon, reference and third. Used by the balance check to detect whether a
// proposed line-set differs from the persisted one.
func (l EntryLineAccount) Equals(o EntryLineAccount) bool {
	if !l.Ref.Equal(o.Ref) {
		return false
	}
	if l.Account.ChartAccountID != o.Account.ChartAccountID {
		return false
	}
	if !AmountEqual(l.Amount, o.Amount) {
		return false
	}
	if (l.Reference == nil) != (o.Reference == nil) {
		return false
	}
	if l.Reference != nil && *l.Reference != *o.Reference {
		return false
	}
	return l.ThirdID == o.ThirdID
}

// Reversed returns a copy of the line with a fresh pending ref and negated
// amount, used to build the counter-posting of an entry.
func (l EntryLineAccount) Reversed() EntryLineAccount {
	out := l
	out.Ref = NewPendingLineRef()
	out.Amount = l.Amount.Neg()
	return out
}

// BalanceState is the outcome of comparing a proposed line-set against the
// persisted one and summing both sides.
type BalanceState struct {
	Unchanged  bool
	DebitRest  decimal.Decimal // max(0, credits - debits)
	CreditRest decimal.Decimal // max(0, debits - credits)
}

// IsBalanced reports whether the proposed line-set nets to zero.
func (b BalanceState) IsBalanced() bool {
	return AmountIsZero(b.DebitRest.Sub(b.CreditRest))
}

// ControlBalance computes the BalanceState of proposed against current.
// "Unchanged" requires the same count with each corresponding line field-equal;
// comparison is positional by construction.
func ControlBalance(current, proposed []EntryLineAccount) BalanceState {
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	noChange := len(proposed) > 0 && len(proposed) == len(current)
	for i, line := range proposed {
		totalDebit = totalDebit.Add(line.Debit())
		totalCredit = totalCredit.Add(line.Credit())
		if noChange && !current[i].Equals(line) {
			noChange = false
		}
	}
	rest := func(v decimal.Decimal) decimal.Decimal {
		if v.IsNegative() {
			return decimal.Zero
		}
		return v
	}
	return BalanceState{
		Unchanged:  noChange,
		DebitRest:  rest(totalCredit.Sub(totalDebit)),
		CreditRest: rest(totalDebit.Sub(totalCredit)),
	}
}
