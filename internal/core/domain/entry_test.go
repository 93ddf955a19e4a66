package domain_test

import (
	"testing"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func stringPtr(s string) *string { return &s }

func assetLine(accountID int64, amount string) domain.EntryLineAccount {
	return domain.EntryLineAccount{
		Ref:     domain.PersistedLineRef(accountID),
		Account: domain.ChartAccount{ChartAccountID: accountID, Type: domain.Asset},
		Amount:  decimal.RequireFromString(amount),
	}
}

func revenueLine(accountID int64, amount string) domain.EntryLineAccount {
	return domain.EntryLineAccount{
		Ref:     domain.PersistedLineRef(accountID),
		Account: domain.ChartAccount{ChartAccountID: accountID, Type: domain.Revenue},
		Amount:  decimal.RequireFromString(amount),
	}
}

func TestAccountType_CreditDebitWay(t *testing.T) {
	assert.Equal(t, int64(-1), domain.Asset.CreditDebitWay())
	assert.Equal(t, int64(-1), domain.Expense.CreditDebitWay())
	assert.Equal(t, int64(1), domain.Liability.CreditDebitWay())
	assert.Equal(t, int64(1), domain.Equity.CreditDebitWay())
	assert.Equal(t, int64(1), domain.Revenue.CreditDebitWay())
	assert.Equal(t, int64(1), domain.Contra.CreditDebitWay())
}

func TestEntryLine_DebitCredit(t *testing.T) {
	tests := []struct {
		name       string
		line       domain.EntryLineAccount
		wantDebit  string
		wantCredit string
	}{
		{
			name:       "asset increase is a debit",
			line:       assetLine(1, "-100"),
			wantDebit:  "100",
			wantCredit: "0",
		},
		{
			name:       "asset decrease is a credit",
			line:       assetLine(1, "100"),
			wantDebit:  "0",
			wantCredit: "100",
		},
		{
			name:       "revenue increase is a credit",
			line:       revenueLine(2, "100"),
			wantDebit:  "0",
			wantCredit: "100",
		},
		{
			name:       "revenue decrease is a debit",
			line:       revenueLine(2, "-100"),
			wantDebit:  "100",
			wantCredit: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, decimal.RequireFromString(tt.wantDebit).Equal(tt.line.Debit()), "debit got %s", tt.line.Debit())
			assert.True(t, decimal.RequireFromString(tt.wantCredit).Equal(tt.line.Credit()), "credit got %s", tt.line.Credit())
		})
	}
}

func TestEntryLine_SetAmounts_RoundTrips(t *testing.T) {
	for _, accType := range []domain.AccountType{domain.Asset, domain.Liability, domain.Equity, domain.Revenue, domain.Expense, domain.Contra} {
		line := domain.EntryLineAccount{Account: domain.ChartAccount{Type: accType}}

		line.SetAmounts(decimal.RequireFromString("42.50"), decimal.Zero)
		assert.True(t, decimal.RequireFromString("42.50").Equal(line.Debit()), "%s debit", accType)
		assert.True(t, line.Credit().IsZero(), "%s debit leaves no credit", accType)

		line.SetAmounts(decimal.Zero, decimal.RequireFromString("17.30"))
		assert.True(t, decimal.RequireFromString("17.30").Equal(line.Credit()), "%s credit", accType)
		assert.True(t, line.Debit().IsZero(), "%s credit leaves no debit", accType)

		line.SetAmounts(decimal.Zero, decimal.Zero)
		assert.True(t, line.Amount.IsZero(), "%s zeroed", accType)
	}
}

func TestEntryLine_Reversed(t *testing.T) {
	line := assetLine(7, "-250")
	rev := line.Reversed()

	assert.True(t, rev.Amount.Equal(line.Amount.Neg()))
	assert.True(t, rev.Ref.IsPending())
	assert.False(t, rev.Ref.Equal(line.Ref))
	assert.Equal(t, line.Account.ChartAccountID, rev.Account.ChartAccountID)
}

func TestControlBalance(t *testing.T) {
	t.Run("balanced set", func(t *testing.T) {
		lines := []domain.EntryLineAccount{assetLine(1, "-100"), revenueLine(2, "100")}
		state := domain.ControlBalance(lines, lines)

		assert.True(t, state.IsBalanced())
		assert.True(t, state.Unchanged)
		assert.True(t, state.DebitRest.IsZero())
		assert.True(t, state.CreditRest.IsZero())
	})

	t.Run("credit heavy reports debit rest", func(t *testing.T) {
		lines := []domain.EntryLineAccount{assetLine(1, "-60"), revenueLine(2, "100")}
		state := domain.ControlBalance(nil, lines)

		assert.False(t, state.IsBalanced())
		assert.False(t, state.Unchanged)
		assert.True(t, decimal.RequireFromString("40").Equal(state.DebitRest))
		assert.True(t, state.CreditRest.IsZero())
	})

	t.Run("debit heavy reports credit rest", func(t *testing.T) {
		lines := []domain.EntryLineAccount{assetLine(1, "-100"), revenueLine(2, "60")}
		state := domain.ControlBalance(nil, lines)

		assert.False(t, state.IsBalanced())
		assert.True(t, decimal.RequireFromString("40").Equal(state.CreditRest))
		assert.True(t, state.DebitRest.IsZero())
	})

	t.Run("within epsilon counts as balanced", func(t *testing.T) {
		lines := []domain.EntryLineAccount{assetLine(1, "-100.00005"), revenueLine(2, "100")}
		state := domain.ControlBalance(nil, lines)

		assert.True(t, state.IsBalanced())
	})

	t.Run("amount change breaks unchanged", func(t *testing.T) {
		current := []domain.EntryLineAccount{assetLine(1, "-100"), revenueLine(2, "100")}
		proposed := []domain.EntryLineAccount{assetLine(1, "-90"), revenueLine(2, "90")}
		state := domain.ControlBalance(current, proposed)

		assert.False(t, state.Unchanged)
		assert.True(t, state.IsBalanced())
	})

	t.Run("empty proposed set is never unchanged", func(t *testing.T) {
		state := domain.ControlBalance(nil, nil)

		assert.False(t, state.Unchanged)
		assert.True(t, state.IsBalanced())
	})
}

func TestEntryLine_Equals(t *testing.T) {
	base := assetLine(1, "-100")
	base.Reference = stringPtr("INV-1")

	same := base
	assert.True(t, base.Equals(same))

	diffRef := base
	diffRef.Reference = stringPtr("INV-2")
	assert.False(t, base.Equals(diffRef))

	nilRef := base
	nilRef.Reference = nil
	assert.False(t, base.Equals(nilRef))

	diffThird := base
	diffThird.ThirdID = 9
	assert.False(t, base.Equals(diffThird))

	closeAmount := base
	closeAmount.Amount = decimal.RequireFromString("-100.00001")
	assert.True(t, base.Equals(closeAmount))
}

func TestEntryAccount_IsGhost(t *testing.T) {
	entry := domain.EntryAccount{Closed: false}
	assert.True(t, entry.IsGhost(0))
	assert.False(t, entry.IsGhost(2))

	entry.Closed = true
	assert.False(t, entry.IsGhost(0))
}
