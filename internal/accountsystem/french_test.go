package accountsystem_test

import (
	"testing"

	"github.com/bizledger/bizledger_app/internal/accountsystem"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	system, err := accountsystem.Get("french")
	require.NoError(t, err)
	assert.Equal(t, "french", system.Name())

	_, err = accountsystem.Get("klingon")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown accounting system")
}

func TestFrenchMasks(t *testing.T) {
	system, err := accountsystem.Get("french")
	require.NoError(t, err)

	tests := []struct {
		mask    domain.AccountMask
		match   []string
		noMatch []string
	}{
		{domain.MaskCash, []string{"5", "512", "530000"}, []string{"411", "6"}},
		{domain.MaskThird, []string{"4", "401", "411000"}, []string{"5", "706"}},
		{domain.MaskCustomer, []string{"411", "411000"}, []string{"401", "4"}},
		{domain.MaskProvider, []string{"401", "40"}, []string{"411", "4"}},
		{domain.MaskRevenue, []string{"7", "706"}, []string{"6", "411"}},
		{domain.MaskExpense, []string{"6", "607"}, []string{"7", "512"}},
	}

	for _, tt := range tests {
		re := system.Mask(tt.mask)
		require.NotNil(t, re, "mask %d", tt.mask)
		for _, code := range tt.match {
			assert.True(t, re.MatchString(code), "mask %d should match %q", tt.mask, code)
		}
		for _, code := range tt.noMatch {
			assert.False(t, re.MatchString(code), "mask %d should not match %q", tt.mask, code)
		}
	}
}

func TestFrenchNewAccount(t *testing.T) {
	system, err := accountsystem.Get("french")
	require.NoError(t, err)

	tests := []struct {
		code     string
		wantType domain.AccountType
	}{
		{"101", domain.Equity},
		{"213", domain.Asset},
		{"370", domain.Asset},
		{"401000", domain.Liability},
		{"411000", domain.Asset},
		{"445", domain.Liability},
		{"512", domain.Asset},
		{"607", domain.Expense},
		{"706", domain.Revenue},
		{"890", domain.Contra},
	}

	for _, tt := range tests {
		name, accType, err := system.NewAccount(tt.code)
		require.NoError(t, err, "code %s", tt.code)
		assert.Equal(t, tt.wantType, accType, "code %s", tt.code)
		assert.Contains(t, name, tt.code)
	}

	_, _, err = system.NewAccount("")
	assert.Error(t, err)

	_, _, err = system.NewAccount("999")
	assert.Error(t, err)
}
