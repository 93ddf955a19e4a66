package accounting_test

import (
	"testing"

	"github.com/bizledger/bizledger_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeCode(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		minSize int
		maxSize int
		want    string
	}{
		{"strips punctuation", "4-1.1", 3, 0, "411"},
		{"pads short codes", "7", 3, 0, "700"},
		{"keeps long codes without max", "512000", 3, 0, "512000"},
		{"truncates to max", "512000", 3, 4, "5120"},
		{"pad after truncate", "5.1", 3, 3, "510"},
		{"empty becomes all zeros", "", 3, 0, "000"},
		{"keeps letters", "4a1", 3, 0, "4a1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, accounting.NormalizeCode(tt.code, tt.minSize, tt.maxSize))
		})
	}
}

func TestCurrencyRound(t *testing.T) {
	assert.True(t, decimal.RequireFromString("10.13").Equal(accounting.CurrencyRound(decimal.RequireFromString("10.125"), 2)))
	assert.True(t, decimal.RequireFromString("10.12").Equal(accounting.CurrencyRound(decimal.RequireFromString("10.124"), 2)))
	assert.True(t, decimal.RequireFromString("10").Equal(accounting.CurrencyRound(decimal.RequireFromString("10.4"), 0)))
}
