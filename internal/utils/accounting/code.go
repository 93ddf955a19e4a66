package accounting

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultCodeSize is the minimum account-code length when the
// accounting-sizecode parameter is unset.
const DefaultCodeSize = 3

// NormalizeCode canonicalizes a chart-account code: keeps alphanumerics only,
// truncates to maxSize when positive, and right-pads with '0' up to minSize.
// Uniqueness of (fiscal year, code) is enforced on the normalized form.
func NormalizeCode(code string, minSize, maxSize int) string {
	var b strings.Builder
	for _, r := range code {
		if (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			b.WriteRune(r)
		}
	}
	out := b.String()
	if maxSize > 0 && len(out) > maxSize {
		out = out[:maxSize]
	}
	for len(out) < minSize {
		out += "0"
	}
	return out
}

// CurrencyRound rounds an amount to the configured currency precision.
func CurrencyRound(amount decimal.Decimal, precision int) decimal.Decimal {
	return amount.Round(int32(precision))
}
