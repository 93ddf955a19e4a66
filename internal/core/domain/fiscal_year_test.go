package domain_test

import (
	"testing"
	"time"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextYearDates(t *testing.T) {
	t.Run("first year starts today", func(t *testing.T) {
		today := date(2024, time.March, 15)
		begin, end := domain.NextYearDates(nil, today)

		assert.Equal(t, today, begin)
		assert.Equal(t, date(2025, time.March, 14), end)
	})

	t.Run("successor starts the day after the last end", func(t *testing.T) {
		lastEnd := date(2024, time.December, 31)
		begin, end := domain.NextYearDates(&lastEnd, date(2025, time.June, 1))

		assert.Equal(t, date(2025, time.January, 1), begin)
		assert.Equal(t, date(2025, time.December, 31), end)
	})

	t.Run("leap day begin falls back to Feb 28", func(t *testing.T) {
		lastEnd := date(2024, time.February, 28)
		begin, end := domain.NextYearDates(&lastEnd, date(2024, time.June, 1))

		assert.Equal(t, date(2024, time.February, 29), begin)
		assert.Equal(t, date(2025, time.February, 27), end)
	})
}

func TestFiscalYear_ContainsAndClamp(t *testing.T) {
	year := domain.FiscalYear{
		Begin: date(2024, time.January, 1),
		End:   date(2024, time.December, 31),
	}

	assert.True(t, year.ContainsDate(date(2024, time.January, 1)))
	assert.True(t, year.ContainsDate(date(2024, time.December, 31)))
	assert.False(t, year.ContainsDate(date(2023, time.December, 31)))
	assert.False(t, year.ContainsDate(date(2025, time.January, 1)))

	assert.Equal(t, year.Begin, year.ClampDate(date(2023, time.May, 1)))
	assert.Equal(t, year.End, year.ClampDate(date(2025, time.May, 1)))
	assert.Equal(t, date(2024, time.June, 15), year.ClampDate(date(2024, time.June, 15)))
}

func TestFiscalYear_Identify(t *testing.T) {
	calendar := domain.FiscalYear{Begin: date(2024, time.January, 1), End: date(2024, time.December, 31)}
	assert.Equal(t, "2024", calendar.Identify())

	straddling := domain.FiscalYear{Begin: date(2024, time.July, 1), End: date(2025, time.June, 30)}
	assert.Equal(t, "2024/2025", straddling.Identify())
}

func TestLetterCode(t *testing.T) {
	tests := []struct {
		rank int
		want string
	}{
		{0, "A"},
		{1, "B"},
		{25, "Z"},
		{26, "AA"},
		{27, "AB"},
		{51, "AZ"},
		{52, "BA"},
		{701, "ZZ"},
		{702, "AAA"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, domain.LetterCode(tt.rank), "rank %d", tt.rank)
	}
}
