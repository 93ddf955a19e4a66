// Package serial implements the text representation of a staged entry
// line-set: one line per row, pipe-delimited fields, newline-joined with no
// trailing newline. The format is contractual for interactive-edit
// compatibility:
//
//	<id>|<account_id>|<third_id_or_0>|<amount as %f>|<reference_or_literal_None>|
//
// Pending (not-yet-persisted) lines serialize with negative ids.
package serial

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Line is one staged entry line. Account and third are carried by id only;
// resolution against the chart happens when the set is committed.
type Line struct {
	Ref       domain.LineRef
	AccountID int64
	ThirdID   int64
	Amount    decimal.Decimal
	Reference *string
}

// FromEntryLine projects a persisted domain line into its staged form.
func FromEntryLine(l domain.EntryLineAccount) Line {
	return Line{
		Ref:       l.Ref,
		AccountID: l.Account.ChartAccountID,
		ThirdID:   l.ThirdID,
		Amount:    l.Amount,
		Reference: l.Reference,
	}
}

func (l Line) serial() string {
	ref := "None"
	if l.Reference != nil {
		ref = *l.Reference
	}
	return fmt.Sprintf("%d|%d|%d|%f|%s|", l.Ref.Serial(), l.AccountID, l.ThirdID, l.Amount.InexactFloat64(), ref)
}

// Serialize renders the line-set in wire form.
func Serialize(lines []Line) string {
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		parts = append(parts, l.serial())
	}
	return strings.Join(parts, "\n")
}

// Parse rebuilds a line-set from its wire form. Empty rows are skipped.
func Parse(s string) ([]Line, error) {
	var lines []Line
	for _, row := range strings.Split(s, "\n") {
		if row == "" {
			continue
		}
		line, err := parseRow(row)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func parseRow(row string) (Line, error) {
	fields := strings.Split(row, "|")
	if len(fields) < 5 {
		return Line{}, fmt.Errorf("malformed serial line %q", row)
	}
	id, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return Line{}, fmt.Errorf("malformed serial line id %q: %w", fields[0], err)
	}
	accountID, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return Line{}, fmt.Errorf("malformed serial account id %q: %w", fields[1], err)
	}
	thirdID, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return Line{}, fmt.Errorf("malformed serial third id %q: %w", fields[2], err)
	}
	amount, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return Line{}, fmt.Errorf("malformed serial amount %q: %w", fields[3], err)
	}
	var reference *string
	// Everything up to the trailing delimiter belongs to the reference, the
	// split pipes dropped from it. The literal "None" prefix marks no
	// reference.
	refText := strings.Join(fields[4:len(fields)-1], "")
	if !strings.HasPrefix(refText, "None") {
		reference = &refText
	}
	return Line{
		Ref:       domain.LineRefFromSerial(id),
		AccountID: accountID,
		ThirdID:   thirdID,
		Amount:    decimal.NewFromFloat(amount),
		Reference: reference,
	}, nil
}

// Upsert replaces the line carrying the same ref, or appends when absent.
func Upsert(lines []Line, line Line) []Line {
	for i := range lines {
		if lines[i].Ref.Equal(line.Ref) {
			lines[i] = line
			return lines
		}
	}
	return append(lines, line)
}

// Remove deletes the line carrying ref from the set.
func Remove(lines []Line, ref domain.LineRef) []Line {
	out := lines[:0]
	for _, l := range lines {
		if !l.Ref.Equal(ref) {
			out = append(out, l)
		}
	}
	return out
}
