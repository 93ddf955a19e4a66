package models

import "time"

// FiscalYear represents a fiscal year row. Status is stored as a smallint
// following the domain enum ordering.
type FiscalYear struct {
	FiscalYearID  string    `db:"fiscal_year_id"`
	Begin         time.Time `db:"begin_date"`
	End           time.Time `db:"end_date"`
	Status        int16     `db:"status"`
	IsActive      bool      `db:"is_active"`
	PredecessorID *string   `db:"predecessor_id"`
	LastNum       int       `db:"last_num"` // entry sequence high-water mark
	AuditFields
}
