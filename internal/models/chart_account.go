package models

// ChartAccount represents one account code within a fiscal year's chart.
// (fiscal_year_id, code) carries a unique constraint.
type ChartAccount struct {
	ChartAccountID int64  `db:"chart_account_id"`
	FiscalYearID   string `db:"fiscal_year_id"`
	Code           string `db:"code"`
	Name           string `db:"name"`
	Type           int16  `db:"account_type"`
	AuditFields
}
