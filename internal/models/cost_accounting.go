package models

// CostAccounting represents an analytic cost-center row.
type CostAccounting struct {
	CostAccountingID string  `db:"cost_accounting_id"`
	Name             string  `db:"name"`
	Description      string  `db:"description"`
	Status           int16   `db:"status"`
	FiscalYearID     *string `db:"fiscal_year_id"`
	IsDefault        bool    `db:"is_default"`
	IsProtected      bool    `db:"is_protected"`
	AuditFields
}
