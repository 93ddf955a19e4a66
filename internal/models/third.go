package models

// Third represents a counterparty row.
type Third struct {
	ThirdID  int64  `db:"third_id"`
	Name     string `db:"name"`
	Disabled bool   `db:"disabled"`
}

// ThirdAccount represents one account code attached to a third.
type ThirdAccount struct {
	ThirdAccountID int64  `db:"third_account_id"`
	ThirdID        int64  `db:"third_id"`
	Code           string `db:"code"`
}
