package domain

// Third is a counterparty (customer or supplier) reference. The ledger never
// interprets contact details; it only resolves which of the third's account
// codes qualifies under a jurisdiction mask.
type Third struct {
	ThirdID  int64
	Name     string
	Disabled bool
}

// ThirdAccount is one chart-account code attached to a third. The same code is
// resolved against the chart of the fiscal year being posted to.
type ThirdAccount struct {
	ThirdAccountID int64
	ThirdID        int64
	Code           string
}
