package services

import (
	"context"
)

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Ledger         LedgerSvcFacade
	FiscalYear     FiscalYearSvcFacade
	ChartAccount   ChartAccountSvcFacade
	Link           LinkSvcFacade
	CostAccounting CostAccountingSvcFacade
	Third          ThirdSvcFacade
	Bill           BillSvcFacade
	Payoff         PayoffSvcFacade
	Budget         BudgetSvcFacade
	ModelEntry     ModelEntrySvcFacade
	Parameter      ParameterSvcFacade
	Reporting      ReportingSvcFacade
}

// StaticDataService seeds reference rows (journals, default parameters)
// at startup.
type StaticDataService interface {
	InitializeStaticData(ctx context.Context) error
}
