package services

import (
	"github.com/bizledger/bizledger_app/internal/accountsystem"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, system accountsystem.System) *portssvc.ServiceContainer {
	// Create the container structure first
	container := &portssvc.ServiceContainer{}

	// Chart accounts come first since most services resolve codes through them
	container.Parameter = NewParameterService(repos.ParameterRepo)
	container.ChartAccount = NewChartAccountService(repos.ChartRepo, repos.FiscalYearRepo, repos.ParameterRepo, system)
	container.Third = NewThirdService(repos.ThirdRepo, container.ChartAccount, system)
	container.Link = NewLinkService(repos.LinkRepo, repos.EntryRepo, repos.FiscalYearRepo)
	container.Ledger = NewLedgerService(repos.EntryRepo, repos.ChartRepo, repos.FiscalYearRepo, container.Link, system)
	container.CostAccounting = NewCostAccountingService(repos.CostRepo, repos.EntryRepo)
	container.FiscalYear = NewFiscalYearService(
		repos.FiscalYearRepo,
		repos.ChartRepo,
		repos.EntryRepo,
		repos.CostRepo,
		container.ChartAccount,
		system,
	)
	container.Bill = NewBillService(
		repos.BillRepo,
		repos.PayoffRepo,
		repos.EntryRepo,
		repos.FiscalYearRepo,
		container.Third,
		container.ChartAccount,
		repos.ParameterRepo,
	)
	container.Payoff = NewPayoffService(
		repos.PayoffRepo,
		repos.BillRepo,
		repos.EntryRepo,
		repos.FiscalYearRepo,
		container.Third,
		container.ChartAccount,
		repos.ParameterRepo,
		container.Link,
	)
	container.Budget = NewBudgetService(repos.BudgetRepo, container.ChartAccount, system)
	container.ModelEntry = NewModelEntryService(repos.ModelRepo, repos.JournalRepo, container.ChartAccount)
	container.Reporting = NewReportingService(
		repos.FiscalYearRepo,
		repos.JournalRepo,
		repos.EntryRepo,
		repos.ChartRepo,
		repos.CostRepo,
		container.Budget,
	)

	return container
}
