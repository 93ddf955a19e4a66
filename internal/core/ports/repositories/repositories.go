package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	EntryRepo      EntryRepositoryFacade
	ChartRepo      ChartAccountRepositoryFacade
	FiscalYearRepo FiscalYearRepositoryFacade
	LinkRepo       AccountLinkRepository
	CostRepo       CostAccountingRepository
	ThirdRepo      ThirdRepository
	BillRepo       BillRepository
	PayoffRepo     PayoffRepository
	JournalRepo    JournalRepository
	ParameterRepo  ParameterRepository
	BudgetRepo     BudgetRepository
	ModelRepo      ModelEntryRepository
}
