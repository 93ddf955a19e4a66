package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	entryRepo := newPgxEntryRepository(dbPool)
	chartRepo := newPgxChartAccountRepository(dbPool)
	fiscalYearRepo := newPgxFiscalYearRepository(dbPool)
	linkRepo := newPgxAccountLinkRepository(dbPool)
	costRepo := newPgxCostAccountingRepository(dbPool)
	thirdRepo := newPgxThirdRepository(dbPool)
	billRepo := newPgxBillRepository(dbPool)
	payoffRepo := newPgxPayoffRepository(dbPool)
	journalRepo := newPgxJournalRepository(dbPool)
	parameterRepo := newPgxParameterRepository(dbPool)
	budgetRepo := newPgxBudgetRepository(dbPool)
	modelRepo := newPgxModelEntryRepository(dbPool)

	return portsrepo.RepositoryProvider{
		EntryRepo:      entryRepo,
		ChartRepo:      chartRepo,
		FiscalYearRepo: fiscalYearRepo,
		LinkRepo:       linkRepo,
		CostRepo:       costRepo,
		ThirdRepo:      thirdRepo,
		BillRepo:       billRepo,
		PayoffRepo:     payoffRepo,
		JournalRepo:    journalRepo,
		ParameterRepo:  parameterRepo,
		BudgetRepo:     budgetRepo,
		ModelRepo:      modelRepo,
	}
}
