package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	"github.com/bizledger/bizledger_app/internal/models"
	"github.com/bizledger/bizledger_app/internal/utils/mapping"
)

// PgxJournalRepository serves the fixed journal list.
type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal reference data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepository {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepository
var _ portsrepo.JournalRepository = (*PgxJournalRepository)(nil)

// ListJournals returns all journals ordered by id.
func (r *PgxJournalRepository) ListJournals(ctx context.Context) ([]domain.Journal, error) {
	rows, err := r.Pool.Query(ctx, `SELECT journal_id, name FROM journals ORDER BY journal_id;`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journals", err)
	}
	defer rows.Close()

	var journals []models.Journal
	for rows.Next() {
		var m models.Journal
		if err := rows.Scan(&m.JournalID, &m.Name); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal row", err)
		}
		journals = append(journals, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal rows", err)
	}
	return mapping.ToDomainJournalSlice(journals), nil
}

// FindJournalByID retrieves a journal by id.
func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, journalID int64) (*domain.Journal, error) {
	var m models.Journal
	err := r.Pool.QueryRow(ctx, `SELECT journal_id, name FROM journals WHERE journal_id = $1;`, journalID).
		Scan(&m.JournalID, &m.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find journal", err)
	}
	journal := mapping.ToDomainJournal(m)
	return &journal, nil
}

// EnsureDefaultJournals creates the reserved system journals when absent.
func (r *PgxJournalRepository) EnsureDefaultJournals(ctx context.Context) error {
	defaults := []models.Journal{
		{JournalID: domain.JournalLastYearReport, Name: "last year report"},
		{JournalID: domain.JournalBuying, Name: "buying"},
		{JournalID: domain.JournalSelling, Name: "selling"},
		{JournalID: domain.JournalPayment, Name: "payment"},
		{JournalID: domain.JournalOther, Name: "other"},
	}
	for _, j := range defaults {
		_, err := r.Pool.Exec(ctx, `
			INSERT INTO journals (journal_id, name)
			VALUES ($1, $2)
			ON CONFLICT (journal_id) DO NOTHING;
		`, j.JournalID, j.Name)
		if err != nil {
			return apperrors.NewAppError(500, "failed to seed journal "+j.Name, err)
		}
	}
	return nil
}

// PgxParameterRepository is the key/value configuration store.
type PgxParameterRepository struct {
	BaseRepository
}

// newPgxParameterRepository creates a new repository for ledger parameters.
func newPgxParameterRepository(pool *pgxpool.Pool) portsrepo.ParameterRepository {
	return &PgxParameterRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxParameterRepository implements portsrepo.ParameterRepository
var _ portsrepo.ParameterRepository = (*PgxParameterRepository)(nil)

// GetParameter returns the parameter value, or "" when unset.
func (r *PgxParameterRepository) GetParameter(ctx context.Context, name string) (string, error) {
	var value string
	err := r.Pool.QueryRow(ctx, `SELECT value FROM parameters WHERE name = $1;`, name).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", apperrors.NewAppError(500, "failed to read parameter "+name, err)
	}
	return value, nil
}

// SetParameter stores a parameter value.
func (r *PgxParameterRepository) SetParameter(ctx context.Context, name, value string) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO parameters (name, value)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value;
	`, name, value)
	if err != nil {
		return apperrors.NewAppError(500, "failed to store parameter "+name, err)
	}
	return nil
}

// EnsureDefaultParameters seeds the known parameters when absent. Account
// parameters stay unset on purpose; operations needing them report a
// configuration error naming the parameter.
func (r *PgxParameterRepository) EnsureDefaultParameters(ctx context.Context) error {
	defaults := []models.Parameter{
		{Name: "accounting-devise", Value: "€"},
		{Name: "accounting-devise-iso", Value: "EUR"},
		{Name: "accounting-devise-prec", Value: "2"},
		{Name: "accounting-sizecode", Value: "3"},
		{Name: "payoff-cash-account", Value: ""},
		{Name: "payoff-bankcharges-account", Value: ""},
		{Name: "invoice-reduce-account", Value: ""},
		{Name: "invoice-vatsell-account", Value: ""},
		{Name: "invoice-default-sell-account", Value: ""},
	}
	for _, p := range defaults {
		_, err := r.Pool.Exec(ctx, `
			INSERT INTO parameters (name, value)
			VALUES ($1, $2)
			ON CONFLICT (name) DO NOTHING;
		`, p.Name, p.Value)
		if err != nil {
			return apperrors.NewAppError(500, "failed to seed parameter "+p.Name, err)
		}
	}
	return nil
}

// PgxBudgetRepository persists forecast lines.
type PgxBudgetRepository struct {
	BaseRepository
}

// newPgxBudgetRepository creates a new repository for budget lines.
func newPgxBudgetRepository(pool *pgxpool.Pool) portsrepo.BudgetRepository {
	return &PgxBudgetRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxBudgetRepository implements portsrepo.BudgetRepository
var _ portsrepo.BudgetRepository = (*PgxBudgetRepository)(nil)

// ListBudgets returns budget lines, optionally scoped by year and cost
// accounting (empty string = no filter).
func (r *PgxBudgetRepository) ListBudgets(ctx context.Context, fiscalYearID, costAccountingID string) ([]domain.Budget, error) {
	query := `
		SELECT budget_id, fiscal_year_id, cost_accounting_id, code, amount
		FROM budgets
		WHERE ($1 = '' OR fiscal_year_id = $1)
		  AND ($2 = '' OR cost_accounting_id = $2)
		ORDER BY code;
	`
	rows, err := r.Pool.Query(ctx, query, fiscalYearID, costAccountingID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query budget lines", err)
	}
	defer rows.Close()

	var budgets []models.Budget
	for rows.Next() {
		var m models.Budget
		if err := rows.Scan(&m.BudgetID, &m.FiscalYearID, &m.CostAccountingID, &m.Code, &m.Amount); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan budget row", err)
		}
		budgets = append(budgets, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating budget rows", err)
	}
	return mapping.ToDomainBudgetSlice(budgets), nil
}

// SaveBudget persists a budget line, replacing it when the id already exists.
func (r *PgxBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO budgets (budget_id, fiscal_year_id, cost_accounting_id, code, amount)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (budget_id) DO UPDATE
		SET fiscal_year_id = EXCLUDED.fiscal_year_id,
		    cost_accounting_id = EXCLUDED.cost_accounting_id,
		    code = EXCLUDED.code,
		    amount = EXCLUDED.amount;
	`, budget.BudgetID, budget.FiscalYearID, budget.CostAccountingID, budget.Code, budget.Amount)
	if err != nil {
		return apperrors.NewAppError(500, "failed to store budget line "+budget.BudgetID, err)
	}
	return nil
}

// DeleteBudget removes a budget line.
func (r *PgxBudgetRepository) DeleteBudget(ctx context.Context, budgetID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM budgets WHERE budget_id = $1;`, budgetID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete budget line "+budgetID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SumBudgetByMask sums budget amounts whose code matches the mask, scoped
// like ListBudgets.
func (r *PgxBudgetRepository) SumBudgetByMask(ctx context.Context, fiscalYearID, costAccountingID, mask string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM budgets
		WHERE ($1 = '' OR fiscal_year_id = $1)
		  AND ($2 = '' OR cost_accounting_id = $2)
		  AND code ~ $3;
	`
	var sum decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, fiscalYearID, costAccountingID, mask).Scan(&sum); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to sum budget lines", err)
	}
	return sum, nil
}

// PgxModelEntryRepository persists entry templates.
type PgxModelEntryRepository struct {
	BaseRepository
}

// newPgxModelEntryRepository creates a new repository for entry templates.
func newPgxModelEntryRepository(pool *pgxpool.Pool) portsrepo.ModelEntryRepository {
	return &PgxModelEntryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxModelEntryRepository implements portsrepo.ModelEntryRepository
var _ portsrepo.ModelEntryRepository = (*PgxModelEntryRepository)(nil)

// FindModelEntryByID retrieves a template by id.
func (r *PgxModelEntryRepository) FindModelEntryByID(ctx context.Context, modelEntryID string) (*domain.ModelEntry, error) {
	var m models.ModelEntry
	err := r.Pool.QueryRow(ctx, `
		SELECT model_entry_id, journal_id, designation, cost_accounting_id
		FROM model_entries
		WHERE model_entry_id = $1;
	`, modelEntryID).Scan(&m.ModelEntryID, &m.JournalID, &m.Designation, &m.CostAccountingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find entry template "+modelEntryID, err)
	}
	model := mapping.ToDomainModelEntry(m)
	return &model, nil
}

// ListModelEntries returns all templates.
func (r *PgxModelEntryRepository) ListModelEntries(ctx context.Context) ([]domain.ModelEntry, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT model_entry_id, journal_id, designation, cost_accounting_id
		FROM model_entries
		ORDER BY designation;
	`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entry templates", err)
	}
	defer rows.Close()

	var templates []models.ModelEntry
	for rows.Next() {
		var m models.ModelEntry
		if err := rows.Scan(&m.ModelEntryID, &m.JournalID, &m.Designation, &m.CostAccountingID); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan entry template row", err)
		}
		templates = append(templates, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating entry template rows", err)
	}
	return mapping.ToDomainModelEntrySlice(templates), nil
}

// ListModelLines returns the template's lines in insertion order.
func (r *PgxModelEntryRepository) ListModelLines(ctx context.Context, modelEntryID string) ([]domain.ModelLineEntry, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT model_line_id, model_entry_id, code, third_id, amount
		FROM model_lines
		WHERE model_entry_id = $1
		ORDER BY model_line_id;
	`, modelEntryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines of template "+modelEntryID, err)
	}
	defer rows.Close()

	var lines []domain.ModelLineEntry
	for rows.Next() {
		var m models.ModelLineEntry
		if err := rows.Scan(&m.ModelLineID, &m.ModelEntryID, &m.Code, &m.ThirdID, &m.Amount); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan template line row", err)
		}
		lines = append(lines, mapping.ToDomainModelLineEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating template line rows", err)
	}
	return lines, nil
}

// SaveModelEntry persists a template with its lines, replacing any previous
// line set in one transaction.
func (r *PgxModelEntryRepository) SaveModelEntry(ctx context.Context, model domain.ModelEntry, lines []domain.ModelLineEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	_, err = tx.Exec(ctx, `
		INSERT INTO model_entries (model_entry_id, journal_id, designation, cost_accounting_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (model_entry_id) DO UPDATE
		SET journal_id = EXCLUDED.journal_id,
		    designation = EXCLUDED.designation,
		    cost_accounting_id = EXCLUDED.cost_accounting_id;
	`, model.ModelEntryID, model.JournalID, model.Designation, model.CostAccountingID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to store entry template "+model.ModelEntryID, err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM model_lines WHERE model_entry_id = $1;`, model.ModelEntryID); err != nil {
		return apperrors.NewAppError(500, "failed to clear lines of template "+model.ModelEntryID, err)
	}
	for _, l := range lines {
		var thirdID *int64
		if l.ThirdID != 0 {
			t := l.ThirdID
			thirdID = &t
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO model_lines (model_entry_id, code, third_id, amount)
			VALUES ($1, $2, $3, $4);
		`, model.ModelEntryID, l.Code, thirdID, l.Amount)
		if err != nil {
			return apperrors.NewAppError(500, "failed to insert line of template "+model.ModelEntryID, err)
		}
	}

	return r.Commit(ctx, tx)
}

// DeleteModelEntry removes a template and its lines.
func (r *PgxModelEntryRepository) DeleteModelEntry(ctx context.Context, modelEntryID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM model_lines WHERE model_entry_id = $1;`, modelEntryID); err != nil {
		return apperrors.NewAppError(500, "failed to delete lines of template "+modelEntryID, err)
	}
	cmdTag, err := tx.Exec(ctx, `DELETE FROM model_entries WHERE model_entry_id = $1;`, modelEntryID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete entry template "+modelEntryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}
