package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	"github.com/bizledger/bizledger_app/internal/models"
	"github.com/bizledger/bizledger_app/internal/utils/mapping"
	"github.com/bizledger/bizledger_app/internal/utils/pagination"
)

type PgxBillRepository struct {
	BaseRepository
}

// newPgxBillRepository creates a new repository for bills and their details.
func newPgxBillRepository(pool *pgxpool.Pool) portsrepo.BillRepository {
	return &PgxBillRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxBillRepository implements portsrepo.BillRepository
var _ portsrepo.BillRepository = (*PgxBillRepository)(nil)

const billColumns = `
	bill_id, fiscal_year_id, bill_type, num, bill_date, comment, status,
	third_id, entry_id, cost_accounting_id,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanBill(row pgx.Row) (*models.Bill, error) {
	var m models.Bill
	err := row.Scan(
		&m.BillID,
		&m.FiscalYearID,
		&m.Type,
		&m.Num,
		&m.Date,
		&m.Comment,
		&m.Status,
		&m.ThirdID,
		&m.EntryID,
		&m.CostAccountingID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindBillByID retrieves a bill with its details.
func (r *PgxBillRepository) FindBillByID(ctx context.Context, billID string) (*domain.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE bill_id = $1;`

	m, err := scanBill(r.Pool.QueryRow(ctx, query, billID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find bill "+billID, err)
	}

	details, err := r.findDetails(ctx, billID)
	if err != nil {
		return nil, err
	}

	bill := mapping.ToDomainBill(*m, details)
	return &bill, nil
}

func (r *PgxBillRepository) findDetails(ctx context.Context, billID string) ([]models.BillDetail, error) {
	query := `
		SELECT detail_id, bill_id, designation, sell_account_code,
		       excl_tax_total, reduce_excl_tax, vat_amount
		FROM bill_details
		WHERE bill_id = $1
		ORDER BY detail_id;
	`
	rows, err := r.Pool.Query(ctx, query, billID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query details of bill "+billID, err)
	}
	defer rows.Close()

	var details []models.BillDetail
	for rows.Next() {
		var d models.BillDetail
		err := rows.Scan(
			&d.DetailID,
			&d.BillID,
			&d.Designation,
			&d.SellAccountCode,
			&d.ExclTaxTotal,
			&d.ReduceExclTax,
			&d.VATAmount,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan bill detail row", err)
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating bill detail rows", err)
	}
	return details, nil
}

// ListBillsByStatus lists bills with the given status (-1 = all), newest
// first, keyset-paginated on (bill_date, created_at). Details are loaded per
// bill; page sizes stay small in practice.
func (r *PgxBillRepository) ListBillsByStatus(ctx context.Context, status int, limit int, nextToken string) ([]domain.Bill, string, error) {
	query := `
		SELECT ` + billColumns + `
		FROM bills
		WHERE ($1 = -1 OR status = $1)
	`
	args := []interface{}{status}

	if nextToken != "" {
		billDate, createdAt, err := pagination.DecodeToken(nextToken)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += ` AND (bill_date, created_at) < ($2, $3)`
		args = append(args, billDate, createdAt)
	}

	// Fetch one extra row to know whether another page exists.
	query += fmt.Sprintf(` ORDER BY bill_date DESC, created_at DESC LIMIT %d;`, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, "", apperrors.NewAppError(500, "failed to query bills", err)
	}
	defer rows.Close()

	var billRows []models.Bill
	for rows.Next() {
		m, scanErr := scanBill(rows)
		if scanErr != nil {
			return nil, "", apperrors.NewAppError(500, "failed to scan bill row", scanErr)
		}
		billRows = append(billRows, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, "", apperrors.NewAppError(500, "error iterating bill rows", err)
	}

	var newToken string
	if len(billRows) > limit {
		billRows = billRows[:limit]
		last := billRows[len(billRows)-1]
		newToken = pagination.EncodeToken(last.Date, last.CreatedAt)
	}

	bills := make([]domain.Bill, 0, len(billRows))
	for _, m := range billRows {
		details, err := r.findDetails(ctx, m.BillID)
		if err != nil {
			return nil, "", err
		}
		bills = append(bills, mapping.ToDomainBill(m, details))
	}
	return bills, newToken, nil
}

// SaveBill persists a new bill with its details in one transaction.
func (r *PgxBillRepository) SaveBill(ctx context.Context, bill domain.Bill) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelBill(bill)
	query := `
		INSERT INTO bills (
			bill_id, fiscal_year_id, bill_type, num, bill_date, comment, status,
			third_id, entry_id, cost_accounting_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err = tx.Exec(ctx, query,
		m.BillID,
		m.FiscalYearID,
		m.Type,
		m.Num,
		m.Date,
		m.Comment,
		m.Status,
		m.ThirdID,
		m.EntryID,
		m.CostAccountingID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert bill "+m.BillID, err)
	}

	detailQuery := `
		INSERT INTO bill_details (bill_id, designation, sell_account_code, excl_tax_total, reduce_excl_tax, vat_amount)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for _, d := range bill.Details {
		md := mapping.ToModelBillDetail(d)
		_, err := tx.Exec(ctx, detailQuery,
			m.BillID,
			md.Designation,
			md.SellAccountCode,
			md.ExclTaxTotal,
			md.ReduceExclTax,
			md.VATAmount,
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to insert detail of bill "+m.BillID, err)
		}
	}

	return r.Commit(ctx, tx)
}

// UpdateBill updates the bill header.
func (r *PgxBillRepository) UpdateBill(ctx context.Context, bill domain.Bill) error {
	m := mapping.ToModelBill(bill)
	query := `
		UPDATE bills
		SET fiscal_year_id = $2, num = $3, status = $4, entry_id = $5,
		    cost_accounting_id = $6, last_updated_at = $7, last_updated_by = $8
		WHERE bill_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.BillID,
		m.FiscalYearID,
		m.Num,
		m.Status,
		m.EntryID,
		m.CostAccountingID,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update bill "+m.BillID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// NextBillNum atomically assigns the next number scoped to
// (fiscal year, bill type). The counter row is upserted and locked by the
// update itself, so two concurrent validations cannot draw the same number.
func (r *PgxBillRepository) NextBillNum(ctx context.Context, fiscalYearID string, billType domain.BillType) (int, error) {
	query := `
		INSERT INTO bill_num_counters (fiscal_year_id, bill_type, last_num)
		VALUES ($1, $2, 1)
		ON CONFLICT (fiscal_year_id, bill_type)
		DO UPDATE SET last_num = bill_num_counters.last_num + 1
		RETURNING last_num;
	`
	var num int
	if err := r.Pool.QueryRow(ctx, query, fiscalYearID, int16(billType)).Scan(&num); err != nil {
		return 0, apperrors.NewAppError(500, "failed to draw bill number for year "+fiscalYearID, err)
	}
	return num, nil
}
