package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nidaan-his/nidaan-his/internal/platform/db"
)

// Repository provides PostgreSQL backed persistence for invoices.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const invoiceColumns = `
	id, number, category, sub_category, patient_id, doctor_id, referrer_id,
	discount_percent, discount_amount, special_discount, paid_amount,
	total_amount, total_discount, net_payable, due_amount,
	commission_enabled, special_commission, commission_paid,
	status, invoice_date, return_date, return_ref, created_at, updated_at`

// Get loads one invoice with its items.
func (r *Repository) Get(ctx context.Context, number string) (*Invoice, error) {
	query := `SELECT` + invoiceColumns + ` FROM invoices WHERE number = $1`
	inv, err := scanInvoice(r.pool.QueryRow(ctx, query, number))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, number)
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	items, err := r.listItems(ctx, inv.ID)
	if err != nil {
		return nil, err
	}
	inv.Items = items
	inv.Recalculate()
	return inv, nil
}

// List returns invoices matching the filter, newest first, items included.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]Invoice, error) {
	query := `SELECT` + invoiceColumns + ` FROM invoices WHERE 1=1`
	args := []any{}

	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filter.PatientID != 0 {
		args = append(args, filter.PatientID)
		query += fmt.Sprintf(" AND patient_id = $%d", len(args))
	}
	if !filter.From.IsZero() {
		args = append(args, filter.From)
		query += fmt.Sprintf(" AND invoice_date >= $%d", len(args))
	}
	if !filter.To.IsZero() {
		args = append(args, filter.To)
		query += fmt.Sprintf(" AND invoice_date < $%d", len(args))
	}
	query += " ORDER BY invoice_date DESC, number DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		invoices = append(invoices, *inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range invoices {
		items, err := r.listItems(ctx, invoices[i].ID)
		if err != nil {
			return nil, err
		}
		invoices[i].Items = items
		invoices[i].Recalculate()
	}
	return invoices, nil
}

// ListNumbersByDay returns every invoice number carrying the day prefix,
// used to derive the next sequence suffix.
func (r *Repository) ListNumbersByDay(ctx context.Context, dayPrefix string) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT number FROM invoices WHERE number LIKE $1 || '%' ORDER BY number`, dayPrefix)
	if err != nil {
		return nil, fmt.Errorf("list numbers: %w", err)
	}
	defer rows.Close()

	var numbers []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		numbers = append(numbers, n)
	}
	return numbers, rows.Err()
}

// Insert persists a new invoice and its items in one transaction. A unique
// violation on the number maps to ErrDuplicateNumber so the caller can ask
// for a fresh candidate.
func (r *Repository) Insert(ctx context.Context, inv *Invoice) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		query := `
			INSERT INTO invoices (
				number, category, sub_category, patient_id, doctor_id, referrer_id,
				discount_percent, discount_amount, special_discount, paid_amount,
				total_amount, total_discount, net_payable, due_amount,
				commission_enabled, special_commission, commission_paid,
				status, invoice_date, return_date, return_ref, created_at, updated_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23)
			RETURNING id`
		err := tx.QueryRow(ctx, query,
			inv.Number, inv.Category, inv.SubCategory, inv.PatientID, inv.DoctorID, inv.ReferrerID,
			inv.DiscountPercent, inv.DiscountAmount, inv.SpecialDiscount, inv.PaidAmount,
			inv.TotalAmount, inv.TotalDiscount, inv.NetPayable, inv.DueAmount,
			inv.CommissionEnabled, inv.SpecialCommission, inv.CommissionPaid,
			inv.Status, inv.InvoiceDate, inv.ReturnDate, inv.ReturnRef, inv.CreatedAt, inv.UpdatedAt,
		).Scan(&inv.ID)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return fmt.Errorf("%w: %s", ErrDuplicateNumber, inv.Number)
			}
			return fmt.Errorf("insert invoice: %w", err)
		}
		return insertItems(ctx, tx, inv.ID, inv.Items)
	})
}

// Update rewrites an invoice and replaces its items.
func (r *Repository) Update(ctx context.Context, inv *Invoice) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		query := `
			UPDATE invoices SET
				category=$2, sub_category=$3, patient_id=$4, doctor_id=$5, referrer_id=$6,
				discount_percent=$7, discount_amount=$8, special_discount=$9, paid_amount=$10,
				total_amount=$11, total_discount=$12, net_payable=$13, due_amount=$14,
				commission_enabled=$15, special_commission=$16, commission_paid=$17,
				status=$18, return_date=$19, return_ref=$20, updated_at=$21
			WHERE number=$1`
		tag, err := tx.Exec(ctx, query,
			inv.Number, inv.Category, inv.SubCategory, inv.PatientID, inv.DoctorID, inv.ReferrerID,
			inv.DiscountPercent, inv.DiscountAmount, inv.SpecialDiscount, inv.PaidAmount,
			inv.TotalAmount, inv.TotalDiscount, inv.NetPayable, inv.DueAmount,
			inv.CommissionEnabled, inv.SpecialCommission, inv.CommissionPaid,
			inv.Status, inv.ReturnDate, inv.ReturnRef, inv.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("update invoice: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: %s", ErrNotFound, inv.Number)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id=$1`, inv.ID); err != nil {
			return fmt.Errorf("clear items: %w", err)
		}
		return insertItems(ctx, tx, inv.ID, inv.Items)
	})
}

func insertItems(ctx context.Context, tx pgx.Tx, invoiceID int64, items []LineItem) error {
	for order, item := range items {
		_, err := tx.Exec(ctx, `
			INSERT INTO invoice_items (
				invoice_id, item_order, catalog_code, description,
				unit_price, quantity, row_discount, commission_rate
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
			invoiceID, order, item.CatalogCode, item.Description,
			item.UnitPrice, item.Quantity, item.RowDiscount, item.CommissionRate,
		)
		if err != nil {
			return fmt.Errorf("insert item: %w", err)
		}
	}
	return nil
}

func (r *Repository) listItems(ctx context.Context, invoiceID int64) ([]LineItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT catalog_code, description, unit_price, quantity, row_discount, commission_rate
		FROM invoice_items WHERE invoice_id=$1 ORDER BY item_order`, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []LineItem
	for rows.Next() {
		var item LineItem
		if err := rows.Scan(&item.CatalogCode, &item.Description, &item.UnitPrice,
			&item.Quantity, &item.RowDiscount, &item.CommissionRate); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInvoice(row rowScanner) (*Invoice, error) {
	var inv Invoice
	err := row.Scan(
		&inv.ID, &inv.Number, &inv.Category, &inv.SubCategory, &inv.PatientID, &inv.DoctorID, &inv.ReferrerID,
		&inv.DiscountPercent, &inv.DiscountAmount, &inv.SpecialDiscount, &inv.PaidAmount,
		&inv.TotalAmount, &inv.TotalDiscount, &inv.NetPayable, &inv.DueAmount,
		&inv.CommissionEnabled, &inv.SpecialCommission, &inv.CommissionPaid,
		&inv.Status, &inv.InvoiceDate, &inv.ReturnDate, &inv.ReturnRef, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}
