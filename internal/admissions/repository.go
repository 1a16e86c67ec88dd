package admissions

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nidaan-his/nidaan-his/internal/platform/db"
)

// RepositoryPort abstracts admission persistence.
type RepositoryPort interface {
	Get(ctx context.Context, id int64) (*Admission, error)
	List(ctx context.Context, filter ListFilter) ([]Admission, error)
	Insert(ctx context.Context, a *Admission) error
	Update(ctx context.Context, a *Admission) error
	AddCharge(ctx context.Context, c *Charge) error
}

// ListFilter narrows admission listings.
type ListFilter struct {
	Status    Status
	PatientID int64
	Limit     int
}

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const admissionColumns = `id, patient_id, doctor_id, sub_category, bed, status, admitted_at, discharged_at, invoice_number, created_at, updated_at`

func (r *Repository) Get(ctx context.Context, id int64) (*Admission, error) {
	var a Admission
	err := scanAdmission(r.pool.QueryRow(ctx, `SELECT `+admissionColumns+` FROM admissions WHERE id=$1`, id), &a)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if a.Charges, err = r.loadCharges(ctx, a.ID); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *Repository) List(ctx context.Context, filter ListFilter) ([]Admission, error) {
	query := `SELECT ` + admissionColumns + ` FROM admissions WHERE 1=1`
	args := []any{}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	if filter.PatientID > 0 {
		args = append(args, filter.PatientID)
		query += fmt.Sprintf(` AND patient_id = $%d`, len(args))
	}
	query += ` ORDER BY admitted_at DESC, id DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Admission
	for rows.Next() {
		var a Admission
		if err := scanAdmission(rows, &a); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *Repository) Insert(ctx context.Context, a *Admission) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO admissions (patient_id, doctor_id, sub_category, bed, status, admitted_at, discharged_at, invoice_number, created_at, updated_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,NOW(),NOW())
			RETURNING id, created_at, updated_at`,
			a.PatientID, a.DoctorID, a.SubCategory, a.Bed, a.Status, a.AdmittedAt, a.DischargedAt, a.InvoiceNumber,
		).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
		if err != nil {
			return err
		}
		for i := range a.Charges {
			a.Charges[i].AdmissionID = a.ID
			if err := insertCharge(ctx, tx, &a.Charges[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *Repository) Update(ctx context.Context, a *Admission) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE admissions SET doctor_id=$2, sub_category=$3, bed=$4, status=$5, discharged_at=$6, invoice_number=$7, updated_at=NOW()
		WHERE id=$1`,
		a.ID, a.DoctorID, a.SubCategory, a.Bed, a.Status, a.DischargedAt, a.InvoiceNumber,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) AddCharge(ctx context.Context, c *Charge) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return insertCharge(ctx, tx, c)
	})
}

func insertCharge(ctx context.Context, tx pgx.Tx, c *Charge) error {
	return tx.QueryRow(ctx, `
		INSERT INTO admission_charges (admission_id, description, unit_price, quantity, charged_at)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id`,
		c.AdmissionID, c.Description, c.UnitPrice, c.Quantity, c.ChargedAt,
	).Scan(&c.ID)
}

func (r *Repository) loadCharges(ctx context.Context, admissionID int64) ([]Charge, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, admission_id, description, unit_price, quantity, charged_at
		FROM admission_charges WHERE admission_id=$1 ORDER BY id`, admissionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Charge
	for rows.Next() {
		var c Charge
		if err := rows.Scan(&c.ID, &c.AdmissionID, &c.Description, &c.UnitPrice, &c.Quantity, &c.ChargedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAdmission(row rowScanner, a *Admission) error {
	return row.Scan(&a.ID, &a.PatientID, &a.DoctorID, &a.SubCategory, &a.Bed, &a.Status, &a.AdmittedAt, &a.DischargedAt, &a.InvoiceNumber, &a.CreatedAt, &a.UpdatedAt)
}
