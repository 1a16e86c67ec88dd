package patients

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nidaan-his/nidaan-his/internal/masterdata/shared"
)

type Repository interface {
	List(ctx context.Context, filters shared.ListFilters) ([]Patient, int, error)
	Get(ctx context.Context, id int64) (Patient, error)
	Create(ctx context.Context, p Patient) (Patient, error)
	Update(ctx context.Context, id int64, p Patient) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]Patient, int, error) {
	filters.Normalize()

	countQuery := `SELECT COUNT(*) FROM patients WHERE 1=1`
	query := `SELECT id, reg_no, name, age, sex, phone, address, created_at, updated_at FROM patients WHERE 1=1`
	args := []any{}
	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		clause := fmt.Sprintf(` AND (name ILIKE $%d OR phone ILIKE $%d OR reg_no ILIKE $%d)`, len(args), len(args), len(args))
		query += clause
		countQuery += ` AND (name ILIKE $1 OR phone ILIKE $1 OR reg_no ILIKE $1)`
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += " ORDER BY " + sortOrder(filters.SortBy, filters.SortDir)
	args = append(args, filters.Limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))
	args = append(args, filters.Offset())
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Patient
	for rows.Next() {
		var p Patient
		if err := rows.Scan(&p.ID, &p.RegNo, &p.Name, &p.Age, &p.Sex, &p.Phone, &p.Address, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	return out, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Patient, error) {
	var p Patient
	err := r.pool.QueryRow(ctx,
		`SELECT id, reg_no, name, age, sex, phone, address, created_at, updated_at FROM patients WHERE id=$1`, id,
	).Scan(&p.ID, &p.RegNo, &p.Name, &p.Age, &p.Sex, &p.Phone, &p.Address, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Patient{}, shared.ErrNotFound
	}
	return p, err
}

func (r *repository) Create(ctx context.Context, p Patient) (Patient, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO patients (reg_no, name, age, sex, phone, address, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,NOW(),NOW())
		RETURNING id, created_at, updated_at`,
		p.RegNo, p.Name, p.Age, p.Sex, p.Phone, p.Address,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *repository) Update(ctx context.Context, id int64, p Patient) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE patients SET name=$2, age=$3, sex=$4, phone=$5, address=$6, updated_at=NOW()
		WHERE id=$1`,
		id, p.Name, p.Age, p.Sex, p.Phone, p.Address,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM patients WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func sortOrder(sortBy, sortDir string) string {
	dir := "ASC"
	if sortDir == shared.SortDesc {
		dir = "DESC"
	}
	switch sortBy {
	case "reg_no":
		return "reg_no " + dir
	case "age":
		return "age " + dir
	default:
		return "name " + dir
	}
}
