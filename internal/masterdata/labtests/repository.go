package labtests

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nidaan-his/nidaan-his/internal/masterdata/shared"
)

type Repository interface {
	List(ctx context.Context, filters shared.ListFilters) ([]LabTest, int, error)
	Get(ctx context.Context, id int64) (LabTest, error)
	GetByCode(ctx context.Context, code string) (LabTest, error)
	Create(ctx context.Context, t LabTest) (LabTest, error)
	Update(ctx context.Context, id int64, t LabTest) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const columns = `id, code, name, department, price, commission_rate, reagent, active, created_at, updated_at`

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]LabTest, int, error) {
	filters.Normalize()

	query := `SELECT ` + columns + ` FROM lab_tests WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM lab_tests WHERE 1=1`
	args := []any{}
	countArgs := []any{}
	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		countArgs = append(countArgs, "%"+filters.Search+"%")
		query += fmt.Sprintf(` AND (code ILIKE $%d OR name ILIKE $%d OR department ILIKE $%d)`, len(args), len(args), len(args))
		countQuery += ` AND (code ILIKE $1 OR name ILIKE $1 OR department ILIKE $1)`
	}
	if filters.Active != nil {
		args = append(args, *filters.Active)
		countArgs = append(countArgs, *filters.Active)
		query += fmt.Sprintf(` AND active = $%d`, len(args))
		countQuery += fmt.Sprintf(` AND active = $%d`, len(countArgs))
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
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

	var out []LabTest
	for rows.Next() {
		var t LabTest
		if err := scanTest(rows, &t); err != nil {
			return nil, 0, err
		}
		out = append(out, t)
	}
	return out, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (LabTest, error) {
	var t LabTest
	err := scanTest(r.pool.QueryRow(ctx, `SELECT `+columns+` FROM lab_tests WHERE id=$1`, id), &t)
	if errors.Is(err, pgx.ErrNoRows) {
		return LabTest{}, shared.ErrNotFound
	}
	return t, err
}

func (r *repository) GetByCode(ctx context.Context, code string) (LabTest, error) {
	var t LabTest
	err := scanTest(r.pool.QueryRow(ctx, `SELECT `+columns+` FROM lab_tests WHERE code=$1`, code), &t)
	if errors.Is(err, pgx.ErrNoRows) {
		return LabTest{}, shared.ErrNotFound
	}
	return t, err
}

func (r *repository) Create(ctx context.Context, t LabTest) (LabTest, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO lab_tests (code, name, department, price, commission_rate, reagent, active, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,NOW(),NOW())
		RETURNING id, created_at, updated_at`,
		t.Code, t.Name, t.Department, t.Price, t.CommissionRate, t.Reagent, t.Active,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func (r *repository) Update(ctx context.Context, id int64, t LabTest) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE lab_tests SET code=$2, name=$3, department=$4, price=$5, commission_rate=$6, reagent=$7, active=$8, updated_at=NOW()
		WHERE id=$1`,
		id, t.Code, t.Name, t.Department, t.Price, t.CommissionRate, t.Reagent, t.Active,
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
	tag, err := r.pool.Exec(ctx, `DELETE FROM lab_tests WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTest(row rowScanner, t *LabTest) error {
	return row.Scan(&t.ID, &t.Code, &t.Name, &t.Department, &t.Price, &t.CommissionRate, &t.Reagent, &t.Active, &t.CreatedAt, &t.UpdatedAt)
}

func sortOrder(sortBy, sortDir string) string {
	dir := "ASC"
	if sortDir == shared.SortDesc {
		dir = "DESC"
	}
	switch sortBy {
	case "code":
		return "code " + dir
	case "price":
		return "price " + dir
	case "department":
		return "department " + dir
	default:
		return "name " + dir
	}
}
