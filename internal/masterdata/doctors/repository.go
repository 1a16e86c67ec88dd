package doctors

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nidaan-his/nidaan-his/internal/masterdata/shared"
)

type Repository interface {
	List(ctx context.Context, filters shared.ListFilters) ([]Doctor, int, error)
	Get(ctx context.Context, id int64) (Doctor, error)
	Create(ctx context.Context, d Doctor) (Doctor, error)
	Update(ctx context.Context, id int64, d Doctor) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const columns = `id, name, specialty, phone, visit_fee, active, created_at, updated_at`

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]Doctor, int, error) {
	filters.Normalize()

	query := `SELECT ` + columns + ` FROM doctors WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM doctors WHERE 1=1`
	args := []any{}
	countArgs := []any{}
	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		countArgs = append(countArgs, "%"+filters.Search+"%")
		query += fmt.Sprintf(` AND (name ILIKE $%d OR specialty ILIKE $%d)`, len(args), len(args))
		countQuery += ` AND (name ILIKE $1 OR specialty ILIKE $1)`
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

	query += " ORDER BY name ASC"
	args = append(args, filters.Limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))
	args = append(args, filters.Offset())
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Doctor
	for rows.Next() {
		var d Doctor
		if err := rows.Scan(&d.ID, &d.Name, &d.Specialty, &d.Phone, &d.VisitFee, &d.Active, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, d)
	}
	return out, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Doctor, error) {
	var d Doctor
	err := r.pool.QueryRow(ctx, `SELECT `+columns+` FROM doctors WHERE id=$1`, id).
		Scan(&d.ID, &d.Name, &d.Specialty, &d.Phone, &d.VisitFee, &d.Active, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Doctor{}, shared.ErrNotFound
	}
	return d, err
}

func (r *repository) Create(ctx context.Context, d Doctor) (Doctor, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO doctors (name, specialty, phone, visit_fee, active, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,NOW(),NOW())
		RETURNING id, created_at, updated_at`,
		d.Name, d.Specialty, d.Phone, d.VisitFee, d.Active,
	).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

func (r *repository) Update(ctx context.Context, id int64, d Doctor) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE doctors SET name=$2, specialty=$3, phone=$4, visit_fee=$5, active=$6, updated_at=NOW()
		WHERE id=$1`,
		id, d.Name, d.Specialty, d.Phone, d.VisitFee, d.Active,
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
	tag, err := r.pool.Exec(ctx, `DELETE FROM doctors WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
