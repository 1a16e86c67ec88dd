package referrers

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nidaan-his/nidaan-his/internal/masterdata/shared"
)

type Repository interface {
	List(ctx context.Context, filters shared.ListFilters) ([]Referrer, int, error)
	Get(ctx context.Context, id int64) (Referrer, error)
	Create(ctx context.Context, rf Referrer) (Referrer, error)
	Update(ctx context.Context, id int64, rf Referrer) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const columns = `id, name, phone, address, commission_percent, active, created_at, updated_at`

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]Referrer, int, error) {
	filters.Normalize()

	query := `SELECT ` + columns + ` FROM referrers WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM referrers WHERE 1=1`
	args := []any{}
	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		query += fmt.Sprintf(` AND (name ILIKE $%d OR phone ILIKE $%d)`, len(args), len(args))
		countQuery += ` AND (name ILIKE $1 OR phone ILIKE $1)`
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
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

	var out []Referrer
	for rows.Next() {
		var rf Referrer
		if err := rows.Scan(&rf.ID, &rf.Name, &rf.Phone, &rf.Address, &rf.CommissionPercent, &rf.Active, &rf.CreatedAt, &rf.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, rf)
	}
	return out, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Referrer, error) {
	var rf Referrer
	err := r.pool.QueryRow(ctx, `SELECT `+columns+` FROM referrers WHERE id=$1`, id).
		Scan(&rf.ID, &rf.Name, &rf.Phone, &rf.Address, &rf.CommissionPercent, &rf.Active, &rf.CreatedAt, &rf.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Referrer{}, shared.ErrNotFound
	}
	return rf, err
}

func (r *repository) Create(ctx context.Context, rf Referrer) (Referrer, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO referrers (name, phone, address, commission_percent, active, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,NOW(),NOW())
		RETURNING id, created_at, updated_at`,
		rf.Name, rf.Phone, rf.Address, rf.CommissionPercent, rf.Active,
	).Scan(&rf.ID, &rf.CreatedAt, &rf.UpdatedAt)
	return rf, err
}

func (r *repository) Update(ctx context.Context, id int64, rf Referrer) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE referrers SET name=$2, phone=$3, address=$4, commission_percent=$5, active=$6, updated_at=NOW()
		WHERE id=$1`,
		id, rf.Name, rf.Phone, rf.Address, rf.CommissionPercent, rf.Active,
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
	tag, err := r.pool.Exec(ctx, `DELETE FROM referrers WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
