package doctors

import (
	"context"
	"fmt"
	"strings"

	"github.com/nidaan-his/nidaan-his/internal/masterdata/shared"
	"github.com/nidaan-his/nidaan-his/internal/money"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Doctor, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Doctor, error) {
	if id <= 0 {
		return Doctor{}, shared.ErrInvalidID
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, d Doctor) (Doctor, error) {
	if err := validate(d); err != nil {
		return Doctor{}, err
	}
	d.VisitFee = money.Parse(d.VisitFee)
	return s.repo.Create(ctx, d)
}

func (s *Service) Update(ctx context.Context, id int64, d Doctor) error {
	if id <= 0 {
		return shared.ErrInvalidID
	}
	if err := validate(d); err != nil {
		return err
	}
	d.VisitFee = money.Parse(d.VisitFee)
	return s.repo.Update(ctx, id, d)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.ErrInvalidID
	}
	return s.repo.Delete(ctx, id)
}

func validate(d Doctor) error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("%w: name", shared.ErrRequiredField)
	}
	return nil
}
