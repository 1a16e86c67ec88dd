package labtests

import (
	"context"

	"github.com/nidaan-his/nidaan-his/internal/masterdata/shared"
	"github.com/nidaan-his/nidaan-his/internal/money"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]LabTest, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (LabTest, error) {
	if id <= 0 {
		return LabTest{}, shared.ErrInvalidID
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) GetByCode(ctx context.Context, code string) (LabTest, error) {
	if code == "" {
		return LabTest{}, shared.ErrRequiredField
	}
	return s.repo.GetByCode(ctx, code)
}

func (s *Service) Create(ctx context.Context, t LabTest) (LabTest, error) {
	if err := validate(t); err != nil {
		return LabTest{}, err
	}
	t.Price = money.Parse(t.Price)
	t.CommissionRate = money.Parse(t.CommissionRate)
	return s.repo.Create(ctx, t)
}

func (s *Service) Update(ctx context.Context, id int64, t LabTest) error {
	if id <= 0 {
		return shared.ErrInvalidID
	}
	if err := validate(t); err != nil {
		return err
	}
	t.Price = money.Parse(t.Price)
	t.CommissionRate = money.Parse(t.CommissionRate)
	return s.repo.Update(ctx, id, t)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.ErrInvalidID
	}
	return s.repo.Delete(ctx, id)
}
