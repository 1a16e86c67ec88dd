package referrers

import (
	"context"
	"fmt"
	"strings"

	"github.com/nidaan-his/nidaan-his/internal/masterdata/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Referrer, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Referrer, error) {
	if id <= 0 {
		return Referrer{}, shared.ErrInvalidID
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, rf Referrer) (Referrer, error) {
	if err := validate(rf); err != nil {
		return Referrer{}, err
	}
	return s.repo.Create(ctx, rf)
}

func (s *Service) Update(ctx context.Context, id int64, rf Referrer) error {
	if id <= 0 {
		return shared.ErrInvalidID
	}
	if err := validate(rf); err != nil {
		return err
	}
	return s.repo.Update(ctx, id, rf)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.ErrInvalidID
	}
	return s.repo.Delete(ctx, id)
}

func validate(rf Referrer) error {
	if strings.TrimSpace(rf.Name) == "" {
		return fmt.Errorf("%w: name", shared.ErrRequiredField)
	}
	if rf.CommissionPercent < 0 || rf.CommissionPercent > 100 {
		return fmt.Errorf("commission percent must be between 0 and 100")
	}
	return nil
}
