package patients

import (
	"context"
	"errors"

	"github.com/nidaan-his/nidaan-his/internal/masterdata/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Patient, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Patient, error) {
	if id <= 0 {
		return Patient{}, shared.ErrInvalidID
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Register(ctx context.Context, p Patient) (Patient, error) {
	if err := validate(p); err != nil {
		return Patient{}, err
	}
	return s.repo.Create(ctx, p)
}

func (s *Service) Update(ctx context.Context, id int64, p Patient) error {
	if id <= 0 {
		return shared.ErrInvalidID
	}
	if err := validate(p); err != nil {
		return err
	}
	return s.repo.Update(ctx, id, p)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.ErrInvalidID
	}
	return s.repo.Delete(ctx, id)
}

var errUnknownSex = errors.New("sex must be one of M, F, O")
