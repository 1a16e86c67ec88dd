package certificates

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	store *Store
	now   func() time.Time
}

func NewService(store *Store, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{store: store, now: now}
}

func (s *Service) List(ctx context.Context, t Type) ([]Template, error) {
	if !t.Valid() {
		return nil, ErrUnknownType
	}
	return s.store.Load(ctx, t)
}

func (s *Service) Get(ctx context.Context, t Type, id string) (Template, error) {
	templates, err := s.List(ctx, t)
	if err != nil {
		return Template{}, err
	}
	for _, tpl := range templates {
		if tpl.ID == id {
			return tpl, nil
		}
	}
	return Template{}, ErrNotFound
}

// Replace saves the submitted set as the new collection for the type.
// New entries get IDs assigned; every entry gets a fresh timestamp.
func (s *Service) Replace(ctx context.Context, t Type, templates []Template) ([]Template, error) {
	if !t.Valid() {
		return nil, ErrUnknownType
	}
	stamped := make([]Template, 0, len(templates))
	for _, tpl := range templates {
		tpl.Name = strings.TrimSpace(tpl.Name)
		if tpl.Name == "" && strings.TrimSpace(tpl.Body) == "" {
			continue
		}
		if tpl.ID == "" {
			tpl.ID = uuid.NewString()
		}
		tpl.UpdatedAt = s.now()
		stamped = append(stamped, tpl)
	}
	if err := s.store.Replace(ctx, t, stamped); err != nil {
		return nil, err
	}
	return stamped, nil
}
