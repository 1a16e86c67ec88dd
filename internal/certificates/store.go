package certificates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Store keeps each certificate type's templates under a single redis
// key as one JSON array. Writes replace the whole collection, so the
// last editor wins and there is never a partially updated set.
type Store struct {
	client *redis.Client
	tenant string
}

func NewStore(client *redis.Client, tenant string) *Store {
	if tenant == "" {
		tenant = "nidaan"
	}
	return &Store{client: client, tenant: tenant}
}

func (s *Store) key(t Type) string {
	return fmt.Sprintf("%s_certs_%s", s.tenant, t)
}

// Load returns the stored templates for a type; a missing key is an
// empty collection, not an error.
func (s *Store) Load(ctx context.Context, t Type) ([]Template, error) {
	payload, err := s.client.Get(ctx, s.key(t)).Bytes()
	if errors.Is(err, redis.Nil) {
		return []Template{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("certificates: load %s: %w", t, err)
	}
	var templates []Template
	if err := json.Unmarshal(payload, &templates); err != nil {
		return nil, fmt.Errorf("certificates: decode %s: %w", t, err)
	}
	return templates, nil
}

// Replace overwrites the whole collection for a type atomically.
func (s *Store) Replace(ctx context.Context, t Type, templates []Template) error {
	if templates == nil {
		templates = []Template{}
	}
	raw, err := json.Marshal(templates)
	if err != nil {
		return fmt.Errorf("certificates: encode %s: %w", t, err)
	}
	if err := s.client.Set(ctx, s.key(t), raw, 0).Err(); err != nil {
		return fmt.Errorf("certificates: store %s: %w", t, err)
	}
	return nil
}
