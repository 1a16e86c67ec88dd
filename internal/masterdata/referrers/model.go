package referrers

import "time"

// Referrer is an agent or physician who sends patients to the center and
// earns commission on the tests they refer.
type Referrer struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	Phone             string    `json:"phone"`
	Address           string    `json:"address"`
	CommissionPercent float64   `json:"commission_percent"`
	Active            bool      `json:"active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
