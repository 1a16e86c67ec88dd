package doctors

import "time"

// Doctor is one entry in the consultant directory.
type Doctor struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Specialty string    `json:"specialty"`
	Phone     string    `json:"phone"`
	VisitFee  float64   `json:"visit_fee"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
