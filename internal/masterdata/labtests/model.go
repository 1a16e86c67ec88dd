package labtests

import "time"

// LabTest is one catalog entry the billing desk can add to an invoice.
// CommissionRate is the per-unit referrer commission in taka, not a percent.
type LabTest struct {
	ID             int64     `json:"id"`
	Code           string    `json:"code"`
	Name           string    `json:"name"`
	Department     string    `json:"department"`
	Price          float64   `json:"price"`
	CommissionRate float64   `json:"commission_rate"`
	Reagent        string    `json:"reagent,omitempty"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
