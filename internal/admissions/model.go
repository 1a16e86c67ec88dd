// Package admissions tracks indoor stays: the admission record, the
// running charge sheet, and the handover to billing at discharge.
package admissions

import (
	"errors"
	"time"
)

type Status string

const (
	StatusAdmitted   Status = "ADMITTED"
	StatusDischarged Status = "DISCHARGED"
)

var (
	ErrNotFound    = errors.New("admission not found")
	ErrNotAdmitted = errors.New("admission is not active")
	ErrNoCharges   = errors.New("admission has no charges to bill")
)

// Charge is one line on the indoor charge sheet. Charges accumulate
// while the patient is admitted and become invoice line items at
// discharge.
type Charge struct {
	ID          int64     `json:"id"`
	AdmissionID int64     `json:"admission_id"`
	Description string    `json:"description"`
	UnitPrice   float64   `json:"unit_price"`
	Quantity    int       `json:"quantity"`
	ChargedAt   time.Time `json:"charged_at"`
}

type Admission struct {
	ID            int64      `json:"id"`
	PatientID     int64      `json:"patient_id"`
	DoctorID      *int64     `json:"doctor_id,omitempty"`
	SubCategory   string     `json:"sub_category"`
	Bed           string     `json:"bed"`
	Status        Status     `json:"status"`
	AdmittedAt    time.Time  `json:"admitted_at"`
	DischargedAt  *time.Time `json:"discharged_at,omitempty"`
	InvoiceNumber string     `json:"invoice_number,omitempty"`
	Charges       []Charge   `json:"charges"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// ChargeTotal sums the charge sheet without any discount applied.
func (a *Admission) ChargeTotal() float64 {
	var total float64
	for _, c := range a.Charges {
		total += c.UnitPrice * float64(c.Quantity)
	}
	return total
}
