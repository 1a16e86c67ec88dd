package billing

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// InvoiceStatus enumerates invoice lifecycle states.
type InvoiceStatus string

const (
	StatusDraft     InvoiceStatus = "DRAFT"
	StatusPosted    InvoiceStatus = "POSTED"
	StatusDue       InvoiceStatus = "DUE"
	StatusPaid      InvoiceStatus = "PAID"
	StatusCancelled InvoiceStatus = "CANCELLED"
	StatusReturned  InvoiceStatus = "RETURNED"
)

// Invoice categories. Indoor invoices originate from an admission and carry
// a mandatory sub-category.
const (
	CategoryLab    = "LAB"
	CategoryIndoor = "IND"
)

// Sentinel errors surfaced at the service boundary.
var (
	ErrNotFound          = errors.New("invoice not found")
	ErrDuplicateNumber   = errors.New("invoice number already exists")
	ErrOverpaid          = errors.New("paid amount exceeds net payable")
	ErrInvalidTransition = errors.New("invalid invoice state transition")
)

// ValidationError lists every required field missing from a draft. The draft
// itself is left untouched when this is returned.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", "))
}

// LineItem is one billable service, test or medication row. LineTotal and
// Payable are derived and overwritten on every recompute.
type LineItem struct {
	CatalogCode    string  `json:"catalog_code"`
	Description    string  `json:"description"`
	UnitPrice      float64 `json:"unit_price"`
	Quantity       int     `json:"quantity"`
	RowDiscount    float64 `json:"row_discount"`
	CommissionRate float64 `json:"commission_rate"`
	LineTotal      float64 `json:"line_total"`
	Payable        float64 `json:"payable"`
}

// Invoice aggregates line items with invoice-level discounts, payment state
// and the optional referrer commission ledger. All derived amounts are
// recomputed in full by Recalculate; only the inputs are persisted state.
type Invoice struct {
	ID          int64      `json:"id"`
	Number      string     `json:"number"`
	Category    string     `json:"category"`
	SubCategory string     `json:"sub_category,omitempty"`
	PatientID   int64      `json:"patient_id"`
	DoctorID    *int64     `json:"doctor_id,omitempty"`
	ReferrerID  *int64     `json:"referrer_id,omitempty"`
	Items       []LineItem `json:"items"`

	DiscountPercent float64 `json:"discount_percent"`
	DiscountAmount  float64 `json:"discount_amount"`
	SpecialDiscount float64 `json:"special_discount"`
	PaidAmount      float64 `json:"paid_amount"`

	TotalAmount   float64 `json:"total_amount"`
	TotalDiscount float64 `json:"total_discount"`
	NetPayable    float64 `json:"net_payable"`
	DueAmount     float64 `json:"due_amount"`

	CommissionEnabled bool              `json:"commission_enabled"`
	SpecialCommission float64           `json:"special_commission"`
	CommissionPaid    float64           `json:"commission_paid"`
	Commission        *CommissionLedger `json:"commission,omitempty"`

	Status      InvoiceStatus `json:"status"`
	InvoiceDate time.Time     `json:"invoice_date"`
	ReturnDate  *time.Time    `json:"return_date,omitempty"`
	ReturnRef   string        `json:"return_ref,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// Terminal reports whether the invoice can no longer change state.
func (s InvoiceStatus) Terminal() bool {
	return s == StatusCancelled || s == StatusReturned
}
