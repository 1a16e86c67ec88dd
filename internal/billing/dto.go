package billing

import (
	"time"

	"github.com/nidaan-his/nidaan-his/internal/money"
)

// DraftItemRequest is one item row as posted by the console. Numeric fields
// arrive as strings so half-typed input degrades to zero instead of failing
// the whole request.
type DraftItemRequest struct {
	CatalogCode    string `json:"catalog_code"`
	Description    string `json:"description"`
	UnitPrice      any    `json:"unit_price"`
	Quantity       any    `json:"quantity"`
	RowDiscount    any    `json:"row_discount"`
	CommissionRate any    `json:"commission_rate"`
}

// DraftRequest creates or replaces a draft invoice.
type DraftRequest struct {
	Category          string             `json:"category" validate:"omitempty,oneof=LAB IND"`
	SubCategory       string             `json:"sub_category"`
	PatientID         int64              `json:"patient_id"`
	DoctorID          *int64             `json:"doctor_id"`
	ReferrerID        *int64             `json:"referrer_id"`
	Items             []DraftItemRequest `json:"items" validate:"dive"`
	DiscountPercent   *float64           `json:"discount_percent" validate:"omitempty,gte=0,lte=100"`
	DiscountAmount    *float64           `json:"discount_amount" validate:"omitempty,gte=0"`
	SpecialDiscount   any                `json:"special_discount"`
	PaidAmount        any                `json:"paid_amount"`
	CommissionEnabled bool               `json:"commission_enabled"`
	SpecialCommission float64            `json:"special_commission"`
	InvoiceDate       *time.Time         `json:"invoice_date"`
}

// PaymentRequest records a collection against an invoice or its commission
// ledger.
type PaymentRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// ToInput converts the request into the service input, applying the
// forgiving coercion policy to every numeric field.
func (r DraftRequest) ToInput() DraftInput {
	input := DraftInput{
		Category:          r.Category,
		SubCategory:       r.SubCategory,
		PatientID:         r.PatientID,
		DoctorID:          r.DoctorID,
		ReferrerID:        r.ReferrerID,
		DiscountPercent:   r.DiscountPercent,
		DiscountAmount:    r.DiscountAmount,
		SpecialDiscount:   money.Parse(r.SpecialDiscount),
		PaidAmount:        money.Parse(r.PaidAmount),
		CommissionEnabled: r.CommissionEnabled,
		SpecialCommission: money.Round(r.SpecialCommission),
	}
	if r.InvoiceDate != nil {
		input.InvoiceDate = *r.InvoiceDate
	}
	input.Items = make([]DraftItemInput, len(r.Items))
	for i, item := range r.Items {
		input.Items[i] = DraftItemInput{
			CatalogCode:    item.CatalogCode,
			Description:    item.Description,
			UnitPrice:      money.Parse(item.UnitPrice),
			Quantity:       money.ParseQuantity(item.Quantity),
			RowDiscount:    money.Parse(item.RowDiscount),
			CommissionRate: money.Parse(item.CommissionRate),
		}
	}
	return input
}
