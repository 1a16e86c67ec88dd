package admissions

type AdmitRequest struct {
	PatientID   int64  `json:"patient_id" validate:"required,gt=0"`
	DoctorID    *int64 `json:"doctor_id"`
	SubCategory string `json:"sub_category" validate:"required"`
	Bed         string `json:"bed" validate:"required"`
}

func (r AdmitRequest) ToInput() AdmitInput {
	return AdmitInput{
		PatientID:   r.PatientID,
		DoctorID:    r.DoctorID,
		SubCategory: r.SubCategory,
		Bed:         r.Bed,
	}
}

// ChargeRequest keeps the numeric fields loose; the desk posts whatever
// the form holds and the money parser coerces it.
type ChargeRequest struct {
	Description string `json:"description" validate:"required"`
	UnitPrice   any    `json:"unit_price"`
	Quantity    any    `json:"quantity"`
}

func (r ChargeRequest) ToInput() ChargeInput {
	return ChargeInput{Description: r.Description, UnitPrice: r.UnitPrice, Quantity: r.Quantity}
}

type DischargeRequest struct {
	DiscountPercent   *float64 `json:"discount_percent" validate:"omitempty,gte=0,lte=100"`
	DiscountAmount    *float64 `json:"discount_amount" validate:"omitempty,gte=0"`
	SpecialDiscount   float64  `json:"special_discount" validate:"gte=0"`
	PaidAmount        float64  `json:"paid_amount" validate:"gte=0"`
	CommissionEnabled bool     `json:"commission_enabled"`
	SpecialCommission float64  `json:"special_commission"`
	ReferrerID        *int64   `json:"referrer_id"`
}

func (r DischargeRequest) ToInput() DischargeInput {
	return DischargeInput{
		DiscountPercent:   r.DiscountPercent,
		DiscountAmount:    r.DiscountAmount,
		SpecialDiscount:   r.SpecialDiscount,
		PaidAmount:        r.PaidAmount,
		CommissionEnabled: r.CommissionEnabled,
		SpecialCommission: r.SpecialCommission,
		ReferrerID:        r.ReferrerID,
	}
}
