package admissions

import (
	"context"
	"strings"
	"time"

	"github.com/nidaan-his/nidaan-his/internal/billing"
	"github.com/nidaan-his/nidaan-his/internal/money"
)

// Biller is the slice of the billing service the discharge flow needs.
type Biller interface {
	CreateDraft(ctx context.Context, input billing.DraftInput) (*billing.Invoice, error)
	Post(ctx context.Context, number string) (*billing.Invoice, error)
}

// AdmitInput is what the front desk enters when admitting a patient.
type AdmitInput struct {
	PatientID   int64
	DoctorID    *int64
	SubCategory string
	Bed         string
}

// ChargeInput is one charge sheet entry.
type ChargeInput struct {
	Description string
	UnitPrice   any
	Quantity    any
}

// DischargeInput carries the settlement the desk records at discharge.
// Discount fields behave exactly as on a billing draft.
type DischargeInput struct {
	DiscountPercent   *float64
	DiscountAmount    *float64
	SpecialDiscount   float64
	PaidAmount        float64
	CommissionEnabled bool
	SpecialCommission float64
	ReferrerID        *int64
}

type Service struct {
	repo   RepositoryPort
	biller Biller
	now    func() time.Time
}

func NewService(repo RepositoryPort, biller Biller, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{repo: repo, biller: biller, now: now}
}

// Admit opens an admission record. Sub-category is mandatory for indoor
// patients; the invoice raised at discharge inherits it.
func (s *Service) Admit(ctx context.Context, input AdmitInput) (*Admission, error) {
	var missing []string
	if input.PatientID <= 0 {
		missing = append(missing, "patient")
	}
	if strings.TrimSpace(input.SubCategory) == "" {
		missing = append(missing, "sub_category")
	}
	if strings.TrimSpace(input.Bed) == "" {
		missing = append(missing, "bed")
	}
	if len(missing) > 0 {
		return nil, &billing.ValidationError{Missing: missing}
	}

	a := &Admission{
		PatientID:   input.PatientID,
		DoctorID:    input.DoctorID,
		SubCategory: strings.ToUpper(strings.TrimSpace(input.SubCategory)),
		Bed:         strings.TrimSpace(input.Bed),
		Status:      StatusAdmitted,
		AdmittedAt:  s.now(),
	}
	if err := s.repo.Insert(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// AddCharge appends a charge sheet entry to an active admission.
// Amounts go through the forgiving money parser, so a blank or garbled
// price lands as zero rather than an error.
func (s *Service) AddCharge(ctx context.Context, admissionID int64, input ChargeInput) (*Admission, error) {
	a, err := s.repo.Get(ctx, admissionID)
	if err != nil {
		return nil, err
	}
	if a.Status != StatusAdmitted {
		return nil, ErrNotAdmitted
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, &billing.ValidationError{Missing: []string{"description"}}
	}

	c := Charge{
		AdmissionID: a.ID,
		Description: strings.TrimSpace(input.Description),
		UnitPrice:   money.Parse(input.UnitPrice),
		Quantity:    money.ParseQuantity(input.Quantity),
		ChargedAt:   s.now(),
	}
	if err := s.repo.AddCharge(ctx, &c); err != nil {
		return nil, err
	}
	a.Charges = append(a.Charges, c)
	return a, nil
}

// Discharge closes the admission and raises the indoor invoice from the
// accumulated charge sheet. The invoice is posted immediately so the
// stay enters the ledger on the discharge day.
func (s *Service) Discharge(ctx context.Context, admissionID int64, input DischargeInput) (*Admission, *billing.Invoice, error) {
	a, err := s.repo.Get(ctx, admissionID)
	if err != nil {
		return nil, nil, err
	}
	if a.Status != StatusAdmitted {
		return nil, nil, ErrNotAdmitted
	}
	if len(a.Charges) == 0 {
		return nil, nil, ErrNoCharges
	}

	items := make([]billing.DraftItemInput, 0, len(a.Charges))
	for _, c := range a.Charges {
		items = append(items, billing.DraftItemInput{
			Description: c.Description,
			UnitPrice:   c.UnitPrice,
			Quantity:    c.Quantity,
		})
	}

	draft := billing.DraftInput{
		Category:          billing.CategoryIndoor,
		SubCategory:       a.SubCategory,
		PatientID:         a.PatientID,
		DoctorID:          a.DoctorID,
		ReferrerID:        input.ReferrerID,
		Items:             items,
		DiscountPercent:   input.DiscountPercent,
		DiscountAmount:    input.DiscountAmount,
		SpecialDiscount:   input.SpecialDiscount,
		PaidAmount:        input.PaidAmount,
		CommissionEnabled: input.CommissionEnabled,
		SpecialCommission: input.SpecialCommission,
		InvoiceDate:       s.now(),
	}

	inv, err := s.biller.CreateDraft(ctx, draft)
	if err != nil {
		return nil, nil, err
	}
	inv, err = s.biller.Post(ctx, inv.Number)
	if err != nil {
		return nil, nil, err
	}

	discharged := s.now()
	a.Status = StatusDischarged
	a.DischargedAt = &discharged
	a.InvoiceNumber = inv.Number
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, nil, err
	}
	return a, inv, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Admission, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Admission, error) {
	return s.repo.List(ctx, filter)
}
