package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nidaan-his/nidaan-his/internal/money"
)

// ListFilter narrows invoice listings.
type ListFilter struct {
	Status    InvoiceStatus
	Category  string
	PatientID int64
	From      time.Time
	To        time.Time
	Limit     int
}

// RepositoryPort defines data access for invoices. The pgx implementation
// lives in repository.go; tests use an in-memory fake.
type RepositoryPort interface {
	Get(ctx context.Context, number string) (*Invoice, error)
	List(ctx context.Context, filter ListFilter) ([]Invoice, error)
	ListNumbersByDay(ctx context.Context, dayPrefix string) ([]string, error)
	Insert(ctx context.Context, inv *Invoice) error
	Update(ctx context.Context, inv *Invoice) error
}

// DraftItemInput is one raw item row off the billing form.
type DraftItemInput struct {
	CatalogCode    string
	Description    string
	UnitPrice      float64
	Quantity       int
	RowDiscount    float64
	CommissionRate float64
}

// DraftInput carries everything the desk enters for an invoice. Either
// DiscountPercent or DiscountAmount may be set; whichever arrives is
// reconciled against the other.
type DraftInput struct {
	Category          string
	SubCategory       string
	PatientID         int64
	DoctorID          *int64
	ReferrerID        *int64
	Items             []DraftItemInput
	DiscountPercent   *float64
	DiscountAmount    *float64
	SpecialDiscount   float64
	PaidAmount        float64
	CommissionEnabled bool
	SpecialCommission float64
	InvoiceDate       time.Time
}

// Service handles invoice business logic.
type Service struct {
	repo RepositoryPort
	now  func() time.Time
}

// NewService builds a Service. A nil clock defaults to time.Now.
func NewService(repo RepositoryPort, clock func() time.Time) *Service {
	if clock == nil {
		clock = time.Now
	}
	return &Service{repo: repo, now: clock}
}

// PreviewNumber returns the candidate number the next invoice in the
// category would receive today. It does not reserve anything; only a saved
// invoice advances the sequence.
func (s *Service) PreviewNumber(ctx context.Context, category string) (string, error) {
	day := s.now()
	existing, err := s.repo.ListNumbersByDay(ctx, DayPrefix(category, day))
	if err != nil {
		return "", fmt.Errorf("list numbers: %w", err)
	}
	return NextNumber(category, day, existing), nil
}

// CreateDraft assigns a number and persists a new draft invoice.
func (s *Service) CreateDraft(ctx context.Context, input DraftInput) (*Invoice, error) {
	if input.Category == "" {
		input.Category = CategoryLab
	}
	now := s.now()
	invoiceDate := input.InvoiceDate
	if invoiceDate.IsZero() {
		invoiceDate = now
	}

	existing, err := s.repo.ListNumbersByDay(ctx, DayPrefix(input.Category, invoiceDate))
	if err != nil {
		return nil, fmt.Errorf("list numbers: %w", err)
	}

	inv := &Invoice{
		Number:      NextNumber(input.Category, invoiceDate, existing),
		Status:      StatusDraft,
		InvoiceDate: invoiceDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.applyInput(inv, input)

	if err := s.repo.Insert(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// UpdateDraft replaces the editable fields of a draft. Saved invoices must
// be reopened first; terminal invoices are frozen.
func (s *Service) UpdateDraft(ctx context.Context, number string, input DraftInput) (*Invoice, error) {
	inv, err := s.repo.Get(ctx, number)
	if err != nil {
		return nil, err
	}
	if inv.Status != StatusDraft {
		return nil, fmt.Errorf("%w: edit on %s", ErrInvalidTransition, inv.Status)
	}
	s.applyInput(inv, input)
	inv.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// Reopen puts a saved invoice back into draft for editing.
func (s *Service) Reopen(ctx context.Context, number string) (*Invoice, error) {
	return s.transition(ctx, number, EventReopen, nil)
}

// Post saves a draft: validation, arithmetic guard, then the DRAFT→POSTED
// transition with DUE/PAID derived from the balance. The draft is preserved
// unmutated when any check fails.
func (s *Service) Post(ctx context.Context, number string) (*Invoice, error) {
	inv, err := s.repo.Get(ctx, number)
	if err != nil {
		return nil, err
	}
	if err := ValidateForSave(inv); err != nil {
		return nil, err
	}

	next, err := Transition(inv.Status, EventSave)
	if err != nil {
		return nil, err
	}
	inv.Status = next
	inv.Recalculate()
	if err := CheckArithmetic(inv); err != nil {
		return nil, err
	}
	inv.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// RecordPayment collects cash against a saved invoice's due balance.
func (s *Service) RecordPayment(ctx context.Context, number string, amount float64) (*Invoice, error) {
	amount = money.Parse(amount)
	if amount <= 0 {
		return nil, errors.New("payment amount must be positive")
	}
	inv, err := s.repo.Get(ctx, number)
	if err != nil {
		return nil, err
	}
	if inv.Status.Terminal() || inv.Status == StatusDraft {
		return nil, fmt.Errorf("%w: payment on %s", ErrInvalidTransition, inv.Status)
	}
	inv.PaidAmount = money.Round(inv.PaidAmount + amount)
	inv.Recalculate()
	if err := CheckArithmetic(inv); err != nil {
		return nil, err
	}
	inv.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// RecordCommissionPayment pays out commission to the referrer.
func (s *Service) RecordCommissionPayment(ctx context.Context, number string, amount float64) (*Invoice, error) {
	amount = money.Parse(amount)
	if amount <= 0 {
		return nil, errors.New("commission payment must be positive")
	}
	inv, err := s.repo.Get(ctx, number)
	if err != nil {
		return nil, err
	}
	if !inv.CommissionEnabled {
		return nil, errors.New("commission tracking is not enabled on this invoice")
	}
	inv.CommissionPaid = money.Round(inv.CommissionPaid + amount)
	inv.Recalculate()
	inv.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// Cancel voids a saved invoice. Cancellation is terminal; a wrongly
// cancelled invoice is re-created, never un-cancelled.
func (s *Service) Cancel(ctx context.Context, number string) (*Invoice, error) {
	return s.transition(ctx, number, EventCancel, nil)
}

// Return refunds a saved invoice. The return date is stamped so period
// aggregates can net the refund out of the day it actually happened; paid
// and due amounts are frozen as they stood at refund time.
func (s *Service) Return(ctx context.Context, number string) (*Invoice, error) {
	returnDate := s.now()
	return s.transition(ctx, number, EventReturn, func(inv *Invoice) {
		inv.ReturnDate = &returnDate
		inv.ReturnRef = uuid.NewString()
	})
}

// Get loads one invoice by number.
func (s *Service) Get(ctx context.Context, number string) (*Invoice, error) {
	return s.repo.Get(ctx, number)
}

// List returns invoices matching the filter.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]Invoice, error) {
	return s.repo.List(ctx, filter)
}

// ListDue returns saved invoices with an open balance for the collection
// desk. Returned and cancelled invoices never show up here.
func (s *Service) ListDue(ctx context.Context) ([]Invoice, error) {
	return s.repo.List(ctx, ListFilter{Status: StatusDue})
}

// AggregatePeriod computes the cash summary for a day, month or year key.
// The whole non-cancelled collection is scanned because a refund in the
// period may belong to an invoice billed far outside it; at clinic volumes
// this is cheap.
func (s *Service) AggregatePeriod(ctx context.Context, periodKey string, g Granularity) (PeriodAggregate, error) {
	invoices, err := s.repo.List(ctx, ListFilter{})
	if err != nil {
		return PeriodAggregate{}, fmt.Errorf("list invoices: %w", err)
	}
	return Aggregate(invoices, periodKey, g), nil
}

func (s *Service) transition(ctx context.Context, number string, event Event, apply func(*Invoice)) (*Invoice, error) {
	inv, err := s.repo.Get(ctx, number)
	if err != nil {
		return nil, err
	}
	next, err := Transition(inv.Status, event)
	if err != nil {
		return nil, err
	}
	inv.Status = next
	if apply != nil {
		apply(inv)
	}
	if next == StatusDraft {
		inv.Recalculate()
	}
	inv.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *Service) applyInput(inv *Invoice, input DraftInput) {
	if input.Category != "" {
		inv.Category = input.Category
	}
	inv.SubCategory = input.SubCategory
	inv.PatientID = input.PatientID
	inv.DoctorID = input.DoctorID
	inv.ReferrerID = input.ReferrerID
	inv.SpecialDiscount = money.Parse(input.SpecialDiscount)
	inv.PaidAmount = money.Parse(input.PaidAmount)
	inv.CommissionEnabled = input.CommissionEnabled
	inv.SpecialCommission = money.Round(input.SpecialCommission)

	inv.Items = make([]LineItem, len(input.Items))
	for i, item := range input.Items {
		inv.Items[i] = LineItem{
			CatalogCode:    item.CatalogCode,
			Description:    item.Description,
			UnitPrice:      item.UnitPrice,
			Quantity:       item.Quantity,
			RowDiscount:    item.RowDiscount,
			CommissionRate: item.CommissionRate,
		}
	}

	switch {
	case input.DiscountPercent != nil:
		inv.SetDiscountPercent(*input.DiscountPercent)
	case input.DiscountAmount != nil:
		inv.SetDiscountAmount(*input.DiscountAmount)
	default:
		inv.Recalculate()
	}
}
