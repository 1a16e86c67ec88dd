package admissions

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nidaan-his/nidaan-his/internal/billing"
)

type memoryAdmissionRepo struct {
	nextID int64
	rows   map[int64]*Admission
}

func newMemoryAdmissionRepo() *memoryAdmissionRepo {
	return &memoryAdmissionRepo{rows: map[int64]*Admission{}}
}

func cloneAdmission(a *Admission) *Admission {
	cp := *a
	cp.Charges = append([]Charge(nil), a.Charges...)
	return &cp
}

func (m *memoryAdmissionRepo) Get(_ context.Context, id int64) (*Admission, error) {
	a, ok := m.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneAdmission(a), nil
}

func (m *memoryAdmissionRepo) List(_ context.Context, filter ListFilter) ([]Admission, error) {
	var out []Admission
	for _, a := range m.rows {
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		if filter.PatientID > 0 && a.PatientID != filter.PatientID {
			continue
		}
		out = append(out, *cloneAdmission(a))
	}
	return out, nil
}

func (m *memoryAdmissionRepo) Insert(_ context.Context, a *Admission) error {
	m.nextID++
	a.ID = m.nextID
	m.rows[a.ID] = cloneAdmission(a)
	return nil
}

func (m *memoryAdmissionRepo) Update(_ context.Context, a *Admission) error {
	if _, ok := m.rows[a.ID]; !ok {
		return ErrNotFound
	}
	m.rows[a.ID] = cloneAdmission(a)
	return nil
}

func (m *memoryAdmissionRepo) AddCharge(_ context.Context, c *Charge) error {
	a, ok := m.rows[c.AdmissionID]
	if !ok {
		return ErrNotFound
	}
	c.ID = int64(len(a.Charges) + 1)
	a.Charges = append(a.Charges, *c)
	return nil
}

// fakeBiller captures the draft the discharge flow hands to billing and
// answers with a posted indoor invoice.
type fakeBiller struct {
	draft  billing.DraftInput
	posted string
}

func (f *fakeBiller) CreateDraft(_ context.Context, input billing.DraftInput) (*billing.Invoice, error) {
	f.draft = input
	return &billing.Invoice{Number: "IND-2026-03-10-001", Status: billing.StatusDraft}, nil
}

func (f *fakeBiller) Post(_ context.Context, number string) (*billing.Invoice, error) {
	f.posted = number
	return &billing.Invoice{Number: number, Status: billing.StatusPosted}, nil
}

func testService(t *testing.T) (*Service, *memoryAdmissionRepo, *fakeBiller) {
	t.Helper()
	repo := newMemoryAdmissionRepo()
	biller := &fakeBiller{}
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	return NewService(repo, biller, func() time.Time { return now }), repo, biller
}

func TestAdmitValidation(t *testing.T) {
	svc, _, _ := testService(t)

	_, err := svc.Admit(context.Background(), AdmitInput{})
	var vErr *billing.ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Equal(t, []string{"patient", "sub_category", "bed"}, vErr.Missing)
}

func TestAdmitOpensRecord(t *testing.T) {
	svc, _, _ := testService(t)

	a, err := svc.Admit(context.Background(), AdmitInput{PatientID: 7, SubCategory: "cabin", Bed: "C-04"})
	require.NoError(t, err)
	require.Equal(t, StatusAdmitted, a.Status)
	require.Equal(t, "CABIN", a.SubCategory)
	require.False(t, a.AdmittedAt.IsZero())
}

func TestAddChargeCoercesAmounts(t *testing.T) {
	svc, _, _ := testService(t)

	a, err := svc.Admit(context.Background(), AdmitInput{PatientID: 7, SubCategory: "WARD", Bed: "W-01"})
	require.NoError(t, err)

	a, err = svc.AddCharge(context.Background(), a.ID, ChargeInput{Description: "Bed rent", UnitPrice: "500", Quantity: "2"})
	require.NoError(t, err)
	require.Len(t, a.Charges, 1)
	require.Equal(t, 500.0, a.Charges[0].UnitPrice)
	require.Equal(t, 2, a.Charges[0].Quantity)

	// Garbled price is zero, not an error.
	a, err = svc.AddCharge(context.Background(), a.ID, ChargeInput{Description: "Dressing", UnitPrice: "n/a", Quantity: 1})
	require.NoError(t, err)
	require.Equal(t, 0.0, a.Charges[1].UnitPrice)
}

func TestDischargeRaisesIndoorInvoice(t *testing.T) {
	svc, repo, biller := testService(t)

	a, err := svc.Admit(context.Background(), AdmitInput{PatientID: 7, SubCategory: "CABIN", Bed: "C-04"})
	require.NoError(t, err)
	_, err = svc.AddCharge(context.Background(), a.ID, ChargeInput{Description: "Bed rent", UnitPrice: 800, Quantity: 3})
	require.NoError(t, err)
	_, err = svc.AddCharge(context.Background(), a.ID, ChargeInput{Description: "Nursing", UnitPrice: 200, Quantity: 3})
	require.NoError(t, err)

	pct := 10.0
	discharged, inv, err := svc.Discharge(context.Background(), a.ID, DischargeInput{DiscountPercent: &pct, PaidAmount: 2000})
	require.NoError(t, err)

	require.Equal(t, billing.CategoryIndoor, biller.draft.Category)
	require.Equal(t, "CABIN", biller.draft.SubCategory)
	require.Len(t, biller.draft.Items, 2)
	require.Equal(t, 800.0, biller.draft.Items[0].UnitPrice)
	require.Equal(t, 2000.0, biller.draft.PaidAmount)
	require.Equal(t, inv.Number, biller.posted)

	require.Equal(t, StatusDischarged, discharged.Status)
	require.NotNil(t, discharged.DischargedAt)
	require.Equal(t, inv.Number, discharged.InvoiceNumber)

	stored, err := repo.Get(context.Background(), a.ID)
	require.NoError(t, err)
	require.Equal(t, StatusDischarged, stored.Status)
}

func TestDischargeGuards(t *testing.T) {
	svc, _, _ := testService(t)

	a, err := svc.Admit(context.Background(), AdmitInput{PatientID: 7, SubCategory: "ICU", Bed: "I-01"})
	require.NoError(t, err)

	_, _, err = svc.Discharge(context.Background(), a.ID, DischargeInput{})
	require.ErrorIs(t, err, ErrNoCharges)

	_, err = svc.AddCharge(context.Background(), a.ID, ChargeInput{Description: "ICU day", UnitPrice: 5000, Quantity: 1})
	require.NoError(t, err)
	_, _, err = svc.Discharge(context.Background(), a.ID, DischargeInput{PaidAmount: 5000})
	require.NoError(t, err)

	// Closed stays take no further charges and cannot be discharged twice.
	_, err = svc.AddCharge(context.Background(), a.ID, ChargeInput{Description: "Extra", UnitPrice: 100, Quantity: 1})
	require.ErrorIs(t, err, ErrNotAdmitted)
	_, _, err = svc.Discharge(context.Background(), a.ID, DischargeInput{})
	require.ErrorIs(t, err, ErrNotAdmitted)
}
