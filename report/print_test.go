package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nidaan-his/nidaan-his/internal/billing"
	"github.com/nidaan-his/nidaan-his/internal/certificates"
	"github.com/nidaan-his/nidaan-his/internal/masterdata/patients"
)

func sampleInvoice() *billing.Invoice {
	inv := &billing.Invoice{
		Number:      "LAB-2026-03-10-001",
		Category:    billing.CategoryLab,
		PatientID:   7,
		Status:      billing.StatusDue,
		InvoiceDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		Items: []billing.LineItem{
			{Description: "CBC", UnitPrice: 500, Quantity: 1, LineTotal: 500},
			{Description: "X-Ray Chest", UnitPrice: 300, Quantity: 2, LineTotal: 600},
		},
		TotalAmount:    1100,
		DiscountAmount: 110,
		NetPayable:     990,
		PaidAmount:     500,
		DueAmount:      490,
	}
	return inv
}

func TestRenderInvoiceHTML(t *testing.T) {
	patient := patients.Patient{Name: "Rahima Khatun", RegNo: "N-1042", Age: 34, Sex: "F"}

	html, err := RenderInvoiceHTML(sampleInvoice(), patient)
	require.NoError(t, err)

	require.Contains(t, html, "LAB-2026-03-10-001")
	require.Contains(t, html, "Rahima Khatun")
	require.Contains(t, html, "10 Mar 2026")
	// Amounts print as grouped BDT strings, never raw floats.
	require.Contains(t, html, "BDT 1,100.00")
	require.Contains(t, html, "BDT 990.00")
	require.Contains(t, html, "BDT 490.00")
	require.NotContains(t, html, "1100")
}

func TestBuildInvoicePageItems(t *testing.T) {
	page := BuildInvoicePage(sampleInvoice(), patients.Patient{})
	require.Len(t, page.Items, 2)
	require.Equal(t, "BDT 600.00", page.Items[1].LineTotal)
	require.Equal(t, 2, page.Items[1].Quantity)
}

func TestRenderCertificateHTML(t *testing.T) {
	tpl := certificates.Template{
		ID:   "t1",
		Name: "Fitness",
		Body: "<p>{{.Patient.Name}} is fit as of {{.Date}} ({{.Clinic}}).</p>",
	}
	html, err := RenderCertificateHTML(tpl, CertificateData{
		Patient: patients.Patient{Name: "Abdul Karim"},
		Date:    "2026-03-10",
	})
	require.NoError(t, err)
	require.Contains(t, html, "Abdul Karim")
	require.Contains(t, html, "2026-03-10")
	require.Contains(t, html, "Nidaan Diagnostic")
}

func TestRenderCertificateBadTemplate(t *testing.T) {
	tpl := certificates.Template{ID: "t2", Name: "Broken", Body: "{{.Patient.Name"}
	_, err := RenderCertificateHTML(tpl, CertificateData{})
	require.Error(t, err)
}
