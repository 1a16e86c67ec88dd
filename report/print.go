package report

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/nidaan-his/nidaan-his/internal/billing"
	"github.com/nidaan-his/nidaan-his/internal/certificates"
	"github.com/nidaan-his/nidaan-his/internal/masterdata/patients"
	"github.com/nidaan-his/nidaan-his/internal/money"
)

// InvoicePage is the fully formatted print model. Every amount is a
// 2-decimal BDT string; the template never touches raw floats.
type InvoicePage struct {
	Number      string
	Date        string
	Status      string
	Category    string
	SubCategory string

	PatientName string
	PatientReg  string
	PatientAge  int
	PatientSex  string

	Items []InvoicePageItem

	TotalAmount     string
	TotalDiscount   string
	DiscountAmount  string
	SpecialDiscount string
	NetPayable      string
	PaidAmount      string
	DueAmount       string
}

type InvoicePageItem struct {
	Description string
	Quantity    int
	UnitPrice   string
	LineTotal   string
}

// BuildInvoicePage flattens an invoice and its patient into the print
// model.
func BuildInvoicePage(inv *billing.Invoice, patient patients.Patient) InvoicePage {
	page := InvoicePage{
		Number:          inv.Number,
		Date:            inv.InvoiceDate.Format("02 Jan 2006"),
		Status:          string(inv.Status),
		Category:        inv.Category,
		SubCategory:     inv.SubCategory,
		PatientName:     patient.Name,
		PatientReg:      patient.RegNo,
		PatientAge:      patient.Age,
		PatientSex:      patient.Sex,
		TotalAmount:     money.FormatBDT(inv.TotalAmount),
		TotalDiscount:   money.FormatBDT(inv.TotalDiscount),
		DiscountAmount:  money.FormatBDT(inv.DiscountAmount),
		SpecialDiscount: money.FormatBDT(inv.SpecialDiscount),
		NetPayable:      money.FormatBDT(inv.NetPayable),
		PaidAmount:      money.FormatBDT(inv.PaidAmount),
		DueAmount:       money.FormatBDT(inv.DueAmount),
	}
	for _, item := range inv.Items {
		page.Items = append(page.Items, InvoicePageItem{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   money.FormatBDT(item.UnitPrice),
			LineTotal:   money.FormatBDT(item.LineTotal),
		})
	}
	return page
}

var invoiceTemplate = template.Must(template.New("invoice").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Invoice {{.Number}}</title>
<style>
body { font-family: sans-serif; font-size: 13px; margin: 32px; }
table { width: 100%; border-collapse: collapse; margin-top: 12px; }
th, td { border: 1px solid #999; padding: 4px 8px; text-align: left; }
.totals td { border: none; text-align: right; }
.due { font-weight: bold; }
</style>
</head>
<body>
<h2>Nidaan Diagnostic &amp; Clinic</h2>
<p>Invoice <strong>{{.Number}}</strong> &middot; {{.Date}} &middot; {{.Status}}</p>
<p>Patient: {{.PatientName}} ({{.PatientReg}}) &middot; Age {{.PatientAge}} &middot; {{.PatientSex}}</p>
<table>
<tr><th>Description</th><th>Qty</th><th>Unit Price</th><th>Total</th></tr>
{{range .Items}}<tr><td>{{.Description}}</td><td>{{.Quantity}}</td><td>{{.UnitPrice}}</td><td>{{.LineTotal}}</td></tr>
{{end}}</table>
<table class="totals">
<tr><td>Total</td><td>{{.TotalAmount}}</td></tr>
<tr><td>Discount</td><td>{{.DiscountAmount}}</td></tr>
<tr><td>Special Discount</td><td>{{.SpecialDiscount}}</td></tr>
<tr><td>Net Payable</td><td>{{.NetPayable}}</td></tr>
<tr><td>Paid</td><td>{{.PaidAmount}}</td></tr>
<tr class="due"><td>Due</td><td>{{.DueAmount}}</td></tr>
</table>
</body>
</html>`))

// RenderInvoiceHTML produces the invoice print markup.
func RenderInvoiceHTML(inv *billing.Invoice, patient patients.Patient) (string, error) {
	var buf bytes.Buffer
	if err := invoiceTemplate.Execute(&buf, BuildInvoicePage(inv, patient)); err != nil {
		return "", fmt.Errorf("report: render invoice %s: %w", inv.Number, err)
	}
	return buf.String(), nil
}

// CertificateData is what a stored certificate template may reference.
type CertificateData struct {
	Patient patients.Patient
	Date    string
	Clinic  string
}

// RenderCertificateHTML executes a stored certificate body against the
// patient data. Template errors surface to the editor, not the printer.
func RenderCertificateHTML(tpl certificates.Template, data CertificateData) (string, error) {
	parsed, err := template.New(tpl.ID).Parse(tpl.Body)
	if err != nil {
		return "", fmt.Errorf("report: parse certificate %q: %w", tpl.Name, err)
	}
	if data.Clinic == "" {
		data.Clinic = "Nidaan Diagnostic & Clinic"
	}
	var buf bytes.Buffer
	if err := parsed.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("report: render certificate %q: %w", tpl.Name, err)
	}
	return buf.String(), nil
}
