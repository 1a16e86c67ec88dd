package report

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/nidaan-his/nidaan-his/internal/billing"
	"github.com/nidaan-his/nidaan-his/internal/certificates"
	"github.com/nidaan-his/nidaan-his/internal/masterdata/patients"
	"github.com/nidaan-his/nidaan-his/internal/platform/httpx"
)

// Handler manages print endpoints.
type Handler struct {
	logger   *slog.Logger
	renderer Renderer
	billing  *billing.Service
	certs    *certificates.Service
	patients *patients.Service
}

// NewHandler creates a print handler.
func NewHandler(logger *slog.Logger, renderer Renderer, b *billing.Service, c *certificates.Service, p *patients.Service) *Handler {
	return &Handler{logger: logger, renderer: renderer, billing: b, certs: c, patients: p}
}

// MountRoutes registers print routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/print/ping", h.ping)
	r.Get("/print/invoices/{number}", h.printInvoice)
	r.Get("/print/certificates/{type}/{id}", h.printCertificate)
}

func (h *Handler) ping(w http.ResponseWriter, r *http.Request) {
	if err := h.renderer.Ping(r.Context()); err != nil {
		h.logger.Warn("gotenberg ping failed", slog.Any("error", err))
		httpx.Problem(w, http.StatusServiceUnavailable, "Renderer Unavailable", "")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) printInvoice(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "number")
	inv, err := h.billing.Get(r.Context(), number)
	if err != nil {
		if errors.Is(err, billing.ErrNotFound) {
			httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
			return
		}
		h.logger.Error("print invoice", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}

	patient, err := h.patients.Get(r.Context(), inv.PatientID)
	if err != nil {
		h.logger.Warn("print invoice without patient record", slog.String("number", number), slog.Any("error", err))
	}

	html, err := RenderInvoiceHTML(inv, patient)
	if err != nil {
		h.logger.Error("render invoice html", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	h.servePDF(w, r, "invoice-"+number+".pdf", html)
}

func (h *Handler) printCertificate(w http.ResponseWriter, r *http.Request) {
	certType := certificates.Type(chi.URLParam(r, "type"))
	tpl, err := h.certs.Get(r.Context(), certType, chi.URLParam(r, "id"))
	if err != nil {
		switch {
		case errors.Is(err, certificates.ErrUnknownType):
			httpx.Problem(w, http.StatusBadRequest, "Unknown Type", err.Error())
		case errors.Is(err, certificates.ErrNotFound):
			httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
		default:
			h.logger.Error("print certificate", slog.Any("error", err))
			httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		}
		return
	}

	patientID, _ := strconv.ParseInt(r.URL.Query().Get("patient_id"), 10, 64)
	patient, err := h.patients.Get(r.Context(), patientID)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "patient_id query parameter must name an existing patient")
		return
	}

	data := CertificateData{Patient: patient, Date: r.URL.Query().Get("date")}
	html, err := RenderCertificateHTML(tpl, data)
	if err != nil {
		httpx.Problem(w, http.StatusUnprocessableEntity, "Template Error", err.Error())
		return
	}
	h.servePDF(w, r, string(certType)+"-certificate.pdf", html)
}

func (h *Handler) servePDF(w http.ResponseWriter, r *http.Request, filename, html string) {
	pdf, err := h.renderer.RenderHTML(r.Context(), html)
	if err != nil {
		h.logger.Error("render pdf", slog.Any("error", err))
		httpx.Problem(w, http.StatusBadGateway, "Render Failed", "")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
