package reports

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nidaan-his/nidaan-his/internal/billing"
	"github.com/nidaan-his/nidaan-his/internal/platform/httpx"
	"github.com/nidaan-his/nidaan-his/internal/reports/export"
)

// Handler manages report endpoints. Reports are read-only so every
// route is open to the desk.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers report routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/reports/summary", h.summary)
	r.Get("/reports/summary.csv", h.summaryCSV)
	r.Get("/reports/due", h.dueList)
	r.Get("/reports/due.csv", h.dueListCSV)
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	agg, ok := h.loadSummary(w, r)
	if !ok {
		return
	}
	httpx.JSON(w, http.StatusOK, agg)
}

func (h *Handler) summaryCSV(w http.ResponseWriter, r *http.Request) {
	agg, ok := h.loadSummary(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="summary-`+agg.PeriodKey+`.csv"`)
	if err := export.WriteSummaryCSV(w, agg); err != nil {
		h.logger.Error("summary csv", slog.Any("error", err))
	}
}

func (h *Handler) loadSummary(w http.ResponseWriter, r *http.Request) (billing.PeriodAggregate, bool) {
	periodKey := r.URL.Query().Get("period")
	if periodKey == "" {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "period query parameter required")
		return billing.PeriodAggregate{}, false
	}
	granularity := billing.Granularity(r.URL.Query().Get("granularity"))
	if granularity == "" {
		granularity = billing.GranularityDay
	}
	agg, err := h.service.Summary(r.Context(), periodKey, granularity)
	if err != nil {
		h.logger.Error("summary", slog.Any("error", err), slog.String("period", periodKey))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return billing.PeriodAggregate{}, false
	}
	return agg, true
}

func (h *Handler) dueList(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.service.DueList(r.Context())
	if err != nil {
		h.logger.Error("due list", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"invoices": invoices})
}

func (h *Handler) dueListCSV(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.service.DueList(r.Context())
	if err != nil {
		h.logger.Error("due list csv", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="due-list.csv"`)
	if err := export.WriteDueListCSV(w, invoices); err != nil {
		h.logger.Error("due list csv", slog.Any("error", err))
	}
}
