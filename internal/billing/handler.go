package billing

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/nidaan-his/nidaan-his/internal/platform/httpx"
	"github.com/nidaan-his/nidaan-his/internal/shared"
)

// Handler manages billing endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
	roles    shared.RoleMiddleware
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, roles shared.RoleMiddleware) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		validate: validator.New(),
		roles:    roles,
	}
}

// MountRoutes registers billing routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/invoices", h.listInvoices)
	r.Get("/invoices/next-number", h.previewNumber)
	r.Get("/invoices/{number}", h.getInvoice)
	r.Get("/due", h.listDue)
	r.Get("/summary", h.periodSummary)

	r.Group(func(r chi.Router) {
		r.Use(h.roles.Require(shared.RoleOperator))
		r.Post("/invoices", h.createDraft)
		r.Put("/invoices/{number}", h.updateDraft)
		r.Post("/invoices/{number}/post", h.postInvoice)
		r.Post("/invoices/{number}/reopen", h.reopenInvoice)
		r.Post("/invoices/{number}/payments", h.recordPayment)
		r.Post("/invoices/{number}/commission-payments", h.recordCommissionPayment)
	})

	// Cancellation and refunds are admin actions.
	r.Group(func(r chi.Router) {
		r.Use(h.roles.Require(shared.RoleAdmin))
		r.Post("/invoices/{number}/cancel", h.cancelInvoice)
		r.Post("/invoices/{number}/return", h.returnInvoice)
	})
}

func (h *Handler) listInvoices(w http.ResponseWriter, r *http.Request) {
	filter := ListFilter{
		Status:   InvoiceStatus(r.URL.Query().Get("status")),
		Category: r.URL.Query().Get("category"),
		Limit:    200,
	}
	invoices, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.respondError(w, r, "list invoices", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"invoices": invoices})
}

func (h *Handler) previewNumber(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		category = CategoryLab
	}
	number, err := h.service.PreviewNumber(r.Context(), category)
	if err != nil {
		h.respondError(w, r, "preview number", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"number": number})
}

func (h *Handler) getInvoice(w http.ResponseWriter, r *http.Request) {
	inv, err := h.service.Get(r.Context(), chi.URLParam(r, "number"))
	if err != nil {
		h.respondError(w, r, "get invoice", err)
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

func (h *Handler) createDraft(w http.ResponseWriter, r *http.Request) {
	var req DraftRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request", "malformed JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	inv, err := h.service.CreateDraft(r.Context(), req.ToInput())
	if err != nil {
		h.respondError(w, r, "create draft", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, inv)
}

func (h *Handler) updateDraft(w http.ResponseWriter, r *http.Request) {
	var req DraftRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request", "malformed JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	inv, err := h.service.UpdateDraft(r.Context(), chi.URLParam(r, "number"), req.ToInput())
	if err != nil {
		h.respondError(w, r, "update draft", err)
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

func (h *Handler) postInvoice(w http.ResponseWriter, r *http.Request) {
	inv, err := h.service.Post(r.Context(), chi.URLParam(r, "number"))
	if err != nil {
		h.respondError(w, r, "post invoice", err)
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

func (h *Handler) reopenInvoice(w http.ResponseWriter, r *http.Request) {
	inv, err := h.service.Reopen(r.Context(), chi.URLParam(r, "number"))
	if err != nil {
		h.respondError(w, r, "reopen invoice", err)
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

func (h *Handler) recordPayment(w http.ResponseWriter, r *http.Request) {
	var req PaymentRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request", "malformed JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	inv, err := h.service.RecordPayment(r.Context(), chi.URLParam(r, "number"), req.Amount)
	if err != nil {
		h.respondError(w, r, "record payment", err)
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

func (h *Handler) recordCommissionPayment(w http.ResponseWriter, r *http.Request) {
	var req PaymentRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request", "malformed JSON body")
		return
	}
	inv, err := h.service.RecordCommissionPayment(r.Context(), chi.URLParam(r, "number"), req.Amount)
	if err != nil {
		h.respondError(w, r, "record commission payment", err)
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

func (h *Handler) cancelInvoice(w http.ResponseWriter, r *http.Request) {
	inv, err := h.service.Cancel(r.Context(), chi.URLParam(r, "number"))
	if err != nil {
		h.respondError(w, r, "cancel invoice", err)
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

func (h *Handler) returnInvoice(w http.ResponseWriter, r *http.Request) {
	inv, err := h.service.Return(r.Context(), chi.URLParam(r, "number"))
	if err != nil {
		h.respondError(w, r, "return invoice", err)
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

func (h *Handler) listDue(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.service.ListDue(r.Context())
	if err != nil {
		h.respondError(w, r, "list due", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"invoices": invoices})
}

func (h *Handler) periodSummary(w http.ResponseWriter, r *http.Request) {
	periodKey := r.URL.Query().Get("period")
	if periodKey == "" {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "period query parameter required")
		return
	}
	granularity := Granularity(r.URL.Query().Get("granularity"))
	if granularity == "" {
		granularity = GranularityDay
	}
	agg, err := h.service.AggregatePeriod(r.Context(), periodKey, granularity)
	if err != nil {
		h.respondError(w, r, "period summary", err)
		return
	}
	httpx.JSON(w, http.StatusOK, agg)
}

// respondError maps domain errors onto problem responses. Blocked state
// transitions surface as conflicts, never as 500s.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var vErr *ValidationError
	switch {
	case errors.As(err, &vErr):
		httpx.Problem(w, http.StatusUnprocessableEntity, "Validation Failed", vErr.Error())
	case errors.Is(err, ErrOverpaid):
		httpx.Problem(w, http.StatusUnprocessableEntity, "Arithmetic Guard", err.Error())
	case errors.Is(err, ErrDuplicateNumber):
		httpx.Problem(w, http.StatusConflict, "Duplicate Number", err.Error())
	case errors.Is(err, ErrInvalidTransition):
		httpx.Problem(w, http.StatusConflict, "Blocked Action", err.Error())
	case errors.Is(err, ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
	default:
		h.logger.Error(op, slog.Any("error", err), slog.String("path", r.URL.Path))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
