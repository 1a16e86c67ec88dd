package admissions

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/nidaan-his/nidaan-his/internal/billing"
	"github.com/nidaan-his/nidaan-his/internal/platform/httpx"
	"github.com/nidaan-his/nidaan-his/internal/shared"
)

// Handler manages admission endpoints.
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

// MountRoutes registers admission routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/admissions", h.listAdmissions)
	r.Get("/admissions/{id}", h.getAdmission)

	r.Group(func(r chi.Router) {
		r.Use(h.roles.Require(shared.RoleOperator))
		r.Post("/admissions", h.admit)
		r.Post("/admissions/{id}/charges", h.addCharge)
		r.Post("/admissions/{id}/discharge", h.discharge)
	})
}

func (h *Handler) listAdmissions(w http.ResponseWriter, r *http.Request) {
	filter := ListFilter{Status: Status(r.URL.Query().Get("status")), Limit: 200}
	if pid, err := strconv.ParseInt(r.URL.Query().Get("patient_id"), 10, 64); err == nil {
		filter.PatientID = pid
	}
	admissions, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.respondError(w, r, "list admissions", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"admissions": admissions})
}

func (h *Handler) getAdmission(w http.ResponseWriter, r *http.Request) {
	a, err := h.service.Get(r.Context(), idParam(r))
	if err != nil {
		h.respondError(w, r, "get admission", err)
		return
	}
	httpx.JSON(w, http.StatusOK, a)
}

func (h *Handler) admit(w http.ResponseWriter, r *http.Request) {
	var req AdmitRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request", "malformed JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	a, err := h.service.Admit(r.Context(), req.ToInput())
	if err != nil {
		h.respondError(w, r, "admit", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, a)
}

func (h *Handler) addCharge(w http.ResponseWriter, r *http.Request) {
	var req ChargeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request", "malformed JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	a, err := h.service.AddCharge(r.Context(), idParam(r), req.ToInput())
	if err != nil {
		h.respondError(w, r, "add charge", err)
		return
	}
	httpx.JSON(w, http.StatusOK, a)
}

func (h *Handler) discharge(w http.ResponseWriter, r *http.Request) {
	var req DischargeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request", "malformed JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	a, inv, err := h.service.Discharge(r.Context(), idParam(r), req.ToInput())
	if err != nil {
		h.respondError(w, r, "discharge", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"admission": a, "invoice": inv})
}

func idParam(r *http.Request) int64 {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var vErr *billing.ValidationError
	switch {
	case errors.As(err, &vErr):
		httpx.Problem(w, http.StatusUnprocessableEntity, "Validation Failed", vErr.Error())
	case errors.Is(err, ErrNotAdmitted), errors.Is(err, ErrNoCharges):
		httpx.Problem(w, http.StatusConflict, "Blocked Action", err.Error())
	case errors.Is(err, ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
	default:
		h.logger.Error(op, slog.Any("error", err), slog.String("path", r.URL.Path))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
