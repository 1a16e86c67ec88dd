// Package masterdata groups the clinic directories: patients, doctors,
// referrers and the lab test catalog.
package masterdata

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	mdshared "github.com/nidaan-his/nidaan-his/internal/masterdata/shared"

	"github.com/nidaan-his/nidaan-his/internal/masterdata/doctors"
	"github.com/nidaan-his/nidaan-his/internal/masterdata/labtests"
	"github.com/nidaan-his/nidaan-his/internal/masterdata/patients"
	"github.com/nidaan-his/nidaan-his/internal/masterdata/referrers"
	"github.com/nidaan-his/nidaan-his/internal/platform/httpx"
	"github.com/nidaan-his/nidaan-his/internal/shared"
)

// Handler manages master data endpoints.
type Handler struct {
	logger    *slog.Logger
	patients  *patients.Service
	doctors   *doctors.Service
	referrers *referrers.Service
	labtests  *labtests.Service
	roles     shared.RoleMiddleware
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, p *patients.Service, d *doctors.Service, rf *referrers.Service, lt *labtests.Service, roles shared.RoleMiddleware) *Handler {
	return &Handler{logger: logger, patients: p, doctors: d, referrers: rf, labtests: lt, roles: roles}
}

// MountRoutes registers master data routes. Directory edits are admin
// actions; lookups are open to the operator.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/patients", h.listPatients)
	r.Get("/patients/{id}", h.getPatient)
	r.Get("/doctors", h.listDoctors)
	r.Get("/doctors/{id}", h.getDoctor)
	r.Get("/referrers", h.listReferrers)
	r.Get("/referrers/{id}", h.getReferrer)
	r.Get("/tests", h.listTests)
	r.Get("/tests/{id}", h.getTest)

	r.Group(func(r chi.Router) {
		r.Use(h.roles.Require(shared.RoleOperator))
		r.Post("/patients", h.createPatient)
		r.Put("/patients/{id}", h.updatePatient)
	})

	r.Group(func(r chi.Router) {
		r.Use(h.roles.Require(shared.RoleAdmin))
		r.Delete("/patients/{id}", h.deletePatient)
		r.Post("/doctors", h.createDoctor)
		r.Put("/doctors/{id}", h.updateDoctor)
		r.Delete("/doctors/{id}", h.deleteDoctor)
		r.Post("/referrers", h.createReferrer)
		r.Put("/referrers/{id}", h.updateReferrer)
		r.Delete("/referrers/{id}", h.deleteReferrer)
		r.Post("/tests", h.createTest)
		r.Put("/tests/{id}", h.updateTest)
		r.Delete("/tests/{id}", h.deleteTest)
	})
}

func filtersFromQuery(r *http.Request) mdshared.ListFilters {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	filters := mdshared.ListFilters{
		Page:    page,
		Limit:   limit,
		Search:  r.URL.Query().Get("search"),
		SortBy:  r.URL.Query().Get("sort_by"),
		SortDir: r.URL.Query().Get("sort_dir"),
	}
	if active := r.URL.Query().Get("active"); active != "" {
		b := active == "true" || active == "1"
		filters.Active = &b
	}
	return filters
}

func idParam(r *http.Request) int64 {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id
}

func (h *Handler) respondList(w http.ResponseWriter, items any, total int, filters mdshared.ListFilters, err error) {
	if err != nil {
		h.respondError(w, err)
		return
	}
	filters.Normalize()
	httpx.JSON(w, http.StatusOK, map[string]any{
		"items":      items,
		"pagination": shared.NewPagination(filters.Page, filters.Limit, total),
	})
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, mdshared.ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, mdshared.ErrInvalidID):
		httpx.Problem(w, http.StatusBadRequest, "Invalid ID", err.Error())
	case errors.Is(err, mdshared.ErrRequiredField), errors.Is(err, mdshared.ErrDuplicate):
		httpx.Problem(w, http.StatusUnprocessableEntity, "Validation Failed", err.Error())
	default:
		h.logger.Error("masterdata", slog.Any("error", err))
		httpx.RespondError(w, err)
	}
}

// --- Patients ---

func (h *Handler) listPatients(w http.ResponseWriter, r *http.Request) {
	filters := filtersFromQuery(r)
	items, total, err := h.patients.List(r.Context(), filters)
	h.respondList(w, items, total, filters, err)
}

func (h *Handler) getPatient(w http.ResponseWriter, r *http.Request) {
	p, err := h.patients.Get(r.Context(), idParam(r))
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

func (h *Handler) createPatient(w http.ResponseWriter, r *http.Request) {
	var p patients.Patient
	if err := httpx.DecodeJSON(r, &p); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request", "malformed JSON body")
		return
	}
	created, err := h.patients.Register(r.Context(), p)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) updatePatient(w http.ResponseWriter, r *http.Request) {
	var p patients.Patient
	if err := httpx.DecodeJSON(r, &p); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request", "malformed JSON body")
		return
	}
	if err := h.patients.Update(r.Context(), idParam(r), p); err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *Handler) deletePatient(w http.ResponseWriter, r *http.Request) {
	if err := h.patients.Delete(r.Context(), idParam(r)); err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// --- Doctors ---

func (h *Handler) listDoctors(w http.ResponseWriter, r *http.Request) {
	filters := filtersFromQuery(r)
	items, total, err := h.doctors.List(r.Context(), filters)
	h.respondList(w, items, total, filters, err)
}

func (h *Handler) getDoctor(w http.ResponseWriter, r *http.Request) {
	d, err := h.doctors.Get(r.Context(), idParam(r))
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, d)
}

func (h *Handler) createDoctor(w http.ResponseWriter, r *http.Request) {
	var d doctors.Doctor
	if err := httpx.DecodeJSON(r, &d); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request", "malformed JSON body")
		return
	}
	created, err := h.doctors.Create(r.Context(), d)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) updateDoctor(w http.ResponseWriter, r *http.Request) {
	var d doctors.Doctor
	if err := httpx.DecodeJSON(r, &d); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request", "malformed JSON body")
		return
	}
	if err := h.doctors.Update(r.Context(), idParam(r), d); err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *Handler) deleteDoctor(w http.ResponseWriter, r *http.Request) {
	if err := h.doctors.Delete(r.Context(), idParam(r)); err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// --- Referrers ---

func (h *Handler) listReferrers(w http.ResponseWriter, r *http.Request) {
	filters := filtersFromQuery(r)
	items, total, err := h.referrers.List(r.Context(), filters)
	h.respondList(w, items, total, filters, err)
}

func (h *Handler) getReferrer(w http.ResponseWriter, r *http.Request) {
	rf, err := h.referrers.Get(r.Context(), idParam(r))
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rf)
}

func (h *Handler) createReferrer(w http.ResponseWriter, r *http.Request) {
	var rf referrers.Referrer
	if err := httpx.DecodeJSON(r, &rf); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request", "malformed JSON body")
		return
	}
	created, err := h.referrers.Create(r.Context(), rf)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) updateReferrer(w http.ResponseWriter, r *http.Request) {
	var rf referrers.Referrer
	if err := httpx.DecodeJSON(r, &rf); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request", "malformed JSON body")
		return
	}
	if err := h.referrers.Update(r.Context(), idParam(r), rf); err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *Handler) deleteReferrer(w http.ResponseWriter, r *http.Request) {
	if err := h.referrers.Delete(r.Context(), idParam(r)); err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// --- Lab tests ---

func (h *Handler) listTests(w http.ResponseWriter, r *http.Request) {
	filters := filtersFromQuery(r)
	items, total, err := h.labtests.List(r.Context(), filters)
	h.respondList(w, items, total, filters, err)
}

func (h *Handler) getTest(w http.ResponseWriter, r *http.Request) {
	t, err := h.labtests.Get(r.Context(), idParam(r))
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, t)
}

func (h *Handler) createTest(w http.ResponseWriter, r *http.Request) {
	var t labtests.LabTest
	if err := httpx.DecodeJSON(r, &t); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request", "malformed JSON body")
		return
	}
	created, err := h.labtests.Create(r.Context(), t)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) updateTest(w http.ResponseWriter, r *http.Request) {
	var t labtests.LabTest
	if err := httpx.DecodeJSON(r, &t); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request", "malformed JSON body")
		return
	}
	if err := h.labtests.Update(r.Context(), idParam(r), t); err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *Handler) deleteTest(w http.ResponseWriter, r *http.Request) {
	if err := h.labtests.Delete(r.Context(), idParam(r)); err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
