package certificates

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nidaan-his/nidaan-his/internal/platform/httpx"
	"github.com/nidaan-his/nidaan-his/internal/shared"
)

// Handler manages certificate template endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
	roles   shared.RoleMiddleware
}

func NewHandler(logger *slog.Logger, service *Service, roles shared.RoleMiddleware) *Handler {
	return &Handler{logger: logger, service: service, roles: roles}
}

// MountRoutes registers certificate routes. Template editing is an
// admin action; reading is open to the desk.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/certificates/{type}", h.list)
	r.Get("/certificates/{type}/{id}", h.get)

	r.Group(func(r chi.Router) {
		r.Use(h.roles.Require(shared.RoleAdmin))
		r.Put("/certificates/{type}", h.replace)
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	templates, err := h.service.List(r.Context(), Type(chi.URLParam(r, "type")))
	if err != nil {
		h.respondError(w, r, "list templates", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"templates": templates})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	tpl, err := h.service.Get(r.Context(), Type(chi.URLParam(r, "type")), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, "get template", err)
		return
	}
	httpx.JSON(w, http.StatusOK, tpl)
}

func (h *Handler) replace(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Templates []Template `json:"templates"`
	}
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request", "malformed JSON body")
		return
	}
	templates, err := h.service.Replace(r.Context(), Type(chi.URLParam(r, "type")), body.Templates)
	if err != nil {
		h.respondError(w, r, "replace templates", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"templates": templates})
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, ErrUnknownType):
		httpx.Problem(w, http.StatusBadRequest, "Unknown Type", err.Error())
	case errors.Is(err, ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
	default:
		h.logger.Error(op, slog.Any("error", err), slog.String("path", r.URL.Path))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
