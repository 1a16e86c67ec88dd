package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/nidaan-his/nidaan-his/internal/admissions"
	"github.com/nidaan-his/nidaan-his/internal/billing"
	"github.com/nidaan-his/nidaan-his/internal/certificates"
	"github.com/nidaan-his/nidaan-his/internal/masterdata"
	"github.com/nidaan-his/nidaan-his/internal/observability"
	"github.com/nidaan-his/nidaan-his/internal/reports"
	"github.com/nidaan-his/nidaan-his/jobs"
	"github.com/nidaan-his/nidaan-his/report"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger *slog.Logger
	Config *Config

	BillingHandler      *billing.Handler
	MasterDataHandler   *masterdata.Handler
	AdmissionsHandler   *admissions.Handler
	CertificatesHandler *certificates.Handler
	ReportsHandler      *reports.Handler
	PrintHandler        *report.Handler
	JobHandler          *jobs.Handler

	Metrics *observability.Metrics
}

// NewRouter constructs the chi.Router with the clinic defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.Route("/api", func(api chi.Router) {
		if params.BillingHandler != nil {
			params.BillingHandler.MountRoutes(api)
		}
		if params.MasterDataHandler != nil {
			params.MasterDataHandler.MountRoutes(api)
		}
		if params.AdmissionsHandler != nil {
			params.AdmissionsHandler.MountRoutes(api)
		}
		if params.CertificatesHandler != nil {
			params.CertificatesHandler.MountRoutes(api)
		}
		if params.ReportsHandler != nil {
			params.ReportsHandler.MountRoutes(api)
		}
		if params.PrintHandler != nil {
			params.PrintHandler.MountRoutes(api)
		}
	})

	if params.JobHandler != nil {
		r.Route("/jobs", func(jr chi.Router) {
			params.JobHandler.MountRoutes(jr)
		})
	}

	return r
}
