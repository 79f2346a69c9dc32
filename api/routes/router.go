package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/diarmuidw/enquiry-backend/api/controllers"
	"github.com/diarmuidw/enquiry-backend/api/middleware"
	"github.com/diarmuidw/enquiry-backend/internal/availability"
	"github.com/diarmuidw/enquiry-backend/internal/enquiry"
	"github.com/diarmuidw/enquiry-backend/internal/protection"
	"github.com/diarmuidw/enquiry-backend/pkg/config"
	"github.com/diarmuidw/enquiry-backend/pkg/logger"
	"github.com/diarmuidw/enquiry-backend/pkg/metrics"
)

// RouterParams carries everything the HTTP surface needs.
type RouterParams struct {
	Config       *config.Config
	Logger       *logger.Logger
	Metrics      *metrics.HTTPMetrics
	Registry     *prometheus.Registry
	Enquiry      *enquiry.Service
	Credentials  *enquiry.CredentialStore
	Availability *availability.Service
	Protection   *protection.Service
	Pingers      map[string]controllers.Pinger
}

func NewRouter(params RouterParams) http.Handler {
	cfg := params.Config
	logg := params.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.AllowedOrigins),
	)
	if params.Metrics != nil {
		r.Use(params.Metrics.Middleware)
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, params.Pingers))
	})

	if params.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(params.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/enquiry", func(r chi.Router) {
		r.Get("/", controllers.EnquiryList(params.Enquiry, params.Credentials, logg))
		r.Get("/count", controllers.EnquiryCount(params.Enquiry, params.Credentials, logg))
		r.Post("/items", controllers.EnquiryAddItem(params.Enquiry, params.Credentials, logg))
		r.Put("/items/{variantID}", controllers.EnquirySetQuantity(params.Enquiry, params.Credentials, logg))
		r.Delete("/items/{variantID}", controllers.EnquiryRemoveItem(params.Enquiry, params.Credentials, logg))
		r.Post("/email", controllers.EnquiryUpdateEmail(params.Enquiry, params.Credentials, logg))
		r.Post("/submit", controllers.EnquirySubmit(params.Enquiry, params.Credentials, logg))
	})

	r.Route("/api/v1/availability", func(r chi.Router) {
		r.Get("/{variantID}", controllers.AvailabilityLookup(params.Availability, logg))
		r.Post("/lookup", controllers.AvailabilityBatch(params.Availability, logg))
		r.Put("/{variantID}", controllers.AvailabilitySetStatus(params.Availability, logg))
	})

	r.Route("/api/v1/protection", func(r chi.Router) {
		r.Post("/plan", controllers.ProtectionPlan(params.Protection, logg))
	})

	return r
}
