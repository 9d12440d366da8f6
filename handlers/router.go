package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/satheeshds/invoicing/config"
	_ "github.com/satheeshds/invoicing/docs"
)

// NewRouter builds the HTTP routes. Health, metrics and the API docs are
// public; everything else is rate limited and behind basic auth.
func NewRouter(h *Handler, sec config.SecurityConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(RequestID)
	r.Use(AccessLog)
	r.Use(Metrics)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   sec.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", h.Health)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
	))

	r.Group(func(r chi.Router) {
		r.Use(RateLimit(sec.RateLimitRequests, sec.RateLimitWindow, sec.RateLimitDisabled))
		r.Use(BasicAuth(sec.AuthUser, sec.AuthPass))

		r.Route("/invoices", func(r chi.Router) {
			r.Get("/", h.ListInvoices)
			r.Post("/", h.CreateInvoice)
			r.Get("/count", h.CountInvoices)
			r.Get("/{number}", h.GetInvoice)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.ListProducts)
			r.Post("/", h.CreateProduct)
			r.Get("/{id}", h.GetProduct)
			r.Patch("/{id}", h.UpdateProduct)
		})

		r.Route("/analytics", func(r chi.Router) {
			r.Get("/sales-over-time", h.SalesOverTime)
			r.Get("/top-products", h.TopProducts)
			r.Get("/top-customers", h.TopCustomers)
			r.Get("/dashboard-analytics", h.Dashboard)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})
	return r
}
