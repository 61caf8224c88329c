package httpserver

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"github.com/insativity/portal/internal/api"
	"github.com/insativity/portal/internal/config"
	"github.com/insativity/portal/internal/events"
	"github.com/insativity/portal/internal/http/ratelimit"
	"github.com/insativity/portal/internal/metrics"
	"github.com/insativity/portal/internal/store"
)

// NewRouter wires the HTTP routes for the event service and operational endpoints.
func NewRouter(cfg *config.Config, st *store.Store, svc *events.Service) http.Handler {
	r := chi.NewRouter()

	// API endpoints: 20 requests per second, burst of 40
	apiLimiter := ratelimit.New(rate.Limit(20), 40, 5*time.Minute, cfg.TrustedProxies)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(overrideMethod)
	r.Use(metrics.Middleware())

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := st.HealthCheck(ctx); err != nil {
			http.Error(w, "unready", http.StatusServiceUnavailable)
			return
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if cfg.PrometheusEnabled {
		r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			metrics.Handler().ServeHTTP(w, r)
		})
	}

	eventsHandler := api.NewHandler(svc)
	r.Route("/api", func(r chi.Router) {
		r.Use(apiLimiter.Middleware())
		r.HandleFunc("/events", eventsHandler.Events)
	})

	return r
}

// overrideMethod lets HTML forms reach PUT and DELETE handlers via a _method
// form or query parameter.
func overrideMethod(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method := r.Method
		if r.Method == http.MethodPost {
			if m := strings.TrimSpace(r.PostFormValue("_method")); m != "" {
				method = m
			} else if m := strings.TrimSpace(r.URL.Query().Get("_method")); m != "" {
				method = m
			}
		}
		switch strings.ToUpper(method) {
		case http.MethodPut, http.MethodDelete:
			r.Method = strings.ToUpper(method)
		}
		next.ServeHTTP(w, r)
	})
}
