/**
 * @description
 * This file sets up the HTTP router for the gateway-service. It defines the
 * API endpoints, associates them with their corresponding handlers, and
 * applies middleware for request logging, panic recovery, and timeouts.
 *
 * @dependencies
 * - net/http: Standard Go library for HTTP functionality.
 * - github.com/go-chi/chi/v5: A lightweight and idiomatic router for Go.
 */

package api

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Routes creates and returns the router for the gateway service.
func Routes(h *Handlers, webhook *WebhookHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(jsonRecoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/", h.LivenessHandler)
	r.Get("/api", h.DemoHandler)
	r.Post("/virtual-account", h.CreateVirtualAccountHandler)
	r.Post("/customer", h.CreateCustomerHandler)
	r.Post("/initialize-payment", h.InitializePaymentHandler)
	r.Method(http.MethodPost, "/webhook", webhook)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Resource not found")
	})

	return r
}

// jsonRecoverer converts handler panics into the service's 500 envelope.
// The panic value is logged, never echoed to the caller.
func jsonRecoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("level=error component=api msg=\"handler panic\" path=%s panic=%v", r.URL.Path, rec)
				writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
					"success": false,
					"status":  http.StatusInternalServerError,
					"message": "Internal server error",
				})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
