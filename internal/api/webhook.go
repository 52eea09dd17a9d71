/**
 * @description
 * This file contains the HTTP handler for processing incoming webhooks from
 * Paystack. It is the entry point for asynchronous charge notifications.
 *
 * Key features:
 * - Security: validates the HMAC-SHA512 signature of incoming webhooks over
 *   the raw body before any processing. Only the real provider can trigger
 *   state transitions.
 * - Reconciliation: hands verified events to the application service, which
 *   matches them against stored transactions and customers.
 * - Always answers 200 once authenticated; webhook processing is side
 *   effects only and the provider is never asked to retry.
 *
 * @dependencies
 * - crypto/hmac, crypto/sha512, encoding/hex: For signature validation.
 * - internal/app, internal/domain: Reconciliation logic and event types.
 */

package api

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/paylite/gateway-service/internal/app"
	"github.com/paylite/gateway-service/internal/domain"
)

// SignatureHeader carries the provider's hex-encoded HMAC-SHA512 of the raw
// request body.
const SignatureHeader = "x-paystack-signature"

// WebhookHandler processes incoming webhooks from the payment provider.
type WebhookHandler struct {
	service *app.Service
	secret  string
}

// NewWebhookHandler creates a new handler for the webhook endpoint.
func NewWebhookHandler(service *app.Service, secret string) *WebhookHandler {
	return &WebhookHandler{service: service, secret: secret}
}

// ServeHTTP implements the http.Handler interface.
func (h *WebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("level=warn component=webhook msg=\"body read failed\" err=%v", err)
		writeError(w, http.StatusBadRequest, "Cannot read request body")
		return
	}

	if !h.isValidSignature(r.Header.Get(SignatureHeader), body) {
		log.Printf("level=warn component=webhook outcome=reject reason=invalid_signature remote=%s", r.RemoteAddr)
		writeError(w, http.StatusUnauthorized, "Invalid signature")
		return
	}

	var event domain.WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		log.Printf("level=warn component=webhook outcome=reject reason=invalid_json err=%v", err)
		writeError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	log.Printf("level=info component=webhook msg=\"event received\" event=%s reference=%s", event.Event, event.Data.Reference)

	// Reconciliation failures are logged but never surfaced: the provider
	// retries on non-2xx, and replaying a half-applied event is worse than
	// dropping it under this store's last-write-wins semantics.
	if err := h.service.ReconcileWebhookEvent(r.Context(), event); err != nil {
		log.Printf("level=error component=webhook msg=\"reconciliation failed\" event=%s reference=%s err=%v", event.Event, event.Data.Reference, err)
	}

	w.WriteHeader(http.StatusOK)
}

// isValidSignature compares the header against the HMAC-SHA512 of the body
// in constant time. An empty configured secret skips validation so local
// demo flows keep working; this is logged every time.
func (h *WebhookHandler) isValidSignature(header string, body []byte) bool {
	if h.secret == "" {
		log.Println("level=warn component=webhook msg=\"PAYSTACK_WEBHOOK_SECRET is not set; skipping signature validation\"")
		return true
	}

	provided, err := hex.DecodeString(strings.TrimSpace(header))
	if err != nil || len(provided) == 0 {
		return false
	}

	mac := hmac.New(sha512.New, []byte(h.secret))
	mac.Write(body)
	return hmac.Equal(provided, mac.Sum(nil))
}
