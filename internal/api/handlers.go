/**
 * @description
 * This file contains the HTTP handlers for the gateway-service's API
 * endpoints. Handlers parse incoming requests, call the application service,
 * and write the `{success, data}` / `{success:false, message}` JSON envelope.
 * They act as the bridge between the web layer and the business logic layer.
 *
 * @dependencies
 * - encoding/json, log, net/http: Standard Go libraries.
 * - internal/app, internal/domain: For service logic and request DTOs.
 */

package api

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/paylite/gateway-service/internal/app"
	"github.com/paylite/gateway-service/internal/domain"
)

// Handlers holds the application service that handlers will use.
type Handlers struct {
	service *app.Service
}

// NewHandlers creates a new instance of Handlers.
func NewHandlers(service *app.Service) *Handlers {
	return &Handlers{service: service}
}

// CreateVirtualAccountHandler handles POST /virtual-account.
func (h *Handlers) CreateVirtualAccountHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateVirtualAccountRequest
	if err := decodeOptionalBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	data, err := h.service.CreateVirtualAccount(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, "create_virtual_account", "Unable to create virtual account", err)
		return
	}

	writeData(w, http.StatusOK, data)
}

// CreateCustomerHandler handles POST /customer.
func (h *Handlers) CreateCustomerHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateCustomerRequest
	if err := decodeOptionalBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	data, err := h.service.CreateCustomer(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, "create_customer", "Unable to create customer", err)
		return
	}

	writeData(w, http.StatusOK, data)
}

// InitializePaymentHandler handles POST /initialize-payment. Email and
// amount are optional; missing values fall back to fixed demo defaults.
func (h *Handlers) InitializePaymentHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.InitializePaymentRequest
	if err := decodeOptionalBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	data, err := h.service.InitializePayment(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, "initialize_payment", "Unable to initialize payment", err)
		return
	}

	writeData(w, http.StatusOK, data)
}

// DemoHandler handles GET /api by proxying a fixed provider call.
func (h *Handlers) DemoHandler(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.DemoBanks(r.Context())
	if err != nil {
		log.Printf("level=error component=api endpoint=demo outcome=failed err=%v", err)
		writeError(w, http.StatusInternalServerError, "Provider call failed")
		return
	}
	writeData(w, http.StatusOK, data)
}

// LivenessHandler handles GET /.
func (h *Handlers) LivenessHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "gateway-service is running",
	})
}

// writeServiceError maps service failures onto the spec'd status codes: an
// empty provider payload is the caller's 400; anything else is a 500 with a
// generic message (the underlying error is logged, never echoed).
func (h *Handlers) writeServiceError(w http.ResponseWriter, endpoint, message string, err error) {
	if errors.Is(err, app.ErrEmptyProviderResponse) {
		log.Printf("level=warn component=api endpoint=%s outcome=reject reason=empty_provider_response", endpoint)
		writeError(w, http.StatusBadRequest, message)
		return
	}
	log.Printf("level=error component=api endpoint=%s outcome=failed err=%v", endpoint, err)
	writeError(w, http.StatusInternalServerError, "Internal server error")
}

// decodeOptionalBody decodes a JSON request body into dst, treating an empty
// body as an empty request. Two of the three creation endpoints work from
// fixed demo values, so a missing body is the normal case.
func decodeOptionalBody(r *http.Request, dst interface{}) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// writeJSON writes an arbitrary JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

// writeData writes the success envelope with the provider's raw data embedded.
func writeData(w http.ResponseWriter, status int, data json.RawMessage) {
	writeJSON(w, status, map[string]interface{}{
		"success": true,
		"data":    data,
	})
}

// writeError writes the failure envelope.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"success": false,
		"message": message,
	})
}
