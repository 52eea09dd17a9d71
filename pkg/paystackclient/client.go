/**
 * @description
 * This package provides a client for interacting with the Paystack REST API.
 * It encapsulates the logic for making authenticated HTTP requests to
 * Paystack's endpoints, handling request body construction, and parsing the
 * `{status, message, data}` response envelope.
 *
 * No retry, rate limiting, or circuit breaking is applied; transport and
 * non-2xx failures propagate to the caller as-is.
 *
 * @dependencies
 * - bytes, context, encoding/json, fmt, net/http, time: Standard Go libraries.
 */
package paystackclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// Client is a client for the Paystack API. Every request carries the static
// secret key as a bearer credential.
type Client struct {
	BaseURL    string
	SecretKey  string
	HTTPClient *http.Client
}

// NewClient creates a new Paystack API client.
func NewClient(baseURL, secretKey string) *Client {
	return &Client{
		BaseURL:   baseURL,
		SecretKey: secretKey,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// envelope is Paystack's standard response wrapper.
type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// ErrorResponse represents an error returned by the Paystack API.
type ErrorResponse struct {
	StatusCode int
	Message    string `json:"message"`
}

func (e *ErrorResponse) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("paystack api error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("paystack api error (status %d)", e.StatusCode)
}

// CustomerRequest is the payload for creating a Paystack customer.
type CustomerRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone,omitempty"`
}

// CustomerData is the customer object returned by Paystack. Raw retains the
// full `data` payload for embedding in API responses.
type CustomerData struct {
	Email        string          `json:"email"`
	FirstName    string          `json:"first_name"`
	LastName     string          `json:"last_name"`
	CustomerCode string          `json:"customer_code"`
	Raw          json.RawMessage `json:"-"`
}

// DedicatedAccountRequest is the payload for creating a dedicated virtual
// account against an existing customer.
type DedicatedAccountRequest struct {
	Customer      string `json:"customer"`
	PreferredBank string `json:"preferred_bank"`
}

// DedicatedAccountData is the dedicated account object returned by Paystack.
type DedicatedAccountData struct {
	Bank struct {
		Name string `json:"name"`
		ID   int    `json:"id"`
		Slug string `json:"slug"`
	} `json:"bank"`
	AccountName   string `json:"account_name"`
	AccountNumber string `json:"account_number"`
	Assigned      bool   `json:"assigned"`
	Currency      string `json:"currency"`
	Customer      struct {
		CustomerCode string `json:"customer_code"`
	} `json:"customer"`
	Raw json.RawMessage `json:"-"`
}

// InitializeTransactionRequest is the payload for initializing a payment.
// Amount is in the provider's minor currency unit (kobo).
type InitializeTransactionRequest struct {
	Email  string `json:"email"`
	Amount int64  `json:"amount"`
}

// InitializeTransactionData is the transaction object returned by Paystack.
type InitializeTransactionData struct {
	AuthorizationURL string          `json:"authorization_url"`
	AccessCode       string          `json:"access_code"`
	Reference        string          `json:"reference"`
	Raw              json.RawMessage `json:"-"`
}

// CreateCustomer creates a customer on Paystack.
func (c *Client) CreateCustomer(ctx context.Context, req CustomerRequest) (*CustomerData, error) {
	raw, err := c.do(ctx, http.MethodPost, "/customer", req)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}

	var data CustomerData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to decode customer response: %w", err)
	}
	data.Raw = raw
	return &data, nil
}

// CreateDedicatedAccount creates a dedicated virtual account on Paystack.
func (c *Client) CreateDedicatedAccount(ctx context.Context, req DedicatedAccountRequest) (*DedicatedAccountData, error) {
	raw, err := c.do(ctx, http.MethodPost, "/dedicated_account", req)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}

	var data DedicatedAccountData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to decode dedicated account response: %w", err)
	}
	data.Raw = raw
	return &data, nil
}

// InitializeTransaction initializes a payment on Paystack and returns the
// checkout authorization details.
func (c *Client) InitializeTransaction(ctx context.Context, req InitializeTransactionRequest) (*InitializeTransactionData, error) {
	raw, err := c.do(ctx, http.MethodPost, "/transaction/initialize", req)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}

	var data InitializeTransactionData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to decode transaction response: %w", err)
	}
	data.Raw = raw
	return &data, nil
}

// ListBanks fetches Paystack's bank list. The raw data payload is returned
// untyped; it backs the demo proxy endpoint.
func (c *Client) ListBanks(ctx context.Context) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/bank", nil)
}

// do executes one authenticated request against the Paystack API and returns
// the raw `data` payload from the response envelope. A JSON "null" data
// field is normalized to an empty payload.
func (c *Client) do(ctx context.Context, method, path string, payload interface{}) (json.RawMessage, error) {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewBuffer(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.SecretKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errResp := &ErrorResponse{StatusCode: resp.StatusCode}
		if err := json.Unmarshal(bodyBytes, errResp); err != nil {
			log.Printf("level=warn component=paystack_client path=%s status=%d msg=\"non-2xx response (unparsable error body)\"", path, resp.StatusCode)
			return nil, errResp
		}
		log.Printf("level=warn component=paystack_client path=%s status=%d message=%q", path, resp.StatusCode, errResp.Message)
		return nil, errResp
	}

	var env envelope
	if err := json.Unmarshal(bodyBytes, &env); err != nil {
		return nil, fmt.Errorf("failed to decode response envelope: %w", err)
	}

	if string(env.Data) == "null" {
		return nil, nil
	}
	return env.Data, nil
}
