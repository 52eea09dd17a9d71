/**
 * @description
 * This file defines the core domain models for the gateway-service.
 * These structs represent the entities persisted by the record stores and the
 * data transfer objects (DTOs) used by the API and business logic layers.
 *
 * @notes
 * - Using distinct types for API requests, stored records, and external
 *   provider payloads ensures clear separation of concerns and type safety.
 * - Amounts are stored as `int64` in MAJOR currency units (naira); the
 *   provider wire format uses the smallest unit (kobo), and conversion
 *   happens exactly once, at the provider boundary.
 */

package domain

import "encoding/json"

// Transaction statuses. Every transaction starts as pending; a provider
// webhook moves it to completed or failed.
const (
	TransactionStatusPending   = "pending"
	TransactionStatusCompleted = "completed"
	TransactionStatusFailed    = "failed"
)

// Transaction records one payment initialization and its reconciled outcome.
// `Reference` is the provider-issued business key used by webhook lookups.
type Transaction struct {
	ID        string          `json:"id"`
	Amount    int64           `json:"amount"` // major units (naira)
	Reference string          `json:"reference"`
	AuthURL   string          `json:"authUrl"`
	Status    string          `json:"status"` // 'pending', 'completed', 'failed'
	Metadata  json.RawMessage `json:"metadata,omitempty"`
}

// Customer mirrors a provider-side customer. `Code` is the provider-issued
// business key. WalletBalance is credited by successful charge webhooks and
// is held in major units.
type Customer struct {
	ID            string          `json:"id"`
	Email         string          `json:"email"`
	FirstName     string          `json:"firstName"`
	LastName      string          `json:"lastName"`
	Code          string          `json:"code"`
	WalletBalance int64           `json:"walletBalance"` // major units (naira)
	Metadata      json.RawMessage `json:"metadata,omitempty"`
}

// VirtualAccount records a provider-created dedicated virtual account.
// `CustomerCode` links it to a Customer by business key; the link is not
// enforced across stores.
type VirtualAccount struct {
	ID            string          `json:"id"`
	BankName      string          `json:"bankName"`
	BankID        int             `json:"bankId"`
	BankSlug      string          `json:"bankSlug"`
	AccountName   string          `json:"accountName"`
	AccountNumber string          `json:"accountNumber"`
	Assigned      bool            `json:"assigned"`
	Currency      string          `json:"currency"`
	CustomerCode  string          `json:"customerCode"`
	Metadata      json.RawMessage `json:"metadata,omitempty"`
}

// InitializePaymentRequest is the DTO for POST /initialize-payment. Both
// fields are optional; missing values fall back to fixed demo defaults.
type InitializePaymentRequest struct {
	Email  string `json:"email,omitempty"`
	Amount int64  `json:"amount,omitempty"` // major units (naira)
}

// CreateCustomerRequest is the DTO for POST /customer. Empty fields fall
// back to fixed demo defaults.
type CreateCustomerRequest struct {
	Email     string `json:"email,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// CreateVirtualAccountRequest is the DTO for POST /virtual-account. Empty
// fields fall back to fixed demo defaults.
type CreateVirtualAccountRequest struct {
	Customer      string `json:"customer,omitempty"`
	PreferredBank string `json:"preferred_bank,omitempty"`
}
