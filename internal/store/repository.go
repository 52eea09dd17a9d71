/**
 * @description
 * This file defines the repository interfaces that specify the contract for
 * all data access operations required by the gateway-service. By defining
 * interfaces, we decouple the application's business logic from the specific
 * storage implementation (currently JSON files, eventually a real database),
 * making the code more modular and easier to test.
 *
 * @dependencies
 * - context, errors: Standard Go libraries.
 * - internal/domain: For the service's domain models.
 */

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/paylite/gateway-service/internal/domain"
)

// ErrNotFound is the base sentinel for any missing record. Entity-specific
// sentinels wrap it so callers can match either level.
var ErrNotFound = errors.New("record not found")

var (
	ErrTransactionNotFound = fmt.Errorf("transaction: %w", ErrNotFound)
	ErrCustomerNotFound    = fmt.Errorf("customer: %w", ErrNotFound)
	ErrAccountNotFound     = fmt.Errorf("virtual account: %w", ErrNotFound)
)

// TransactionRepository defines data access for payment transactions.
// Reference is the provider-issued business key.
type TransactionRepository interface {
	Create(ctx context.Context, params CreateTransactionParams) (*domain.Transaction, error)
	FindByID(ctx context.Context, id string) (*domain.Transaction, error)
	FindByReference(ctx context.Context, reference string) (*domain.Transaction, error)
	All(ctx context.Context) ([]domain.Transaction, error)
	Update(ctx context.Context, id string, params UpdateTransactionParams) (*domain.Transaction, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// CustomerRepository defines data access for provider customers.
// Code is the provider-issued business key.
type CustomerRepository interface {
	Create(ctx context.Context, params CreateCustomerParams) (*domain.Customer, error)
	FindByID(ctx context.Context, id string) (*domain.Customer, error)
	FindByCode(ctx context.Context, code string) (*domain.Customer, error)
	// FindOrCreateByCode returns the existing customer with the params' code,
	// or creates one atomically. The boolean reports whether a record was created.
	FindOrCreateByCode(ctx context.Context, params CreateCustomerParams) (*domain.Customer, bool, error)
	All(ctx context.Context) ([]domain.Customer, error)
	Update(ctx context.Context, id string, params UpdateCustomerParams) (*domain.Customer, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// AccountRepository defines data access for dedicated virtual accounts.
// CustomerCode is the business key linking an account to its customer.
type AccountRepository interface {
	Create(ctx context.Context, params CreateVirtualAccountParams) (*domain.VirtualAccount, error)
	FindByID(ctx context.Context, id string) (*domain.VirtualAccount, error)
	FindByCustomerCode(ctx context.Context, customerCode string) (*domain.VirtualAccount, error)
	// FindOrCreateByCustomerCode returns the existing account for the params'
	// customer code, or creates one atomically. The boolean reports whether a
	// record was created.
	FindOrCreateByCustomerCode(ctx context.Context, params CreateVirtualAccountParams) (*domain.VirtualAccount, bool, error)
	All(ctx context.Context) ([]domain.VirtualAccount, error)
	Update(ctx context.Context, id string, params UpdateVirtualAccountParams) (*domain.VirtualAccount, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// CreateTransactionParams carries the caller-supplied fields for a new
// transaction. Status is not accepted: every transaction starts pending.
type CreateTransactionParams struct {
	Amount    int64 // major units (naira)
	Reference string
	AuthURL   string
	Metadata  json.RawMessage
}

// UpdateTransactionParams carries a partial update; nil fields are left
// untouched on the stored record.
type UpdateTransactionParams struct {
	Status   *string
	AuthURL  *string
	Metadata json.RawMessage
}

// CreateCustomerParams carries the caller-supplied fields for a new customer.
type CreateCustomerParams struct {
	Email     string
	FirstName string
	LastName  string
	Code      string
	Metadata  json.RawMessage
}

// UpdateCustomerParams carries a partial update; nil fields are left
// untouched on the stored record.
type UpdateCustomerParams struct {
	Email         *string
	FirstName     *string
	LastName      *string
	WalletBalance *int64 // major units (naira)
	Metadata      json.RawMessage
}

// CreateVirtualAccountParams carries the caller-supplied fields for a new
// virtual account.
type CreateVirtualAccountParams struct {
	BankName      string
	BankID        int
	BankSlug      string
	AccountName   string
	AccountNumber string
	Assigned      bool
	Currency      string
	CustomerCode  string
	Metadata      json.RawMessage
}

// UpdateVirtualAccountParams carries a partial update; nil fields are left
// untouched on the stored record.
type UpdateVirtualAccountParams struct {
	AccountName   *string
	AccountNumber *string
	Assigned      *bool
	Metadata      json.RawMessage
}
