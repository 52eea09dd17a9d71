/**
 * @description
 * This file contains the core application service for the gateway-service.
 * Each operation follows the same pattern: build a provider payload (falling
 * back to fixed demo values where the inbound request leaves fields empty),
 * call the Paystack client, then record the outcome in the relevant store
 * using the provider-issued business key. The webhook reconciler lives in
 * webhook.go in this package.
 *
 * @dependencies
 * - internal/domain, internal/store: Domain models and repositories.
 * - pkg/paystackclient: The outbound Paystack API client.
 */

package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/paylite/gateway-service/internal/domain"
	"github.com/paylite/gateway-service/internal/store"
	"github.com/paylite/gateway-service/pkg/paystackclient"
)

// ErrEmptyProviderResponse indicates the provider answered 2xx but returned
// no data payload to act on.
var ErrEmptyProviderResponse = errors.New("provider returned an empty response")

// Fixed demo fallbacks used when the inbound request omits a field.
const (
	defaultEmail         = "customer@email.com"
	defaultFirstName     = "John"
	defaultLastName      = "Doe"
	defaultPhone         = "+2348012345678"
	defaultCustomerCode  = "CUS_demo"
	defaultPreferredBank = "wema-bank"
	defaultAmount        = int64(100) // major units (naira)
)

// Service orchestrates provider calls and local persistence. Stores are
// injected so tests can isolate them and a database-backed implementation
// can be swapped in later.
type Service struct {
	transactions store.TransactionRepository
	customers    store.CustomerRepository
	accounts     store.AccountRepository
	provider     *paystackclient.Client
}

// NewService creates a new application service with its dependencies.
func NewService(
	transactions store.TransactionRepository,
	customers store.CustomerRepository,
	accounts store.AccountRepository,
	provider *paystackclient.Client,
) *Service {
	return &Service{
		transactions: transactions,
		customers:    customers,
		accounts:     accounts,
		provider:     provider,
	}
}

// CreateVirtualAccount asks the provider for a dedicated virtual account and
// records it locally, keyed by the provider's customer code. The raw provider
// data payload is returned for embedding in the API response.
func (s *Service) CreateVirtualAccount(ctx context.Context, req domain.CreateVirtualAccountRequest) (json.RawMessage, error) {
	payload := paystackclient.DedicatedAccountRequest{
		Customer:      req.Customer,
		PreferredBank: req.PreferredBank,
	}
	if payload.Customer == "" {
		payload.Customer = defaultCustomerCode
	}
	if payload.PreferredBank == "" {
		payload.PreferredBank = defaultPreferredBank
	}

	data, err := s.provider.CreateDedicatedAccount(ctx, payload)
	if err != nil {
		return nil, fmt.Errorf("create dedicated account: %w", err)
	}
	if data == nil {
		return nil, ErrEmptyProviderResponse
	}

	account, created, err := s.accounts.FindOrCreateByCustomerCode(ctx, store.CreateVirtualAccountParams{
		BankName:      data.Bank.Name,
		BankID:        data.Bank.ID,
		BankSlug:      data.Bank.Slug,
		AccountName:   data.AccountName,
		AccountNumber: data.AccountNumber,
		Assigned:      data.Assigned,
		Currency:      data.Currency,
		CustomerCode:  data.Customer.CustomerCode,
		Metadata:      data.Raw,
	})
	if err != nil {
		return nil, fmt.Errorf("persist virtual account: %w", err)
	}
	log.Printf("level=info component=app op=create_virtual_account customer_code=%s account_id=%s created=%t", data.Customer.CustomerCode, account.ID, created)

	return data.Raw, nil
}

// CreateCustomer creates a customer on the provider and records it locally,
// keyed by the provider's customer code. Invoking this twice with the same
// provider code yields exactly one stored record.
func (s *Service) CreateCustomer(ctx context.Context, req domain.CreateCustomerRequest) (json.RawMessage, error) {
	payload := paystackclient.CustomerRequest{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	}
	if payload.Email == "" {
		payload.Email = defaultEmail
	}
	if payload.FirstName == "" {
		payload.FirstName = defaultFirstName
	}
	if payload.LastName == "" {
		payload.LastName = defaultLastName
	}
	if payload.Phone == "" {
		payload.Phone = defaultPhone
	}

	data, err := s.provider.CreateCustomer(ctx, payload)
	if err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	if data == nil {
		return nil, ErrEmptyProviderResponse
	}

	customer, created, err := s.customers.FindOrCreateByCode(ctx, store.CreateCustomerParams{
		Email:     data.Email,
		FirstName: data.FirstName,
		LastName:  data.LastName,
		Code:      data.CustomerCode,
		Metadata:  data.Raw,
	})
	if err != nil {
		return nil, fmt.Errorf("persist customer: %w", err)
	}
	log.Printf("level=info component=app op=create_customer customer_code=%s customer_id=%s created=%t", data.CustomerCode, customer.ID, created)

	return data.Raw, nil
}

// InitializePayment initializes a payment on the provider and records a
// pending transaction. The provider receives the amount in minor units
// (kobo); the stored transaction keeps the major-unit amount.
func (s *Service) InitializePayment(ctx context.Context, req domain.InitializePaymentRequest) (json.RawMessage, error) {
	email := req.Email
	if email == "" {
		email = defaultEmail
	}
	amount := req.Amount
	if amount <= 0 {
		amount = defaultAmount
	}

	data, err := s.provider.InitializeTransaction(ctx, paystackclient.InitializeTransactionRequest{
		Email:  email,
		Amount: amount * 100, // major -> minor units
	})
	if err != nil {
		return nil, fmt.Errorf("initialize transaction: %w", err)
	}
	if data == nil {
		return nil, ErrEmptyProviderResponse
	}

	tx, err := s.transactions.Create(ctx, store.CreateTransactionParams{
		Amount:    amount,
		Reference: data.Reference,
		AuthURL:   data.AuthorizationURL,
	})
	if err != nil {
		return nil, fmt.Errorf("persist transaction: %w", err)
	}
	log.Printf("level=info component=app op=initialize_payment reference=%s transaction_id=%s amount=%d", tx.Reference, tx.ID, tx.Amount)

	return data.Raw, nil
}

// DemoBanks proxies the provider's bank list, backing the GET /api demo
// endpoint.
func (s *Service) DemoBanks(ctx context.Context) (json.RawMessage, error) {
	return s.provider.ListBanks(ctx)
}
