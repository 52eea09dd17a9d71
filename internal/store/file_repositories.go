/**
 * @description
 * This file contains the JSON-file implementations of the repository
 * interfaces. Each store owns one collection (and therefore one backing
 * file) exclusively; the three stores share the generic collection mechanics
 * over different schemas. Nothing is shared across stores except copied
 * business-key strings.
 *
 * @dependencies
 * - context, path/filepath: Standard Go libraries.
 * - internal/domain: Domain models persisted by the stores.
 */

package store

import (
	"context"
	"path/filepath"

	"github.com/paylite/gateway-service/internal/domain"
)

// FileTransactionStore persists transactions to <dataDir>/transactions.json.
type FileTransactionStore struct {
	c *collection[domain.Transaction]
}

// NewFileTransactionStore loads (or initializes) the transaction collection.
func NewFileTransactionStore(dataDir string) *FileTransactionStore {
	return &FileTransactionStore{
		c: newCollection(filepath.Join(dataDir, "transactions.json"), "transactions", func(t domain.Transaction) string { return t.ID }),
	}
}

func (s *FileTransactionStore) Create(ctx context.Context, params CreateTransactionParams) (*domain.Transaction, error) {
	tx := s.c.insert(domain.Transaction{
		ID:        newRecordID(),
		Amount:    params.Amount,
		Reference: params.Reference,
		AuthURL:   params.AuthURL,
		Status:    domain.TransactionStatusPending,
		Metadata:  params.Metadata,
	})
	return &tx, nil
}

func (s *FileTransactionStore) FindByID(ctx context.Context, id string) (*domain.Transaction, error) {
	tx, ok := s.c.find(id)
	if !ok {
		return nil, ErrTransactionNotFound
	}
	return &tx, nil
}

func (s *FileTransactionStore) FindByReference(ctx context.Context, reference string) (*domain.Transaction, error) {
	tx, ok := s.c.findFirst(func(t domain.Transaction) bool { return t.Reference == reference })
	if !ok {
		return nil, ErrTransactionNotFound
	}
	return &tx, nil
}

func (s *FileTransactionStore) All(ctx context.Context) ([]domain.Transaction, error) {
	return s.c.all(), nil
}

func (s *FileTransactionStore) Update(ctx context.Context, id string, params UpdateTransactionParams) (*domain.Transaction, error) {
	tx, ok := s.c.update(id, func(t domain.Transaction) domain.Transaction {
		if params.Status != nil {
			t.Status = *params.Status
		}
		if params.AuthURL != nil {
			t.AuthURL = *params.AuthURL
		}
		if params.Metadata != nil {
			t.Metadata = params.Metadata
		}
		return t
	})
	if !ok {
		return nil, ErrTransactionNotFound
	}
	return &tx, nil
}

func (s *FileTransactionStore) Delete(ctx context.Context, id string) (bool, error) {
	return s.c.remove(id), nil
}

// FileCustomerStore persists customers to <dataDir>/customers.json.
type FileCustomerStore struct {
	c *collection[domain.Customer]
}

// NewFileCustomerStore loads (or initializes) the customer collection.
func NewFileCustomerStore(dataDir string) *FileCustomerStore {
	return &FileCustomerStore{
		c: newCollection(filepath.Join(dataDir, "customers.json"), "customers", func(cu domain.Customer) string { return cu.ID }),
	}
}

func newCustomerFromParams(params CreateCustomerParams) domain.Customer {
	return domain.Customer{
		ID:        newRecordID(),
		Email:     params.Email,
		FirstName: params.FirstName,
		LastName:  params.LastName,
		Code:      params.Code,
		Metadata:  params.Metadata,
	}
}

func (s *FileCustomerStore) Create(ctx context.Context, params CreateCustomerParams) (*domain.Customer, error) {
	customer := s.c.insert(newCustomerFromParams(params))
	return &customer, nil
}

func (s *FileCustomerStore) FindByID(ctx context.Context, id string) (*domain.Customer, error) {
	customer, ok := s.c.find(id)
	if !ok {
		return nil, ErrCustomerNotFound
	}
	return &customer, nil
}

func (s *FileCustomerStore) FindByCode(ctx context.Context, code string) (*domain.Customer, error) {
	customer, ok := s.c.findFirst(func(cu domain.Customer) bool { return cu.Code == code })
	if !ok {
		return nil, ErrCustomerNotFound
	}
	return &customer, nil
}

func (s *FileCustomerStore) FindOrCreateByCode(ctx context.Context, params CreateCustomerParams) (*domain.Customer, bool, error) {
	customer, created := s.c.findOrInsert(
		func(cu domain.Customer) bool { return cu.Code == params.Code },
		func() domain.Customer { return newCustomerFromParams(params) },
	)
	return &customer, created, nil
}

func (s *FileCustomerStore) All(ctx context.Context) ([]domain.Customer, error) {
	return s.c.all(), nil
}

func (s *FileCustomerStore) Update(ctx context.Context, id string, params UpdateCustomerParams) (*domain.Customer, error) {
	customer, ok := s.c.update(id, func(cu domain.Customer) domain.Customer {
		if params.Email != nil {
			cu.Email = *params.Email
		}
		if params.FirstName != nil {
			cu.FirstName = *params.FirstName
		}
		if params.LastName != nil {
			cu.LastName = *params.LastName
		}
		if params.WalletBalance != nil {
			cu.WalletBalance = *params.WalletBalance
		}
		if params.Metadata != nil {
			cu.Metadata = params.Metadata
		}
		return cu
	})
	if !ok {
		return nil, ErrCustomerNotFound
	}
	return &customer, nil
}

func (s *FileCustomerStore) Delete(ctx context.Context, id string) (bool, error) {
	return s.c.remove(id), nil
}

// FileAccountStore persists virtual accounts to <dataDir>/accounts.json.
type FileAccountStore struct {
	c *collection[domain.VirtualAccount]
}

// NewFileAccountStore loads (or initializes) the virtual account collection.
func NewFileAccountStore(dataDir string) *FileAccountStore {
	return &FileAccountStore{
		c: newCollection(filepath.Join(dataDir, "accounts.json"), "accounts", func(a domain.VirtualAccount) string { return a.ID }),
	}
}

func newVirtualAccountFromParams(params CreateVirtualAccountParams) domain.VirtualAccount {
	return domain.VirtualAccount{
		ID:            newRecordID(),
		BankName:      params.BankName,
		BankID:        params.BankID,
		BankSlug:      params.BankSlug,
		AccountName:   params.AccountName,
		AccountNumber: params.AccountNumber,
		Assigned:      params.Assigned,
		Currency:      params.Currency,
		CustomerCode:  params.CustomerCode,
		Metadata:      params.Metadata,
	}
}

func (s *FileAccountStore) Create(ctx context.Context, params CreateVirtualAccountParams) (*domain.VirtualAccount, error) {
	account := s.c.insert(newVirtualAccountFromParams(params))
	return &account, nil
}

func (s *FileAccountStore) FindByID(ctx context.Context, id string) (*domain.VirtualAccount, error) {
	account, ok := s.c.find(id)
	if !ok {
		return nil, ErrAccountNotFound
	}
	return &account, nil
}

func (s *FileAccountStore) FindByCustomerCode(ctx context.Context, customerCode string) (*domain.VirtualAccount, error) {
	account, ok := s.c.findFirst(func(a domain.VirtualAccount) bool { return a.CustomerCode == customerCode })
	if !ok {
		return nil, ErrAccountNotFound
	}
	return &account, nil
}

func (s *FileAccountStore) FindOrCreateByCustomerCode(ctx context.Context, params CreateVirtualAccountParams) (*domain.VirtualAccount, bool, error) {
	account, created := s.c.findOrInsert(
		func(a domain.VirtualAccount) bool { return a.CustomerCode == params.CustomerCode },
		func() domain.VirtualAccount { return newVirtualAccountFromParams(params) },
	)
	return &account, created, nil
}

func (s *FileAccountStore) All(ctx context.Context) ([]domain.VirtualAccount, error) {
	return s.c.all(), nil
}

func (s *FileAccountStore) Update(ctx context.Context, id string, params UpdateVirtualAccountParams) (*domain.VirtualAccount, error) {
	account, ok := s.c.update(id, func(a domain.VirtualAccount) domain.VirtualAccount {
		if params.AccountName != nil {
			a.AccountName = *params.AccountName
		}
		if params.AccountNumber != nil {
			a.AccountNumber = *params.AccountNumber
		}
		if params.Assigned != nil {
			a.Assigned = *params.Assigned
		}
		if params.Metadata != nil {
			a.Metadata = params.Metadata
		}
		return a
	})
	if !ok {
		return nil, ErrAccountNotFound
	}
	return &account, nil
}

func (s *FileAccountStore) Delete(ctx context.Context, id string) (bool, error) {
	return s.c.remove(id), nil
}
