/**
 * @description
 * This file contains the webhook reconciler: it matches asynchronous charge
 * events from the provider against stored transactions and customers and
 * mutates their state. Events referencing unknown records are logged and
 * dropped; there is no retry or dead-letter path.
 */

package app

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/paylite/gateway-service/internal/domain"
	"github.com/paylite/gateway-service/internal/store"
)

// ReconcileWebhookEvent applies one provider callback to local state.
//
// charge.success moves the referenced transaction pending -> completed,
// attaches the event payload as metadata, and credits the charged customer's
// wallet with the major-unit amount. charge.failed moves the transaction to
// failed. Any other event type is ignored.
func (s *Service) ReconcileWebhookEvent(ctx context.Context, event domain.WebhookEvent) error {
	switch event.Event {
	case domain.EventChargeSuccess:
		if err := s.completeTransaction(ctx, event.Data); err != nil {
			return err
		}
		return s.creditCustomerWallet(ctx, event.Data)
	case domain.EventChargeFailed:
		return s.failTransaction(ctx, event.Data)
	default:
		log.Printf("level=info component=reconciler msg=\"unhandled webhook event\" event=%s", event.Event)
		return nil
	}
}

func (s *Service) completeTransaction(ctx context.Context, data domain.WebhookEventData) error {
	return s.transitionTransaction(ctx, data, domain.TransactionStatusCompleted)
}

func (s *Service) failTransaction(ctx context.Context, data domain.WebhookEventData) error {
	return s.transitionTransaction(ctx, data, domain.TransactionStatusFailed)
}

func (s *Service) transitionTransaction(ctx context.Context, data domain.WebhookEventData, status string) error {
	tx, err := s.transactions.FindByReference(ctx, data.Reference)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Printf("level=warn component=reconciler msg=\"event references unknown transaction; dropped\" reference=%s status=%s", data.Reference, status)
			return nil
		}
		return fmt.Errorf("lookup transaction %q: %w", data.Reference, err)
	}

	if _, err := s.transactions.Update(ctx, tx.ID, store.UpdateTransactionParams{
		Status:   &status,
		Metadata: data.Raw,
	}); err != nil {
		return fmt.Errorf("update transaction %s: %w", tx.ID, err)
	}
	log.Printf("level=info component=reconciler msg=\"transaction reconciled\" reference=%s transaction_id=%s status=%s", tx.Reference, tx.ID, status)
	return nil
}

func (s *Service) creditCustomerWallet(ctx context.Context, data domain.WebhookEventData) error {
	if data.Customer.CustomerCode == "" {
		return nil
	}

	customer, err := s.customers.FindByCode(ctx, data.Customer.CustomerCode)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Printf("level=warn component=reconciler msg=\"event references unknown customer; wallet credit dropped\" customer_code=%s", data.Customer.CustomerCode)
			return nil
		}
		return fmt.Errorf("lookup customer %q: %w", data.Customer.CustomerCode, err)
	}

	// Event amounts arrive in minor units; wallet balances are held in major units.
	credited := customer.WalletBalance + data.Amount/100
	if _, err := s.customers.Update(ctx, customer.ID, store.UpdateCustomerParams{
		WalletBalance: &credited,
	}); err != nil {
		return fmt.Errorf("credit customer %s: %w", customer.ID, err)
	}
	log.Printf("level=info component=reconciler msg=\"wallet credited\" customer_code=%s customer_id=%s balance=%d", customer.Code, customer.ID, credited)
	return nil
}
