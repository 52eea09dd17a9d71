package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/paylite/gateway-service/internal/domain"
	"github.com/paylite/gateway-service/internal/store"
	"github.com/paylite/gateway-service/pkg/paystackclient"
)

type testDeps struct {
	service      *Service
	transactions *store.FileTransactionStore
	customers    *store.FileCustomerStore
	accounts     *store.FileAccountStore
}

func newTestService(t *testing.T, handler http.Handler) testDeps {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	transactions := store.NewFileTransactionStore(dir)
	customers := store.NewFileCustomerStore(dir)
	accounts := store.NewFileAccountStore(dir)
	client := paystackclient.NewClient(srv.URL, "sk_test_secret")

	return testDeps{
		service:      NewService(transactions, customers, accounts, client),
		transactions: transactions,
		customers:    customers,
		accounts:     accounts,
	}
}

func paystackOK(data string) string {
	return fmt.Sprintf(`{"status":true,"message":"ok","data":%s}`, data)
}

func TestInitializePaymentConvertsAmountToMinorUnits(t *testing.T) {
	var providerAmount int64
	deps := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var req paystackclient.InitializeTransactionRequest
		if err := json.Unmarshal(body, &req); err != nil {
			t.Fatalf("provider received invalid JSON: %v", err)
		}
		providerAmount = req.Amount
		fmt.Fprint(w, paystackOK(`{"authorization_url":"https://checkout.paystack.com/abc","access_code":"ac_1","reference":"ref_123"}`))
	}))

	data, err := deps.service.InitializePayment(context.Background(), domain.InitializePaymentRequest{
		Email:  "jane@example.com",
		Amount: 50,
	})
	if err != nil {
		t.Fatalf("InitializePayment returned error: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected provider data payload, got empty")
	}

	if providerAmount != 5000 {
		t.Fatalf("expected provider to receive 5000 (minor units), got %d", providerAmount)
	}

	tx, err := deps.transactions.FindByReference(context.Background(), "ref_123")
	if err != nil {
		t.Fatalf("expected stored transaction: %v", err)
	}
	if tx.Amount != 50 {
		t.Fatalf("expected stored amount 50 (major units), got %d", tx.Amount)
	}
	if tx.Status != domain.TransactionStatusPending {
		t.Fatalf("expected pending status, got %q", tx.Status)
	}
	if tx.AuthURL != "https://checkout.paystack.com/abc" {
		t.Fatalf("expected authorization url stored, got %q", tx.AuthURL)
	}
}

func TestInitializePaymentAppliesDemoDefaults(t *testing.T) {
	var gotEmail string
	var gotAmount int64
	deps := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req paystackclient.InitializeTransactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("provider received invalid JSON: %v", err)
		}
		gotEmail = req.Email
		gotAmount = req.Amount
		fmt.Fprint(w, paystackOK(`{"authorization_url":"https://checkout.paystack.com/d","access_code":"ac_2","reference":"ref_default"}`))
	}))

	if _, err := deps.service.InitializePayment(context.Background(), domain.InitializePaymentRequest{}); err != nil {
		t.Fatalf("InitializePayment returned error: %v", err)
	}

	if gotEmail != defaultEmail {
		t.Fatalf("expected default email %q, got %q", defaultEmail, gotEmail)
	}
	if gotAmount != defaultAmount*100 {
		t.Fatalf("expected default amount %d kobo, got %d", defaultAmount*100, gotAmount)
	}
}

func TestCreateCustomerIsIdempotentPerProviderCode(t *testing.T) {
	deps := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, paystackOK(`{"email":"jane@example.com","first_name":"Jane","last_name":"Doe","customer_code":"CUS_abc"}`))
	}))

	for i := 0; i < 2; i++ {
		if _, err := deps.service.CreateCustomer(context.Background(), domain.CreateCustomerRequest{Email: "jane@example.com"}); err != nil {
			t.Fatalf("CreateCustomer call %d returned error: %v", i+1, err)
		}
	}

	all, err := deps.customers.All(context.Background())
	if err != nil {
		t.Fatalf("All returned error: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected exactly one stored customer, got %d", len(all))
	}
	if all[0].Code != "CUS_abc" {
		t.Fatalf("expected stored customer code CUS_abc, got %q", all[0].Code)
	}
}

func TestCreateVirtualAccountPersistsProviderFields(t *testing.T) {
	deps := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, paystackOK(`{
			"bank":{"name":"Wema Bank","id":20,"slug":"wema-bank"},
			"account_name":"JANE DOE",
			"account_number":"9930000737",
			"assigned":true,
			"currency":"NGN",
			"customer":{"customer_code":"CUS_va"}
		}`))
	}))

	if _, err := deps.service.CreateVirtualAccount(context.Background(), domain.CreateVirtualAccountRequest{}); err != nil {
		t.Fatalf("CreateVirtualAccount returned error: %v", err)
	}

	account, err := deps.accounts.FindByCustomerCode(context.Background(), "CUS_va")
	if err != nil {
		t.Fatalf("expected stored account: %v", err)
	}
	if account.BankName != "Wema Bank" || account.BankID != 20 || account.BankSlug != "wema-bank" {
		t.Fatalf("expected bank fields persisted, got %+v", account)
	}
	if account.AccountNumber != "9930000737" || !account.Assigned || account.Currency != "NGN" {
		t.Fatalf("expected account fields persisted, got %+v", account)
	}
}

func TestEmptyProviderDataIsSurfaced(t *testing.T) {
	deps := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":true,"message":"ok","data":null}`)
	}))

	if _, err := deps.service.CreateVirtualAccount(context.Background(), domain.CreateVirtualAccountRequest{}); !errors.Is(err, ErrEmptyProviderResponse) {
		t.Fatalf("expected ErrEmptyProviderResponse, got %v", err)
	}
	if _, err := deps.service.CreateCustomer(context.Background(), domain.CreateCustomerRequest{}); !errors.Is(err, ErrEmptyProviderResponse) {
		t.Fatalf("expected ErrEmptyProviderResponse, got %v", err)
	}
	if _, err := deps.service.InitializePayment(context.Background(), domain.InitializePaymentRequest{}); !errors.Is(err, ErrEmptyProviderResponse) {
		t.Fatalf("expected ErrEmptyProviderResponse, got %v", err)
	}
}

func mustUnmarshalEvent(t *testing.T, payload string) domain.WebhookEvent {
	t.Helper()
	var event domain.WebhookEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		t.Fatalf("failed to unmarshal event payload: %v", err)
	}
	return event
}

func TestReconcileChargeSuccessCompletesTransactionAndCreditsWallet(t *testing.T) {
	deps := newTestService(t, http.NotFoundHandler())
	ctx := context.Background()

	if _, err := deps.transactions.Create(ctx, store.CreateTransactionParams{Amount: 50, Reference: "ref_123"}); err != nil {
		t.Fatalf("seed transaction: %v", err)
	}
	if _, err := deps.customers.Create(ctx, store.CreateCustomerParams{Email: "jane@example.com", Code: "CUS_abc"}); err != nil {
		t.Fatalf("seed customer: %v", err)
	}

	event := mustUnmarshalEvent(t, `{
		"event":"charge.success",
		"data":{"reference":"ref_123","amount":5000,"customer":{"customer_code":"CUS_abc"}}
	}`)

	if err := deps.service.ReconcileWebhookEvent(ctx, event); err != nil {
		t.Fatalf("ReconcileWebhookEvent returned error: %v", err)
	}

	tx, err := deps.transactions.FindByReference(ctx, "ref_123")
	if err != nil {
		t.Fatalf("FindByReference returned error: %v", err)
	}
	if tx.Status != domain.TransactionStatusCompleted {
		t.Fatalf("expected status completed, got %q", tx.Status)
	}
	if len(tx.Metadata) == 0 {
		t.Fatal("expected event payload attached as metadata")
	}

	customer, err := deps.customers.FindByCode(ctx, "CUS_abc")
	if err != nil {
		t.Fatalf("FindByCode returned error: %v", err)
	}
	if customer.WalletBalance != 50 {
		t.Fatalf("expected wallet credited with 50 (major units), got %d", customer.WalletBalance)
	}
}

func TestReconcileChargeFailedMarksTransactionFailed(t *testing.T) {
	deps := newTestService(t, http.NotFoundHandler())
	ctx := context.Background()

	if _, err := deps.transactions.Create(ctx, store.CreateTransactionParams{Amount: 25, Reference: "ref_fail"}); err != nil {
		t.Fatalf("seed transaction: %v", err)
	}

	event := mustUnmarshalEvent(t, `{
		"event":"charge.failed",
		"data":{"reference":"ref_fail","amount":2500}
	}`)

	if err := deps.service.ReconcileWebhookEvent(ctx, event); err != nil {
		t.Fatalf("ReconcileWebhookEvent returned error: %v", err)
	}

	tx, err := deps.transactions.FindByReference(ctx, "ref_fail")
	if err != nil {
		t.Fatalf("FindByReference returned error: %v", err)
	}
	if tx.Status != domain.TransactionStatusFailed {
		t.Fatalf("expected status failed, got %q", tx.Status)
	}
}

func TestReconcileUnknownReferenceLeavesStateUnchanged(t *testing.T) {
	deps := newTestService(t, http.NotFoundHandler())
	ctx := context.Background()

	seeded, err := deps.transactions.Create(ctx, store.CreateTransactionParams{Amount: 10, Reference: "ref_other"})
	if err != nil {
		t.Fatalf("seed transaction: %v", err)
	}

	event := mustUnmarshalEvent(t, `{
		"event":"charge.success",
		"data":{"reference":"ref_missing","amount":1000,"customer":{"customer_code":"CUS_missing"}}
	}`)

	if err := deps.service.ReconcileWebhookEvent(ctx, event); err != nil {
		t.Fatalf("expected unknown reference to be dropped silently, got %v", err)
	}

	tx, err := deps.transactions.FindByID(ctx, seeded.ID)
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if tx.Status != domain.TransactionStatusPending {
		t.Fatalf("expected unrelated transaction untouched, got status %q", tx.Status)
	}
}

func TestReconcileIgnoresUnhandledEvents(t *testing.T) {
	deps := newTestService(t, http.NotFoundHandler())

	event := mustUnmarshalEvent(t, `{"event":"transfer.success","data":{"reference":"ref_x"}}`)
	if err := deps.service.ReconcileWebhookEvent(context.Background(), event); err != nil {
		t.Fatalf("expected unhandled event to be ignored, got %v", err)
	}
}
