/**
 * @description
 * This is the main entry point for the gateway-service. It is responsible
 * for initializing all components of the service: configuration, the
 * JSON-file record stores, the Paystack API client, the core application
 * service, and the HTTP server. It wires everything together and starts the
 * service with graceful shutdown.
 *
 * @dependencies
 * - log, net/http: Standard Go libraries for logging and HTTP server functionality.
 * - github.com/joho/godotenv: To load .env files for local development.
 * - internal/api, internal/app, internal/config, internal/store: Internal packages.
 * - pkg/paystackclient: Client for the Paystack API.
 */

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/paylite/gateway-service/internal/api"
	"github.com/paylite/gateway-service/internal/app"
	"github.com/paylite/gateway-service/internal/config"
	"github.com/paylite/gateway-service/internal/store"
	"github.com/paylite/gateway-service/pkg/paystackclient"
)

func main() {
	// Load .env file for local development. In production, env vars are set directly.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("level=fatal component=bootstrap msg=\"config load failed\" err=%v", err)
	}
	if strings.TrimSpace(cfg.PaystackSecretKey) == "" {
		log.Fatalf("level=fatal component=bootstrap msg=\"paystack secret key must be configured\" env=PAYSTACK_SECRET_KEY")
	}
	if cfg.PaystackWebhookSecret == "" {
		log.Println("level=warn component=bootstrap msg=\"webhook secret not configured; webhook signatures will not be verified\" env=PAYSTACK_WEBHOOK_SECRET")
	}

	log.Printf("level=info component=bootstrap msg=\"starting gateway-service\" port=%s data_dir=%s", cfg.ServerPort, cfg.DataDir)

	// Initialize the file-backed record stores. Each store exclusively owns
	// one backing file under the data directory.
	transactions := store.NewFileTransactionStore(cfg.DataDir)
	customers := store.NewFileCustomerStore(cfg.DataDir)
	accounts := store.NewFileAccountStore(cfg.DataDir)

	// Initialize the client for the Paystack API.
	paystack := paystackclient.NewClient(cfg.PaystackAPIBaseURL, cfg.PaystackSecretKey)

	// Initialize the core application service with its dependencies.
	service := app.NewService(transactions, customers, accounts, paystack)

	handlers := api.NewHandlers(service)
	webhook := api.NewWebhookHandler(service, cfg.PaystackWebhookSecret)
	router := api.Routes(handlers, webhook)

	serverAddr := fmt.Sprintf(":%s", cfg.ServerPort)
	server := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	go func() {
		log.Printf("level=info component=http msg=\"server listening\" addr=%s", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("level=fatal component=http msg=\"server stopped unexpectedly\" err=%v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Println("level=info component=http msg=\"shutdown started\"")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("level=error component=http msg=\"shutdown failed\" err=%v", err)
	}

	log.Println("level=info component=http msg=\"shutdown complete\"")
}
