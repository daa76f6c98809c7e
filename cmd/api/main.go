package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/joho/godotenv"

	"github.com/marqueehq/marquee/internal/auth"
	"github.com/marqueehq/marquee/internal/config"
	"github.com/marqueehq/marquee/internal/contract"
	contractStore "github.com/marqueehq/marquee/internal/contract/store"
	"github.com/marqueehq/marquee/internal/counterparty"
	counterpartyStore "github.com/marqueehq/marquee/internal/counterparty/store"
	"github.com/marqueehq/marquee/internal/docstore"
	"github.com/marqueehq/marquee/internal/event"
	eventStore "github.com/marqueehq/marquee/internal/event/store"
	marqueeHttp "github.com/marqueehq/marquee/internal/http"
	contractHandler "github.com/marqueehq/marquee/internal/http/contract"
	counterpartyHandler "github.com/marqueehq/marquee/internal/http/counterparty"
	eventHandler "github.com/marqueehq/marquee/internal/http/event"
	importHandler "github.com/marqueehq/marquee/internal/http/importcsv"
	paymentHandler "github.com/marqueehq/marquee/internal/http/payment"
	"github.com/marqueehq/marquee/internal/importer"
	"github.com/marqueehq/marquee/internal/payment"
	paymentStore "github.com/marqueehq/marquee/internal/payment/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	client, err := firestore.NewClient(ctx, cfg.Firestore.ProjectID)
	if err != nil {
		slog.Error("failed to connect to firestore", "error", err)
		os.Exit(1)
	}
	defer client.Close()

	db := docstore.NewFirestore(client)

	var (
		counterpartySvc = counterparty.NewService(counterpartyStore.New(db))
		eventSvc        = event.NewService(eventStore.New(db))
		paymentsRepo    = paymentStore.New(db)
		paymentSvc      = payment.NewService(paymentsRepo)
		contractSvc     = contract.NewService(contractStore.New(db), paymentsRepo, counterpartyStore.New(db))
		importSvc       = importer.NewService()
	)

	tokens := auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	var (
		counterpartyH = counterpartyHandler.NewHandler(counterpartySvc)
		eventH        = eventHandler.NewHandler(eventSvc)
		contractH     = contractHandler.NewHandler(contractSvc, eventSvc)
		paymentH      = paymentHandler.NewHandler(paymentSvc)
		importH       = importHandler.NewHandler(importSvc, contractSvc, counterpartySvc)
	)

	router := marqueeHttp.New(tokens, counterpartyH, eventH, contractH, paymentH, importH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
