package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/hatbazar/marketplace-api/internal/api"
	"github.com/hatbazar/marketplace-api/internal/checkout"
	"github.com/hatbazar/marketplace-api/internal/config"
	"github.com/hatbazar/marketplace-api/internal/coupon"
	"github.com/hatbazar/marketplace-api/internal/courier"
	"github.com/hatbazar/marketplace-api/internal/delivery"
	"github.com/hatbazar/marketplace-api/internal/navigation"
	"github.com/hatbazar/marketplace-api/internal/payment"
	"github.com/hatbazar/marketplace-api/internal/repository/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	var logger *zap.Logger
	if cfg.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	repos := postgres.NewRepositories(db, logger)

	courierClient := courier.NewClient(cfg.Courier, logger)
	gatewayClient := payment.NewClient(cfg.Payment, logger)
	rateClient := delivery.NewClient(cfg.Rates, logger)
	catalogClient := navigation.NewClient(cfg.Content, logger)

	evaluator := coupon.NewEvaluator(repos.Coupon, logger)
	resolver := delivery.NewResolver(rateClient, logger)
	kv := checkout.NewMemoryStore()
	sequencer := checkout.NewSequencer(repos.Order, courierClient, kv, logger)
	orch := checkout.NewOrchestrator(repos.Order, repos.Cart, evaluator, resolver, gatewayClient, sequencer, kv, logger)
	nav := navigation.NewResolver(catalogClient, logger)

	router := api.NewRouter(cfg, repos, orch, evaluator, nav, logger)

	logger.Info("Starting server", zap.String("port", cfg.Port))
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal("Server stopped", zap.Error(err))
	}
}
