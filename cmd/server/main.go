package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/dishcart/backend/config"
	httpDelivery "github.com/dishcart/backend/internal/delivery/http"
	"github.com/dishcart/backend/internal/infrastructure/mongodb"
	"github.com/dishcart/backend/internal/infrastructure/walmart"
	"github.com/dishcart/backend/internal/logger"
	"github.com/dishcart/backend/internal/usecase"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// .env is a local-development convenience; absence is fine
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level, cfg.Server.Environment)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("starting dishcart backend",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port))

	// Document store
	db, err := mongodb.Connect(context.Background(), cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		zapLogger.Fatal("failed to connect to document store", zap.Error(err))
	}
	recipeStore := mongodb.NewRecipeStore(db)
	resolutionStore := mongodb.NewResolutionStore(db)
	cartStore := mongodb.NewCartStore(db)

	// Retailer client; credentials are loaded once and never mutated
	signer, err := walmart.NewSigner(cfg.Walmart.ConsumerID, cfg.Walmart.KeyVersion, cfg.Walmart.PrivateKey)
	if err != nil {
		zapLogger.Fatal("failed to initialize retailer signer", zap.Error(err))
	}
	retailerClient := walmart.NewClient(signer, walmart.ClientConfig{
		SearchURL: cfg.Walmart.SearchURL,
		Timeout:   time.Duration(cfg.Walmart.TimeoutSeconds) * time.Second,
	}, zapLogger)

	// Pipeline components
	normalizer := usecase.NewNormalizer(0)
	filter := usecase.NewAuthenticityFilter(usecase.AuthenticityConfig{
		MockPrefixes: cfg.Walmart.MockIDPrefixes,
		Denylist:     cfg.Walmart.MockIDDenylist,
	})

	resolutionService := usecase.NewResolutionService(
		recipeStore,
		resolutionStore,
		retailerClient,
		normalizer,
		filter,
		usecase.ResolutionConfig{
			PerIngredientLimit: cfg.Walmart.PerIngredientLimit,
			MaxParallel:        cfg.Walmart.MaxParallel,
			PerCallTimeout:     time.Duration(cfg.Walmart.TimeoutSeconds) * time.Second,
		},
		zapLogger,
	)

	cartService := usecase.NewCartService(
		cartStore,
		filter,
		usecase.CartConfig{
			CartURL:     cfg.Walmart.CartURL,
			ItemsParam:  cfg.Walmart.CartItemsParam,
			AffiliateID: cfg.Walmart.AffiliateID,
			MaxTotal:    cfg.Walmart.MaxCartTotal,
		},
		zapLogger,
	)

	handler := httpDelivery.NewHandler(resolutionService, cartService, zapLogger)
	router := httpDelivery.SetupRouter(cfg, handler, zapLogger)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	zapLogger.Info("server listening", zap.String("addr", addr))

	if err := router.Run(addr); err != nil {
		zapLogger.Fatal("server exited", zap.Error(err))
	}
}
