package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shopkart/internal/checkout"
	"shopkart/internal/config"
	"shopkart/internal/database"
	"shopkart/internal/geo"
	"shopkart/internal/handler"
	"shopkart/internal/payment"
	"shopkart/internal/repository"
	"shopkart/internal/router"
	"shopkart/internal/service"

	"github.com/redis/go-redis/v9"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting shopkart API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Initialize repositories
	productRepo := repository.NewProductRepository(pool, logger)
	voucherRepo := repository.NewVoucherRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	userRepo := repository.NewUserRepository(pool, logger)
	addressRepo := repository.NewAddressRepository(pool, logger)
	categoryRepo := repository.NewCategoryRepository(pool, logger)

	// Initialize the checkout session store: Redis when configured, an
	// in-process store otherwise.
	var sessionStore checkout.Store
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer client.Close()

		ttl := time.Duration(cfg.Checkout.SessionTTLMinutes) * time.Minute
		sessionStore = checkout.NewRedisStore(client, ttl)
		logger.Info().Str("addr", cfg.Redis.Addr).Msg("using redis checkout session store")
	} else {
		sessionStore = checkout.NewMemoryStore()
		logger.Info().Msg("using in-memory checkout session store (redis disabled)")
	}

	// Initialize the geo dataset loader with S3 and local fallback
	fileLoader := geo.NewFileLoader(logger)
	var geoLoader geo.Loader

	if cfg.Geo.S3Enabled {
		s3Loader, err := geo.NewS3Loader(ctx, cfg.Geo.S3Bucket, cfg.Geo.S3Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
			geoLoader = fileLoader
		} else {
			geoLoader = geo.NewFallbackLoader(s3Loader, fileLoader, cfg.Geo.S3Prefix, true, logger)
		}
	} else {
		geoLoader = fileLoader
		logger.Info().Msg("using local file system for the geo dataset (S3 disabled)")
	}

	geoDataset, err := geoLoader.Load(ctx, cfg.Geo.DatasetPath)
	if err != nil {
		return fmt.Errorf("failed to load geo dataset: %w", err)
	}
	logger.Info().Int("provinces", geoDataset.Size()).Msg("geo dataset loaded")

	// Initialize the hosted payment client
	paymentClient := payment.NewClient(cfg.Payment, logger)

	// Initialize services
	productService := service.NewProductService(productRepo, logger)
	voucherService := service.NewVoucherService(voucherRepo, logger)
	checkoutService := service.NewCheckoutService(sessionStore, productRepo, voucherRepo, userRepo, cfg.Checkout, logger)
	orderService := service.NewOrderService(orderRepo, productRepo, voucherRepo, userRepo, addressRepo, sessionStore, paymentClient, cfg.Checkout, logger)
	userService := service.NewUserService(userRepo, logger)
	addressService := service.NewAddressService(addressRepo, geoDataset, logger)
	categoryService := service.NewCategoryService(categoryRepo, logger)

	// Initialize HTTP handlers
	productHandler := handler.NewProductHandler(productService, logger)
	voucherHandler := handler.NewVoucherHandler(voucherService, logger)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService, logger)
	orderHandler := handler.NewOrderHandler(orderService, logger)
	userHandler := handler.NewUserHandler(userService, logger)
	addressHandler := handler.NewAddressHandler(addressService, logger)
	categoryHandler := handler.NewCategoryHandler(categoryService, logger)

	// Initialize router
	mux := router.New(
		productHandler,
		voucherHandler,
		checkoutHandler,
		orderHandler,
		userHandler,
		addressHandler,
		categoryHandler,
		cfg.Auth.APIKey,
		logger,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
