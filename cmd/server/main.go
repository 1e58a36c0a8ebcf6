package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/asalem/souq/internal"
	"github.com/asalem/souq/internal/auth"
	"github.com/asalem/souq/internal/domain"
	"github.com/asalem/souq/internal/email"
	"github.com/asalem/souq/internal/handler"
	"github.com/asalem/souq/internal/middleware"
	"github.com/asalem/souq/internal/mongodb"
	"github.com/asalem/souq/internal/router"
	"github.com/asalem/souq/internal/routes"
	"github.com/asalem/souq/internal/service"
)

func run() error {
	ctx := context.Background()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Connect to MongoDB
	logger.Info("Connecting to MongoDB...")
	client, err := mongodb.Connect(ctx, cfg.Mongo.URI)
	if err != nil {
		return fmt.Errorf("mongodb connection failed: %w", err)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			logger.Error("mongodb disconnect failed", "error", err)
		}
	}()

	db := client.Database(cfg.Mongo.Database)
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return fmt.Errorf("index creation failed: %w", err)
	}
	logger.Info("MongoDB connection established", "database", cfg.Mongo.Database)

	// Initialize stores
	users := mongodb.NewUserStore(db)
	categories := mongodb.NewCategoryStore(db)
	subCategories := mongodb.NewSubCategoryStore(db)
	brands := mongodb.NewBrandStore(db)
	suppliers := mongodb.NewSupplierStore(db)
	products := mongodb.NewProductStore(db)
	reviews := mongodb.NewReviewStore(db)
	coupons := mongodb.NewCouponStore(db)
	carts := mongodb.NewCartStore(db)
	taxes := mongodb.NewTaxStore(db)
	requests := mongodb.NewRequestProductStore(db)

	// Initialize mail transport
	smtpSender := email.NewSMTPSender(&email.SMTPConfig{
		Host:     cfg.Email.Host,
		Port:     int(cfg.Email.Port),
		Username: cfg.Email.Username,
		Password: cfg.Email.Password,
		From:     cfg.Email.From,
		FromName: cfg.Email.FromName,
	})
	mailer := email.NewService(smtpSender, cfg.Email.From, cfg.Email.FromName)

	// Initialize services
	tokens := auth.NewTokens(cfg.JWT.Secret, cfg.JWT.TTL)
	authService := service.NewAuthService(users, tokens, cfg.JWT.TTL, mailer, logger)
	userService := service.NewUserService(users)
	categoryService := service.NewCategoryService(categories)
	subCategoryService := service.NewSubCategoryService(subCategories, categories)
	brandService := service.NewBrandService(brands)
	supplierService := service.NewSupplierService(suppliers)
	productService := service.NewProductService(products, categories, subCategories, brands)
	reviewService := service.NewReviewService(reviews, products)
	couponService := service.NewCouponService(coupons)
	cartService := service.NewCartService(carts, products, coupons, users)
	taxService := service.NewTaxService(taxes)
	requestService := service.NewRequestProductService(requests)

	// Seed the initial admin account
	if cfg.Admin.Email != "" {
		if err := seedAdmin(ctx, users, cfg.Admin); err != nil {
			return fmt.Errorf("admin seed failed: %w", err)
		}
	}

	metrics := middleware.NewMetrics("souq")

	// Build the router with the global middleware chain
	r := router.New(
		middleware.RequestID,
		middleware.WithRequestLogger(logger),
		router.Recovery(logger),
		router.Timeout(30*time.Second),
		router.CORS(cfg.CORS.AllowedOrigins),
		metrics.Middleware,
		middleware.RateLimit(middleware.DefaultRateLimiterConfig()),
	)

	routes.Register(r, routes.Deps{
		Tokens:          tokens,
		Metrics:         metrics,
		Auth:            handler.NewAuthHandler(authService),
		Users:           handler.NewUserHandler(userService),
		Categories:      handler.NewCategoryHandler(categoryService),
		SubCategories:   handler.NewSubCategoryHandler(subCategoryService),
		Brands:          handler.NewBrandHandler(brandService),
		Suppliers:       handler.NewSupplierHandler(supplierService),
		Products:        handler.NewProductHandler(productService),
		Reviews:         handler.NewReviewHandler(reviewService),
		Coupons:         handler.NewCouponHandler(couponService),
		Carts:           handler.NewCartHandler(cartService),
		Tax:             handler.NewTaxHandler(taxService),
		RequestProducts: handler.NewRequestProductHandler(requestService),
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Serve until interrupted, then drain in-flight requests
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", "addr", addr, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-stop:
		logger.Info("Shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}

// seedAdmin creates the configured admin account unless it already exists.
func seedAdmin(ctx context.Context, users domain.UserStore, cfg internal.AdminConfig) error {
	existing, err := users.FindByEmail(ctx, cfg.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hash, err := auth.HashPassword(cfg.Password)
	if err != nil {
		return err
	}
	return users.Create(ctx, &domain.User{
		Name:         cfg.Name,
		Email:        cfg.Email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		Active:       true,
	})
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
