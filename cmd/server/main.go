// Package main is the entry point for the loomledger API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"loomledger/internal/domain/audit"
	"loomledger/internal/domain/auth"
	"loomledger/internal/domain/catalogs/product"
	"loomledger/internal/domain/catalogs/supervisor"
	"loomledger/internal/domain/catalogs/weaver"
	"loomledger/internal/domain/documents/receipt"
	"loomledger/internal/domain/reports"
	v1 "loomledger/internal/infrastructure/http/v1"
	"loomledger/internal/infrastructure/numerator"
	"loomledger/internal/infrastructure/storage/images"
	"loomledger/internal/infrastructure/storage/postgres"
	"loomledger/internal/infrastructure/storage/postgres/auth_repo"
	"loomledger/internal/infrastructure/storage/postgres/catalog_repo"
	"loomledger/internal/infrastructure/storage/postgres/document_repo"
	"loomledger/pkg/logger"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting loomledger server")

	// --- Database ---
	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(mustEnv("DATABASE_URL")))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalw("failed to ping database", "error", err)
	}
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)
	numeratorService := numerator.New(pool)

	// --- Catalog services ---
	productService := product.NewService(catalog_repo.NewProductRepo(txManager), txManager, numeratorService)
	supervisorService := supervisor.NewService(catalog_repo.NewSupervisorRepo(txManager), txManager)
	weaverService := weaver.NewService(catalog_repo.NewWeaverRepo(txManager), txManager)

	// --- Receipt service with audit hooks ---
	auditService, err := postgres.NewAuditService(txManager)
	if err != nil {
		log.Fatalw("failed to create audit service", "error", err)
	}

	receiptService := receipt.NewService(document_repo.NewReceiptRepo(txManager), numeratorService, txManager)
	registerReceiptAuditHooks(receiptService, auditService)

	// --- Reports ---
	reportService := reports.NewService(receiptService, productService)

	// --- Auth ---
	jwtSecret := getEnv("JWT_SECRET", "change-me-in-production")
	jwtService := auth.NewJWTService(auth.DefaultJWTConfig(jwtSecret))

	authService := auth.NewService(
		auth_repo.NewUserRepo(txManager),
		auth_repo.NewRoleRepo(txManager),
		auth_repo.NewPermissionRepo(txManager),
		auth_repo.NewTokenRepo(txManager),
		supervisorService,
		txManager,
		jwtService,
		auth.DefaultServiceConfig(),
	)

	// --- Image store (optional) ---
	var imageStore *images.Store
	if bucket := os.Getenv("GCS_BUCKET"); bucket != "" {
		imageStore, err = images.NewStore(ctx, images.Config{
			Bucket:          bucket,
			CredentialsJSON: os.Getenv("GCS_CREDENTIALS_JSON"),
			PublicBaseURL:   os.Getenv("GCS_PUBLIC_BASE_URL"),
		})
		if err != nil {
			log.Fatalw("failed to create image store", "error", err)
		}
		log.Infow("image store initialized", "bucket", bucket)
	} else {
		log.Warn("GCS_BUCKET not set, image uploads disabled")
	}

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:         pool,
		Logger:       log,
		JWTValidator: jwtService,
		AuthService:  authService,
		Products:     productService,
		Supervisors:  supervisorService,
		Weavers:      weaverService,
		Receipts:     receiptService,
		Reports:      reportService,
		Images:       imageStore,
	})

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

// registerReceiptAuditHooks stamps CreatedBy/UpdatedBy on receipts and
// records deletions in the audit trail with the full document payload.
func registerReceiptAuditHooks(svc *receipt.Service, auditService *postgres.AuditService) {
	svc.Hooks().OnBeforeCreate(func(ctx context.Context, doc *receipt.Receipt) error {
		audit.EnrichCreatedBy(ctx, &doc.CreatedBy, &doc.UpdatedBy)
		return nil
	})
	svc.Hooks().OnBeforeUpdate(func(ctx context.Context, doc *receipt.Receipt) error {
		audit.EnrichUpdatedBy(ctx, &doc.UpdatedBy)
		return nil
	})
	svc.Hooks().OnBeforeDelete(func(ctx context.Context, doc *receipt.Receipt) error {
		return auditService.LogDeletion(ctx, "receipt", doc.ID, doc)
	})
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}
