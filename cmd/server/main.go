// Package main is the entry point for the kontora API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"kontora/internal/backup"
	"kontora/internal/domain"
	"kontora/internal/domain/catalogs/client"
	"kontora/internal/domain/catalogs/contracttemplate"
	"kontora/internal/domain/catalogs/product"
	"kontora/internal/domain/catalogs/supplier"
	"kontora/internal/domain/catalogs/user"
	"kontora/internal/domain/catalogs/usergroup"
	"kontora/internal/domain/dashboard"
	"kontora/internal/domain/documents/bill"
	"kontora/internal/domain/documents/contract"
	"kontora/internal/domain/documents/invoice"
	"kontora/internal/domain/documents/payment"
	"kontora/internal/domain/documents/purchaseorder"
	"kontora/internal/domain/documents/subscription"
	"kontora/internal/domain/documents/supplierpayment"
	"kontora/internal/domain/documents/transaction"
	"kontora/internal/domain/registers/notification"
	"kontora/internal/domain/registers/suppliermetrics"
	"kontora/internal/domain/registers/usagemetrics"
	"kontora/internal/domain/relations"
	v1 "kontora/internal/infrastructure/http/v1"
	"kontora/internal/storage/kv"
	kvpostgres "kontora/internal/storage/kv/postgres"
	kvsqlite "kontora/internal/storage/kv/sqlite"
	"kontora/pkg/logger"
)

const appVersion = "0.1.0"

func main() {
	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting kontora server")

	store, cleanup, err := openStore(ctx, log)
	if err != nil {
		log.Fatalw("failed to open store", "error", err)
	}
	if cleanup != nil {
		defer cleanup()
	}

	opts := domain.Options{}
	rel := relations.NewManager(store)

	// Catalogs
	clients := client.NewService(store, rel, opts)
	suppliers := supplier.NewService(store, rel, opts)
	products := product.NewService(store, opts)
	users := user.NewService(store, opts)
	groups := usergroup.NewService(store, users, opts)
	templates := contracttemplate.NewService(store, opts)

	// Documents
	bills := bill.NewService(store, opts)
	invoices := invoice.NewService(store, opts)
	transactions := transaction.NewService(store, opts)
	contracts := contract.NewService(store, opts)
	payments := payment.NewService(store, opts)
	orders := purchaseorder.NewService(store, opts)
	payouts := supplierpayment.NewService(store, opts)
	subscriptions := subscription.NewService(store, opts)

	// Registers
	usage := usagemetrics.NewService(store, opts)
	supplierMetrics := suppliermetrics.NewService(store, opts)
	notifications := notification.NewService(store, opts)

	dashboards := dashboard.NewService(dashboard.Config{
		Clients:          clients,
		Suppliers:        suppliers,
		Contracts:        contracts,
		Payments:         payments,
		Invoices:         invoices,
		PurchaseOrders:   orders,
		SupplierPayments: payouts,
	})

	backups := backup.NewService(backup.Config{
		Store:      store,
		ExportedBy: getEnv("BACKUP_EXPORTED_BY", "kontora"),
		AppVersion: appVersion,
	})

	router := v1.NewRouter(v1.RouterConfig{
		Store:      store,
		Logger:     log,
		AppVersion: appVersion,

		Clients:           clients,
		Suppliers:         suppliers,
		Products:          products,
		Users:             users,
		UserGroups:        groups,
		ContractTemplates: templates,

		Bills:            bills,
		Invoices:         invoices,
		Transactions:     transactions,
		Contracts:        contracts,
		Payments:         payments,
		PurchaseOrders:   orders,
		SupplierPayments: payouts,
		Subscriptions:    subscriptions,

		UsageMetrics:    usage,
		SupplierMetrics: supplierMetrics,
		Notifications:   notifications,

		Dashboard: dashboards,
		Backup:    backups,
	})

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

// openStore selects the store driver from STORE_DRIVER:
// memory (default), sqlite or postgres.
func openStore(ctx context.Context, log *logger.Logger) (kv.Store, func(), error) {
	switch driver := getEnv("STORE_DRIVER", "memory"); driver {
	case "memory":
		log.Info("using in-memory store")
		return kv.NewMemory(), nil, nil

	case "sqlite":
		path := getEnv("SQLITE_PATH", "kontora.db")
		store, err := kvsqlite.Open(ctx, path)
		if err != nil {
			return nil, nil, err
		}
		log.Infow("sqlite store opened", "path", path)
		return store, func() { _ = store.Close() }, nil

	case "postgres":
		dsn := mustEnv("DATABASE_URL")
		pool, err := pgxpool.New(ctx, dsn)
		if err != nil {
			return nil, nil, err
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		store, err := kvpostgres.New(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		log.Info("postgres store opened")
		return store, pool.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", driver)
	}
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
