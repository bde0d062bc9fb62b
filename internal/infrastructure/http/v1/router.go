// Package v1 provides HTTP API version 1.
package v1

import (
	"context"

	"github.com/gin-gonic/gin"

	"kontora/internal/backup"
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
	"kontora/internal/infrastructure/http/v1/handlers"
	"kontora/internal/infrastructure/http/v1/middleware"
	"kontora/internal/storage/kv"
	"kontora/pkg/logger"
)

// RouterConfig holds the services the API exposes.
type RouterConfig struct {
	Store  kv.Store
	Logger *logger.Logger

	AppVersion string

	Clients           *client.Service
	Suppliers         *supplier.Service
	Products          *product.Service
	Users             *user.Service
	UserGroups        *usergroup.Service
	ContractTemplates *contracttemplate.Service

	Bills            *bill.Service
	Invoices         *invoice.Service
	Transactions     *transaction.Service
	Contracts        *contract.Service
	Payments         *payment.Service
	PurchaseOrders   *purchaseorder.Service
	SupplierPayments *supplierpayment.Service
	Subscriptions    *subscription.Service

	UsageMetrics    *usagemetrics.Service
	SupplierMetrics *suppliermetrics.Service
	Notifications   *notification.Service

	Dashboard *dashboard.Service
	Backup    *backup.Service
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	base := handlers.NewBaseHandler()

	healthHandler := handlers.NewHealthHandler(cfg.Store, cfg.AppVersion)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	api := router.Group("/api/v1")
	{
		registerCatalogRoutes(api, base, cfg)
		registerDocumentRoutes(api, base, cfg)
		registerRegisterRoutes(api, base, cfg)
		registerDashboardRoutes(api, base, cfg)
		registerBackupRoutes(api, base, cfg)
	}

	return router
}

func registerCatalogRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	clients := rg.Group("/clients")
	h := handlers.NewRecordHandler[*client.Client](base, cfg.Clients, "client")
	h.Register(clients)
	clients.GET("/stats", handlers.Aggregate(base, func(ctx context.Context) (any, error) {
		return cfg.Clients.Stats(ctx)
	}))

	suppliers := rg.Group("/suppliers")
	sh := handlers.NewRecordHandler[*supplier.Supplier](base, cfg.Suppliers, "supplier")
	sh.Register(suppliers)
	suppliers.GET("/stats", handlers.Aggregate(base, func(ctx context.Context) (any, error) {
		return cfg.Suppliers.Stats(ctx)
	}))

	products := rg.Group("/products")
	ph := handlers.NewRecordHandler[*product.Product](base, cfg.Products, "product")
	ph.Register(products)
	products.GET("/stats", handlers.Aggregate(base, func(ctx context.Context) (any, error) {
		return cfg.Products.Stats(ctx)
	}))

	users := rg.Group("/users")
	handlers.NewRecordHandler[*user.User](base, cfg.Users, "user").Register(users)

	groups := rg.Group("/user-groups")
	gh := handlers.NewGroupHandler(base, cfg.UserGroups)
	gh.Register(groups)
	groups.GET("/:id/members", gh.Members)
	groups.PUT("/:id/members/:userId", gh.AddMember)
	groups.DELETE("/:id/members/:userId", gh.RemoveMember)
	groups.POST("/:id/recount", gh.Recount)

	templates := rg.Group("/contract-templates")
	handlers.NewRecordHandler[*contracttemplate.ContractTemplate](base, cfg.ContractTemplates, "contract template").Register(templates)
}

func registerDocumentRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	bills := rg.Group("/bills")
	bh := handlers.NewBillHandler(base, cfg.Bills)
	bh.Register(bills)
	bills.POST("/:id/pay", bh.MarkAsPaid)
	bills.GET("/stats", handlers.Aggregate(base, func(ctx context.Context) (any, error) {
		return cfg.Bills.Stats(ctx)
	}))

	invoices := rg.Group("/invoices")
	ih := handlers.NewInvoiceHandler(base, cfg.Invoices)
	ih.Register(invoices)
	invoices.POST("/:id/pay", ih.MarkAsPaid)
	invoices.GET("/next-number", ih.NextNumber)
	invoices.GET("/stats", handlers.Aggregate(base, func(ctx context.Context) (any, error) {
		return cfg.Invoices.Stats(ctx)
	}))

	transactions := rg.Group("/transactions")
	th := handlers.NewTransactionHandler(base, cfg.Transactions)
	th.Register(transactions)
	transactions.GET("/next-number", th.NextNumber)
	transactions.GET("/stats", handlers.Aggregate(base, func(ctx context.Context) (any, error) {
		return cfg.Transactions.Stats(ctx)
	}))

	contracts := rg.Group("/contracts")
	handlers.NewRecordHandler[*contract.Contract](base, cfg.Contracts, "contract").Register(contracts)

	payments := rg.Group("/payments")
	handlers.NewRecordHandler[*payment.Payment](base, cfg.Payments, "payment").Register(payments)

	orders := rg.Group("/purchase-orders")
	poh := handlers.NewPurchaseOrderHandler(base, cfg.PurchaseOrders)
	poh.Register(orders)
	orders.GET("/next-number", poh.NextNumber)
	orders.GET("/stats", handlers.Aggregate(base, func(ctx context.Context) (any, error) {
		return cfg.PurchaseOrders.Stats(ctx)
	}))

	payouts := rg.Group("/supplier-payments")
	handlers.NewRecordHandler[*supplierpayment.SupplierPayment](base, cfg.SupplierPayments, "supplier payment").Register(payouts)

	subscriptions := rg.Group("/subscriptions")
	subh := handlers.NewSubscriptionHandler(base, cfg.Subscriptions)
	subh.Register(subscriptions)
	subscriptions.POST("/:id/cancel", subh.Cancel)
}

func registerRegisterRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	usage := rg.Group("/usage-metrics")
	handlers.NewRecordHandler[*usagemetrics.Metric](base, cfg.UsageMetrics, "usage metric").Register(usage)

	supplierMetrics := rg.Group("/supplier-metrics")
	handlers.NewRecordHandler[*suppliermetrics.Metric](base, cfg.SupplierMetrics, "supplier metric").Register(supplierMetrics)

	notifications := rg.Group("/notifications")
	nh := handlers.NewNotificationHandler(base, cfg.Notifications)
	nh.Register(notifications)
	notifications.POST("/:id/read", nh.MarkRead)
}

func registerDashboardRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	dh := handlers.NewDashboardHandler(base, cfg.Dashboard)
	dash := rg.Group("/dashboard")
	{
		dash.GET("/clients", dh.Clients)
		dash.GET("/suppliers", dh.Suppliers)
	}
}

func registerBackupRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	bh := handlers.NewBackupHandler(base, cfg.Backup)
	b := rg.Group("/backup")
	{
		b.GET("/export", bh.Export)
		b.POST("/import", bh.Import)
		b.GET("/stats", bh.Stats)
	}
}
