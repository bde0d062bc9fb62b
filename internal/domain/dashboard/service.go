// Package dashboard computes cross-collection summaries by scanning the
// underlying collections. All operations are read-only and tolerate
// empty collections by returning zeroed aggregates.
package dashboard

import (
	"context"
	"sort"
	"time"

	"kontora/internal/core/types"
	"kontora/internal/domain/catalogs/client"
	"kontora/internal/domain/catalogs/supplier"
	"kontora/internal/domain/documents/contract"
	"kontora/internal/domain/documents/invoice"
	"kontora/internal/domain/documents/payment"
	"kontora/internal/domain/documents/purchaseorder"
	"kontora/internal/domain/documents/supplierpayment"
)

// RecentActivityLimit caps the merged activity feed.
const RecentActivityLimit = 10

// Activity is one entry in the recent activity feed.
type Activity struct {
	EntityType string    `json:"entityType"`
	EntityID   string    `json:"entityId"`
	Title      string    `json:"title"`
	Timestamp  time.Time `json:"timestamp"`
}

// Service computes dashboard summaries over the entity services.
type Service struct {
	clients   *client.Service
	suppliers *supplier.Service

	contracts        *contract.Service
	payments         *payment.Service
	invoices         *invoice.Service
	purchaseOrders   *purchaseorder.Service
	supplierPayments *supplierpayment.Service
}

// Config wires the collections the dashboards scan.
type Config struct {
	Clients   *client.Service
	Suppliers *supplier.Service

	Contracts        *contract.Service
	Payments         *payment.Service
	Invoices         *invoice.Service
	PurchaseOrders   *purchaseorder.Service
	SupplierPayments *supplierpayment.Service
}

// NewService creates a new dashboard service.
func NewService(cfg Config) *Service {
	return &Service{
		clients:          cfg.Clients,
		suppliers:        cfg.Suppliers,
		contracts:        cfg.Contracts,
		payments:         cfg.Payments,
		invoices:         cfg.Invoices,
		purchaseOrders:   cfg.PurchaseOrders,
		supplierPayments: cfg.SupplierPayments,
	}
}

// ClientDashboard is the client-side summary.
type ClientDashboard struct {
	TotalClients  int `json:"totalClients"`
	ActiveClients int `json:"activeClients"`

	TotalContracts  int `json:"totalContracts"`
	ActiveContracts int `json:"activeContracts"`

	TotalPayments    int         `json:"totalPayments"`
	TotalRevenue     types.Money `json:"totalRevenue"`
	CompletedRevenue types.Money `json:"completedRevenue"`

	RecentActivity []Activity `json:"recentActivity"`
}

// ClientDashboard scans clients, contracts and payments together.
func (s *Service) ClientDashboard(ctx context.Context) (*ClientDashboard, error) {
	clients, err := s.clients.All(ctx)
	if err != nil {
		return nil, err
	}
	contracts, err := s.contracts.All(ctx)
	if err != nil {
		return nil, err
	}
	payments, err := s.payments.All(ctx)
	if err != nil {
		return nil, err
	}

	d := &ClientDashboard{
		TotalClients:     len(clients),
		TotalContracts:   len(contracts),
		TotalPayments:    len(payments),
		TotalRevenue:     types.Zero(),
		CompletedRevenue: types.Zero(),
	}
	for _, c := range clients {
		if c.Status == client.StatusActive {
			d.ActiveClients++
		}
	}
	for _, c := range contracts {
		if c.Status == contract.StatusActive {
			d.ActiveContracts++
		}
	}
	for _, p := range payments {
		d.TotalRevenue = d.TotalRevenue.Add(p.Amount)
		if p.Status == payment.StatusCompleted {
			d.CompletedRevenue = d.CompletedRevenue.Add(p.Amount)
		}
	}

	feed := make([]Activity, 0)
	for _, c := range clients {
		feed = append(feed, Activity{"client", c.ID, c.Name, c.CreatedAt})
	}
	for _, c := range contracts {
		feed = append(feed, Activity{"contract", c.ID, c.Title, c.CreatedAt})
	}
	for _, p := range payments {
		feed = append(feed, Activity{"payment", p.ID, p.Reference, p.CreatedAt})
	}
	d.RecentActivity = recentActivity(feed)
	return d, nil
}

// SupplierDashboard is the supplier-side summary.
type SupplierDashboard struct {
	TotalSuppliers  int `json:"totalSuppliers"`
	ActiveSuppliers int `json:"activeSuppliers"`

	TotalPurchaseOrders int `json:"totalPurchaseOrders"`
	OpenPurchaseOrders  int `json:"openPurchaseOrders"`

	TotalInvoices   int         `json:"totalInvoices"`
	UnpaidInvoices  int         `json:"unpaidInvoices"`
	TotalPayable    types.Money `json:"totalPayable"`
	TotalPaidOut    types.Money `json:"totalPaidOut"`

	RecentActivity []Activity `json:"recentActivity"`
}

// SupplierDashboard scans suppliers, purchase orders, invoices and
// supplier payments together.
func (s *Service) SupplierDashboard(ctx context.Context) (*SupplierDashboard, error) {
	suppliers, err := s.suppliers.All(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.purchaseOrders.All(ctx)
	if err != nil {
		return nil, err
	}
	invoices, err := s.invoices.All(ctx)
	if err != nil {
		return nil, err
	}
	payouts, err := s.supplierPayments.All(ctx)
	if err != nil {
		return nil, err
	}

	d := &SupplierDashboard{
		TotalSuppliers:      len(suppliers),
		TotalPurchaseOrders: len(orders),
		TotalInvoices:       len(invoices),
		TotalPayable:        types.Zero(),
		TotalPaidOut:        types.Zero(),
	}
	for _, sup := range suppliers {
		if sup.Status == supplier.StatusActive {
			d.ActiveSuppliers++
		}
	}
	for _, po := range orders {
		if po.Status == purchaseorder.StatusDraft || po.Status == purchaseorder.StatusSent {
			d.OpenPurchaseOrders++
		}
	}
	for _, inv := range invoices {
		if inv.Status == invoice.StatusPending || inv.Status == invoice.StatusOverdue {
			d.UnpaidInvoices++
			d.TotalPayable = d.TotalPayable.Add(inv.Amount)
		}
	}
	for _, p := range payouts {
		if p.Status == supplierpayment.StatusCompleted {
			d.TotalPaidOut = d.TotalPaidOut.Add(p.Amount)
		}
	}

	feed := make([]Activity, 0)
	for _, sup := range suppliers {
		feed = append(feed, Activity{"supplier", sup.ID, sup.Name, sup.CreatedAt})
	}
	for _, po := range orders {
		feed = append(feed, Activity{"purchase_order", po.ID, po.Number, po.CreatedAt})
	}
	for _, inv := range invoices {
		feed = append(feed, Activity{"invoice", inv.ID, inv.Number, inv.CreatedAt})
	}
	for _, p := range payouts {
		feed = append(feed, Activity{"supplier_payment", p.ID, p.Reference, p.CreatedAt})
	}
	d.RecentActivity = recentActivity(feed)
	return d, nil
}

// recentActivity sorts the merged feed newest first and truncates it.
func recentActivity(feed []Activity) []Activity {
	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].Timestamp.After(feed[j].Timestamp)
	})
	if len(feed) > RecentActivityLimit {
		feed = feed[:RecentActivityLimit]
	}
	return feed
}
