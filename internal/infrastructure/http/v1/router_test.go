package v1_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kontora/internal/backup"
	"kontora/internal/core/apperror"
	"kontora/internal/core/id"
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
	"kontora/pkg/logger"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	store := kv.NewMemory()
	rel := relations.NewManager(store)
	opts := domain.Options{IDs: &id.Sequence{Prefix: "rec"}}

	log, err := logger.New(logger.Config{Level: "error"})
	require.NoError(t, err)

	clients := client.NewService(store, rel, opts)
	suppliers := supplier.NewService(store, rel, opts)
	users := user.NewService(store, opts)
	contracts := contract.NewService(store, opts)
	payments := payment.NewService(store, opts)
	invoices := invoice.NewService(store, opts)
	orders := purchaseorder.NewService(store, opts)
	payouts := supplierpayment.NewService(store, opts)

	return v1.NewRouter(v1.RouterConfig{
		Store:      store,
		Logger:     log,
		AppVersion: "test",

		Clients:           clients,
		Suppliers:         suppliers,
		Products:          product.NewService(store, opts),
		Users:             users,
		UserGroups:        usergroup.NewService(store, users, opts),
		ContractTemplates: contracttemplate.NewService(store, opts),

		Bills:            bill.NewService(store, opts),
		Invoices:         invoices,
		Transactions:     transaction.NewService(store, opts),
		Contracts:        contracts,
		Payments:         payments,
		PurchaseOrders:   orders,
		SupplierPayments: payouts,
		Subscriptions:    subscription.NewService(store, opts),

		UsageMetrics:    usagemetrics.NewService(store, opts),
		SupplierMetrics: suppliermetrics.NewService(store, opts),
		Notifications:   notification.NewService(store, opts),

		Dashboard: dashboard.NewService(dashboard.Config{
			Clients:          clients,
			Suppliers:        suppliers,
			Contracts:        contracts,
			Payments:         payments,
			Invoices:         invoices,
			PurchaseOrders:   orders,
			SupplierPayments: payouts,
		}),
		Backup: backup.NewService(backup.Config{
			Store:      store,
			ExportedBy: "test",
			AppVersion: "test",
		}),
	})
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func TestCreateRejectsNullBody(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/clients", "null")

	require.Equal(t, http.StatusBadRequest, w.Code, "body: %s", w.Body.String())

	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, apperror.CodeValidation, body.Code)
	assert.NotEmpty(t, body.Message)
}

func TestCreateRejectsEmptyRecord(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/bills", "{}")

	require.Equal(t, http.StatusBadRequest, w.Code)

	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, apperror.CodeValidation, body.Code)
}

func TestCreateAndGetClient(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/clients",
		`{"name":"Acme","status":"active"}`)
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())

	var created client.Client
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)

	w = doJSON(t, router, http.MethodGet, "/api/v1/clients/"+created.ID, "")
	require.Equal(t, http.StatusOK, w.Code)

	var got client.Client
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Acme", got.Name)
}
