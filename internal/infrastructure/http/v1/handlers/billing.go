package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"kontora/internal/domain/documents/bill"
	"kontora/internal/domain/documents/invoice"
	"kontora/internal/domain/documents/purchaseorder"
	"kontora/internal/domain/documents/transaction"
	"kontora/internal/infrastructure/http/v1/dto"
)

// MarkPaidRequest carries the optional payment details for the paid
// transition. A missing date defaults to the service clock.
type MarkPaidRequest struct {
	Method   string     `json:"method"`
	PaidDate *time.Time `json:"paidDate"`
}

// BillHandler extends the generic bill routes with payment marking.
type BillHandler struct {
	*RecordHandler[*bill.Bill]
	service *bill.Service
}

// NewBillHandler creates a new bill handler.
func NewBillHandler(base *BaseHandler, service *bill.Service) *BillHandler {
	return &BillHandler{
		RecordHandler: NewRecordHandler[*bill.Bill](base, service, "bill"),
		service:       service,
	}
}

// MarkAsPaid handles POST /bills/:id/pay.
func (h *BillHandler) MarkAsPaid(c *gin.Context) {
	var req MarkPaidRequest
	if !h.BindJSON(c, &req) {
		return
	}

	b, err := h.service.MarkAsPaid(c.Request.Context(), c.Param("id"), req.Method, req.PaidDate)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, b)
}

// InvoiceHandler extends the generic invoice routes with numbering and
// payment marking.
type InvoiceHandler struct {
	*RecordHandler[*invoice.Invoice]
	service *invoice.Service
}

// NewInvoiceHandler creates a new invoice handler.
func NewInvoiceHandler(base *BaseHandler, service *invoice.Service) *InvoiceHandler {
	return &InvoiceHandler{
		RecordHandler: NewRecordHandler[*invoice.Invoice](base, service, "invoice"),
		service:       service,
	}
}

// NextNumber handles GET /invoices/next-number.
func (h *InvoiceHandler) NextNumber(c *gin.Context) {
	number, err := h.service.NextNumber(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NumberResponse{Number: number})
}

// MarkAsPaid handles POST /invoices/:id/pay.
func (h *InvoiceHandler) MarkAsPaid(c *gin.Context) {
	var req MarkPaidRequest
	if !h.BindJSON(c, &req) {
		return
	}

	inv, err := h.service.MarkAsPaid(c.Request.Context(), c.Param("id"), req.Method, req.PaidDate)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, inv)
}

// TransactionHandler extends the generic transaction routes with
// numbering.
type TransactionHandler struct {
	*RecordHandler[*transaction.Transaction]
	service *transaction.Service
}

// NewTransactionHandler creates a new transaction handler.
func NewTransactionHandler(base *BaseHandler, service *transaction.Service) *TransactionHandler {
	return &TransactionHandler{
		RecordHandler: NewRecordHandler[*transaction.Transaction](base, service, "transaction"),
		service:       service,
	}
}

// NextNumber handles GET /transactions/next-number.
func (h *TransactionHandler) NextNumber(c *gin.Context) {
	number, err := h.service.NextNumber(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NumberResponse{Number: number})
}

// PurchaseOrderHandler extends the generic purchase order routes with
// numbering.
type PurchaseOrderHandler struct {
	*RecordHandler[*purchaseorder.PurchaseOrder]
	service *purchaseorder.Service
}

// NewPurchaseOrderHandler creates a new purchase order handler.
func NewPurchaseOrderHandler(base *BaseHandler, service *purchaseorder.Service) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{
		RecordHandler: NewRecordHandler[*purchaseorder.PurchaseOrder](base, service, "purchase order"),
		service:       service,
	}
}

// NextNumber handles GET /purchase-orders/next-number.
func (h *PurchaseOrderHandler) NextNumber(c *gin.Context) {
	number, err := h.service.NextNumber(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NumberResponse{Number: number})
}
