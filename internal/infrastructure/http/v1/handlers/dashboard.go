package handlers

import (
	"github.com/gin-gonic/gin"

	"kontora/internal/domain/dashboard"
)

// DashboardHandler exposes the cross-collection summaries.
type DashboardHandler struct {
	*BaseHandler
	service *dashboard.Service
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(base *BaseHandler, service *dashboard.Service) *DashboardHandler {
	return &DashboardHandler{BaseHandler: base, service: service}
}

// Clients handles GET /dashboard/clients.
func (h *DashboardHandler) Clients(c *gin.Context) {
	d, err := h.service.ClientDashboard(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, d)
}

// Suppliers handles GET /dashboard/suppliers.
func (h *DashboardHandler) Suppliers(c *gin.Context) {
	d, err := h.service.SupplierDashboard(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, d)
}
