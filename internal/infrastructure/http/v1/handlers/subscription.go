package handlers

import (
	"github.com/gin-gonic/gin"

	"kontora/internal/domain/documents/subscription"
)

// SubscriptionHandler extends the generic subscription routes with
// cancellation.
type SubscriptionHandler struct {
	*RecordHandler[*subscription.Subscription]
	service *subscription.Service
}

// NewSubscriptionHandler creates a new subscription handler.
func NewSubscriptionHandler(base *BaseHandler, service *subscription.Service) *SubscriptionHandler {
	return &SubscriptionHandler{
		RecordHandler: NewRecordHandler[*subscription.Subscription](base, service, "subscription"),
		service:       service,
	}
}

// Cancel handles POST /subscriptions/:id/cancel.
func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	sub, err := h.service.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, sub)
}
