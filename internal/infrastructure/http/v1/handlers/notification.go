package handlers

import (
	"github.com/gin-gonic/gin"

	"kontora/internal/domain/registers/notification"
)

// NotificationHandler extends the generic notification routes with the
// read transition.
type NotificationHandler struct {
	*RecordHandler[*notification.Notification]
	service *notification.Service
}

// NewNotificationHandler creates a new notification handler.
func NewNotificationHandler(base *BaseHandler, service *notification.Service) *NotificationHandler {
	return &NotificationHandler{
		RecordHandler: NewRecordHandler[*notification.Notification](base, service, "notification"),
		service:       service,
	}
}

// MarkRead handles POST /notifications/:id/read.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	n, err := h.service.MarkRead(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, n)
}
