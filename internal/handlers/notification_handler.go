package handlers

import (
	"net/http"

	"mastery-service/internal/notifier"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	Dispatcher *notifier.Dispatcher
}

func NewNotificationHandler(d *notifier.Dispatcher) *NotificationHandler {
	return &NotificationHandler{Dispatcher: d}
}

// RunNotifications triggers one sweep. Invoking it repeatedly within the same
// day cannot double-send: the dispatcher's dedup records gate every row.
func (h *NotificationHandler) RunNotifications(c *gin.Context) {
	report, err := h.Dispatcher.RunBatch(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notifications processed", "report": report})
}
