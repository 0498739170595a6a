package handlers

import (
	"net/http"

	"mastery-service/internal/service"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	Service *service.SettingsService
}

func NewSettingsHandler(s *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{Service: s}
}

func (h *SettingsHandler) GetNotificationSettings(c *gin.Context) {
	userID := c.Param("userId")
	view, err := h.Service.GetSettings(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notification settings"})
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *SettingsHandler) UpdateNotificationSettings(c *gin.Context) {
	userID := c.Param("userId")

	var update service.NotificationSettingsUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing JSON payload"})
		return
	}

	if err := h.Service.UpdateSettings(c.Request.Context(), userID, update); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification settings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification settings updated successfully"})
}
