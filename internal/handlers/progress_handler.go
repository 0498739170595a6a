package handlers

import (
	"net/http"

	"mastery-service/internal/repository"
	"mastery-service/internal/service"

	"github.com/gin-gonic/gin"
)

type ProgressHandler struct {
	Service  *service.ProgressService
	Profiles *repository.ProfileRepository
}

func NewProgressHandler(s *service.ProgressService, profiles *repository.ProfileRepository) *ProgressHandler {
	return &ProgressHandler{Service: s, Profiles: profiles}
}

func (h *ProgressHandler) GetUserProgress(c *gin.Context) {
	userID := c.Param("userId")
	progress, err := h.Service.GetUserProgress(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch progress"})
		return
	}
	c.JSON(http.StatusOK, progress)
}

func (h *ProgressHandler) GetMasteryProfile(c *gin.Context) {
	userID := c.Param("userId")
	topicID := c.Param("topicId")

	profile, err := h.Profiles.Find(c.Request.Context(), userID, topicID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Mastery profile not found"})
		return
	}
	c.JSON(http.StatusOK, profile)
}
