package handlers

import (
	"errors"
	"net/http"

	"mastery-service/internal/grading"
	"mastery-service/internal/models"
	"mastery-service/internal/service"

	"github.com/gin-gonic/gin"
)

type SubmissionHandler struct {
	Service *service.SubmissionService
}

func NewSubmissionHandler(s *service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{Service: s}
}

// SubmitQuiz grades a submission and returns the score summary. Invalid input
// is rejected before anything is written; persistence failures abort the whole
// submission with nothing partially committed.
func (h *SubmissionHandler) SubmitQuiz(c *gin.Context) {
	var submission models.QuizSubmission
	if err := c.ShouldBindJSON(&submission); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	submission.UserID = c.GetHeader("X-User-ID")
	if submission.UserID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required", "code": "MISSING_USER_ID"})
		return
	}

	result, err := h.Service.Submit(c.Request.Context(), submission)
	if err != nil {
		if errors.Is(err, grading.ErrInvalidSubmission) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "INVALID_SUBMISSION"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Quiz submitted successfully", "result": result})
}
