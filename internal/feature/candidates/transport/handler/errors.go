package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"candidate_backend/internal/feature/candidates/usecase"
	"candidate_backend/internal/shared/validation"
)

// respondError maps a use case error to its status code and body.
func respondError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, usecase.ErrCandidateNotFound),
		errors.Is(err, usecase.ErrSkillNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrCandidateEmailInUse),
		errors.Is(err, usecase.ErrCandidatePhoneInUse),
		errors.Is(err, usecase.ErrCandidateConflict):
		slog.Warn(op+" failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrInvalidDateRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		slog.Error(op+" failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func respondInvalid(c *gin.Context, op string, err error) {
	slog.Warn(op+" validation failed", "error", err, "remote_addr", c.ClientIP())
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": validation.Describe(err)})
}
