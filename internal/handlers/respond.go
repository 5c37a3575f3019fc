package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saralbooks/bank_recon_app/internal/apperrors"
	"github.com/saralbooks/bank_recon_app/internal/dto"
)

// respondError maps service errors to HTTP statuses. The typed
// duplicate-reference error gets its own 409 payload so the client can
// show the conflicting transaction.
func respondError(c *gin.Context, err error, fallback string) {
	var dup *apperrors.DuplicateReferenceError
	switch {
	case errors.As(err, &dup):
		c.JSON(http.StatusConflict, dto.ReferenceConflictResponse{
			Error:    dup.Error(),
			Conflict: dup.Conflict,
		})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "resource not found"})
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrLookupInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "record store unavailable, retry shortly"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
