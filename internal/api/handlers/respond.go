package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Eloy96/impresiones-prueba/pkg/errors"
)

// respondError maps the storefront error kinds to HTTP statuses
func respondError(c *gin.Context, err error) {
	switch e := err.(type) {
	case *errors.ErrValidation:
		body := gin.H{"error": "validation failed", "details": e.Error()}
		if len(e.Fields) > 0 {
			body["fields"] = e.Fields
		}
		c.JSON(http.StatusUnprocessableEntity, body)
	case *errors.ErrNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": e.Error()})
	case *errors.ErrNotReady:
		c.JSON(http.StatusConflict, gin.H{"error": e.Error()})
	case *errors.ErrInvalidStateTransition:
		c.JSON(http.StatusConflict, gin.H{"error": e.Error()})
	case *errors.ErrFileTooLarge:
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": e.Error()})
	case *errors.ErrUpload, *errors.ErrPricing, *errors.ErrOrderSubmission:
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error", "details": err.Error()})
	}
}
