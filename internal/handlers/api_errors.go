package handlers

import (
	"errors"
	"log"
	"net/http"

	"solitaire-go/internal/models"

	"github.com/gin-gonic/gin"
)

func writeAPIError(c *gin.Context, err error) {
	if err == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	if models.IsNotFound(err) {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "table not found"})
		return
	}

	// Typed validation errors only; raw error text is never echoed.
	switch {
	case errors.Is(err, models.ErrInvalidJSON):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	case errors.Is(err, models.ErrInvalidCoordinates):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid coordinates"})
		return
	case errors.Is(err, models.ErrUnknownEventType):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "unknown event type"})
		return
	case errors.Is(err, models.ErrUnknownGameType):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "unknown game type"})
		return
	case errors.Is(err, models.ErrInvalidRules):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid rules"})
		return
	case errors.Is(err, models.ErrTooManyTables):
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "too many tables"})
		return
	}

	log.Printf("internal error: %v", err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

// wsErrorMessage is the client-safe text for err on the websocket.
func wsErrorMessage(err error) string {
	for _, known := range []error{
		models.ErrTableNotFound,
		models.ErrInvalidJSON,
		models.ErrInvalidCoordinates,
		models.ErrUnknownEventType,
	} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return "internal error"
}
