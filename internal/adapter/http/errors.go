package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xuanmo666/order-management-system/internal/entity"
)

// writeError maps the two domain error kinds onto HTTP statuses:
// ValidationError is the caller's input to fix (400), BusinessError is a
// domain rule the current state forbids (422). Anything else is a 500 with
// the detail kept out of the response.
func writeError(c *gin.Context, err error) {
	switch {
	case entity.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": err.Error()})
	case entity.IsBusiness(err):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "business_error", "message": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
	}
}
