package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// All error responses share one body: {"message": ..., "errors": [...]?}.
// Validation failures carry field-level detail in errors.

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

func respondValidationError(c *gin.Context, message string, detail error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"message": message,
		"errors":  []string{detail.Error()},
	})
}
