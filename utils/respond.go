// utils/respond.go
package utils

import "github.com/gin-gonic/gin"

func RespondWithError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"message": message})
}

// RespondWithValidationErrors returns every violated field rule so the
// caller can correct the whole request in one pass.
func RespondWithValidationErrors(c *gin.Context, errs []string) {
	c.JSON(400, gin.H{
		"message": "Validation error",
		"errors":  errs,
	})
}
