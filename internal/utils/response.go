// internal/utils/response.go
package utils

import (
	"github.com/gin-gonic/gin"
)

// The admin frontend matches on two envelope families: product and
// hero-slide endpoints wrap everything in {success: ...}, while category
// endpoints return bare payloads and {error, details} failures. Both are
// kept as-is; collapsing them would break the consumer.

func SuccessJSON(c *gin.Context, status int, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

func ErrorJSON(c *gin.Context, status int, message string, details interface{}) {
	body := gin.H{"success": false, "error": message}
	if details != nil {
		body["details"] = details
	}
	c.JSON(status, body)
}

func BareErrorJSON(c *gin.Context, status int, message string, details interface{}) {
	body := gin.H{"error": message}
	if details != nil {
		body["details"] = details
	}
	c.JSON(status, body)
}
