package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// PrivateCache sets a private Cache-Control header. Used on authenticated
// responses that change rarely, like question payloads, so browsers can
// reuse them without a shared cache ever storing them.
func PrivateCache(maxAgeSeconds int) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", fmt.Sprintf("private, max-age=%d", maxAgeSeconds))
		c.Next()
	}
}
