package webhook

import (
	"github.com/gin-gonic/gin"
)

// SignatureValidation returns middleware for validating the platform's
// webhook signature header (X-Hub-Signature-256).
//
// It is currently a documented no-op and MUST be implemented before this
// service is exposed to untrusted traffic.
// TODO: compute HMAC-SHA256 of the raw body with the app secret and
// compare against the header value.
func SignatureValidation() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
	}
}
