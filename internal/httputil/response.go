// Package httputil holds response helpers shared by handlers and middleware.
package httputil

import "github.com/gin-gonic/gin"

// RespondError writes the standard error envelope {code, message,
// request_id} and aborts the request. The request ID is included when the
// request-ID middleware has run.
func RespondError(c *gin.Context, status int, code, message string) {
	resp := gin.H{
		"code":    code,
		"message": message,
	}

	if rid, ok := c.Get("request_id"); ok {
		if s, ok := rid.(string); ok && s != "" {
			resp["request_id"] = s
		}
	}

	c.AbortWithStatusJSON(status, resp)
}
