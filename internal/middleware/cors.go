package middleware

import "github.com/gin-gonic/gin"

// CORS headers sent on every response
const (
	AllowOrigin  = "*"
	AllowHeaders = "authorization, x-client-info, apikey, content-type"
	AllowMethods = "POST, GET, OPTIONS"
)

// CORS sets permissive cross-origin headers on every response. Preflight
// requests are answered by the routes that register OPTIONS.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", AllowOrigin)
		c.Header("Access-Control-Allow-Headers", AllowHeaders)
		c.Header("Access-Control-Allow-Methods", AllowMethods)
		c.Next()
	}
}
