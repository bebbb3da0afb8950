package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MaxBodyBytes caps request bodies; base64 images get large.
const MaxBodyBytes int64 = 50 << 20

// Frontend origins allowed to call the API. Deliberately a fixed list rather
// than configuration.
var allowedOrigins = map[string]bool{
	"http://localhost:3000":      true,
	"http://localhost:5173":      true,
	"https://wonderlens.app":     true,
	"https://www.wonderlens.app": true,
}

// CORS answers preflights and marks responses for the allow-listed frontend
// origins only.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		if allowedOrigins[origin] {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
			c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type, Accept")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// BodySizeLimit rejects bodies larger than max with 413 instead of letting
// handlers read them to the end.
func BodySizeLimit(max int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, max)
		c.Next()
	}
}
