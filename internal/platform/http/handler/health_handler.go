// Package handler holds transport handlers that belong to no single feature.
package handler

import "github.com/gin-gonic/gin"

// Health reports liveness for load balancers and uptime checks.
func Health(c *gin.Context) {
	// Make sure intermediaries never cache the probe.
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case "HEAD":
		c.Status(200)
	case "OPTIONS":
		c.Status(204)
	default:
		c.JSON(200, gin.H{"status": "ok"})
	}
}
