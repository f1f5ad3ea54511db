package monitoring

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts /health and /status on router.
func RegisterRoutes(router gin.IRoutes, monitor *Monitor) {
	router.GET("/health", healthHandler(monitor))
	router.GET("/status", statusHandler(monitor))
}

func healthHandler(monitor *Monitor) gin.HandlerFunc {
	return func(c *gin.Context) {
		if monitor.IsHealthy() {
			c.String(http.StatusOK, "OK - %s", monitor.GetStatusSummary())
			return
		}
		c.String(http.StatusServiceUnavailable, "Service unhealthy - %s", monitor.GetStatusSummary())
	}
}

func statusHandler(monitor *Monitor) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, monitor.Snapshot())
	}
}
