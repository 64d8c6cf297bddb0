package handler

import (
	"net/http"
	"time"

	"vending-machine/internal/core/ports"

	"github.com/gin-gonic/gin"
)

// InventoryDependency is the checker the status server cannot work without.
const InventoryDependency = "inventory"

type dependencyStatus struct {
	Status    string `json:"status"`
	LatencyMS int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
}

type healthResponse struct {
	Status       string                      `json:"status"`
	CheckedAt    string                      `json:"checked_at"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

// HealthCheck handles GET /health. It pings every dependency and answers
// 503 if any fails: "unhealthy" when the stock file is unreadable, "degraded"
// when only the ledger or Redis is down.
func HealthCheck(checkers ...ports.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := healthResponse{
			Status:       "healthy",
			CheckedAt:    time.Now().UTC().Format(time.RFC3339),
			Dependencies: make(map[string]dependencyStatus, len(checkers)),
		}

		for _, checker := range checkers {
			start := time.Now()
			err := checker.Ping(c.Request.Context())
			dep := dependencyStatus{Status: "healthy", LatencyMS: time.Since(start).Milliseconds()}
			if err != nil {
				dep.Status = "unhealthy"
				dep.Error = err.Error()
				switch {
				case checker.Name() == InventoryDependency:
					resp.Status = "unhealthy"
				case resp.Status == "healthy":
					resp.Status = "degraded"
				}
			}
			resp.Dependencies[checker.Name()] = dep
		}

		code := http.StatusOK
		if resp.Status != "healthy" {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, resp)
	}
}
