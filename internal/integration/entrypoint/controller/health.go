package controller

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const probeTimeout = 2 * time.Second

// Probe reports whether a backing store answers.
type Probe func(ctx context.Context) error

// HealthController serves GET /health.
type HealthController struct {
	database Probe
	redis    Probe
}

type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Redis     string `json:"redis"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController takes one probe per store. A nil redis probe reports Redis as disabled.
func NewHealthController(database, redis Probe) *HealthController {
	return &HealthController{database: database, redis: redis}
}

// Check answers 503 "degraded" when the database is unreachable. Redis being down
// only shows in the body since completions fall back to an in-process lock.
func (h *HealthController) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), probeTimeout)
	defer cancel()

	resp := HealthResponse{
		Status:    "ok",
		Database:  probe(ctx, "database", h.database),
		Redis:     "disabled",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if h.redis != nil {
		resp.Redis = probe(ctx, "redis", h.redis)
	}

	if resp.Database != "connected" {
		resp.Status = "degraded"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func probe(ctx context.Context, name string, p Probe) string {
	if p == nil {
		return "disconnected"
	}
	if err := p(ctx); err != nil {
		slog.Warn("Health probe failed", "store", name, "error", err)
		return "disconnected"
	}
	return "connected"
}
