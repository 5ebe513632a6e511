package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tzofim/peula/internal/logger"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Prober reports whether the generation backend answers.
type Prober interface {
	Available(ctx context.Context) bool
}

type HealthHandler struct {
	store      Pinger
	generation Prober
	log        *logger.Logger
}

func NewHealthHandler(store Pinger, generation Prober, log *logger.Logger) *HealthHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &HealthHandler{store: store, generation: generation, log: log}
}

// GET /healthz
// The store decides the status code; generation availability is reported
// but does not fail the check.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	status := http.StatusOK
	body := gin.H{"status": "ok", "store": "ok"}
	if h.store != nil {
		if err := h.store.Ping(ctx); err != nil {
			status = http.StatusServiceUnavailable
			body["status"] = "degraded"
			body["store"] = "unreachable"
			h.log.Error("health check: store ping failed", "error", err)
		}
	}
	if h.generation != nil {
		body["generation"] = h.generation.Available(ctx)
	}
	c.JSON(status, body)
}
