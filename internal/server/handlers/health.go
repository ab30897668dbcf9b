package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"galaxy-server/internal/shared/response"
)

// Pinger reports whether a backing service is reachable
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Database  string `json:"database"`
	Redis     string `json:"redis"`
}

type HealthHandler struct {
	db    Pinger
	redis Pinger
}

// NewHealthHandler checks db on every request; redis may be nil when the
// selection store runs in memory
func NewHealthHandler(db Pinger, redis Pinger) *HealthHandler {
	return &HealthHandler{db: db, redis: redis}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "health")

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Database:  "connected",
		Redis:     "disabled",
	}
	status := http.StatusOK

	if err := h.db.PingContext(ctx); err != nil {
		logger.Warn("Database ping failed", "error", err)
		resp.Database = "disconnected"
		resp.Status = "degraded"
		status = http.StatusServiceUnavailable
	}

	if h.redis != nil {
		resp.Redis = "connected"
		if err := h.redis.PingContext(ctx); err != nil {
			logger.Warn("Redis ping failed", "error", err)
			resp.Redis = "disconnected"
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
		}
	}

	response.Success(w, status, resp)
}
