package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"galaxy-server/internal/shared/config"
	"galaxy-server/internal/shared/errors"
	"galaxy-server/internal/shared/response"
)

type ExplorerCounter interface {
	Count(ctx context.Context) (int, error)
}

type StatusResponse struct {
	Galaxy         string `json:"galaxy"`
	Explorers      int    `json:"explorers"`
	MaxWindowCells int    `json:"max_window_cells"`
}

type StatusHandler struct {
	explorers ExplorerCounter
	galaxy    config.GalaxyConfig
}

func NewStatusHandler(explorers ExplorerCounter, galaxy config.GalaxyConfig) *StatusHandler {
	return &StatusHandler{explorers: explorers, galaxy: galaxy}
}

func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "galaxy_status")

	count, err := h.explorers.Count(r.Context())
	if err != nil {
		response.Error(w, r, logger, errors.WrapInternal("failed to count explorers", err))
		return
	}

	response.Success(w, http.StatusOK, StatusResponse{
		Galaxy:         "Galaxy",
		Explorers:      count,
		MaxWindowCells: h.galaxy.MaxWindowCells,
	})
}
