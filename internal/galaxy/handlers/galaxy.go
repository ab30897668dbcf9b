package handlers

import (
	"log/slog"
	"net/http"

	"galaxy-server/internal/galaxy"
	"galaxy-server/internal/shared/errors"
	"galaxy-server/internal/shared/response"
)

type GalaxyHandler struct {
	service *galaxy.Service
}

func NewGalaxyHandler(service *galaxy.Service) *GalaxyHandler {
	return &GalaxyHandler{service: service}
}

func (h *GalaxyHandler) GetMap(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "galaxy_map")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	q := r.URL.Query()
	var window galaxy.Window
	var err error
	if window.X, err = queryCoordinate(q, "x"); err != nil {
		response.Error(w, r, logger, err)
		return
	}
	if window.Y, err = queryCoordinate(q, "y"); err != nil {
		response.Error(w, r, logger, err)
		return
	}
	if window.Width, err = querySize(q, "width"); err != nil {
		response.Error(w, r, logger, err)
		return
	}
	if window.Height, err = querySize(q, "height"); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	galaxyMap, err := h.service.Scan(r.Context(), window)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, galaxyMap)
}

func (h *GalaxyHandler) GetSystem(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "galaxy_system")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	x, err := parseCoordinate("x", r.PathValue("x"))
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}
	y, err := parseCoordinate("y", r.PathValue("y"))
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, h.service.Detail(x, y))
}
