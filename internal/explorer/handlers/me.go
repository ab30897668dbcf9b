package handlers

import (
	"log/slog"
	"net/http"

	"galaxy-server/internal/explorer"
	"galaxy-server/internal/middleware"
	"galaxy-server/internal/shared/errors"
	"galaxy-server/internal/shared/response"
)

type MeHandler struct {
	service *explorer.Service
}

func NewMeHandler(service *explorer.Service) *MeHandler {
	return &MeHandler{service: service}
}

func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "me")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	claims := middleware.GetExplorerFromContext(r)
	if claims == nil {
		response.Error(w, r, logger, errors.Unauthorized("no explorer claims found in context"))
		return
	}

	e, err := h.service.GetByID(r.Context(), claims.ExplorerID)
	if err != nil {
		if errors.Is(err, errors.ErrorTypeNotFound) {
			// A valid token for a deleted explorer is a stale session
			err = errors.Unauthorized("explorer no longer exists")
		}
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, e)
}
