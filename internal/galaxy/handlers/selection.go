package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"galaxy-server/internal/galaxy"
	"galaxy-server/internal/middleware"
	"galaxy-server/internal/shared/errors"
	"galaxy-server/internal/shared/response"
)

type SelectRequest struct {
	X *uint32 `json:"x"`
	Y *uint32 `json:"y"`
}

type SelectionHandler struct {
	service *galaxy.Service
}

func NewSelectionHandler(service *galaxy.Service) *SelectionHandler {
	return &SelectionHandler{service: service}
}

func (h *SelectionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "selection")

	claims := middleware.GetExplorerFromContext(r)
	if claims == nil {
		response.Error(w, r, logger, errors.Unauthorized("no explorer claims found in context"))
		return
	}
	logger = logger.With("explorer_id", claims.ExplorerID)

	switch r.Method {
	case http.MethodGet:
		view, err := h.service.Selection(r.Context(), claims.ExplorerID)
		if err != nil {
			response.Error(w, r, logger, err)
			return
		}
		response.Success(w, http.StatusOK, view)

	case http.MethodPut:
		var req SelectRequest
		r.Body = http.MaxBytesReader(w, r.Body, 1<<10)
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, r, logger, errors.WrapValidation("invalid JSON in request body", err))
			return
		}
		if req.X == nil || req.Y == nil {
			response.Error(w, r, logger, errors.Validation("x and y are required"))
			return
		}

		view, err := h.service.Select(r.Context(), claims.ExplorerID, *req.X, *req.Y)
		if err != nil {
			response.Error(w, r, logger, err)
			return
		}
		response.Success(w, http.StatusOK, view)

	case http.MethodDelete:
		if err := h.service.ClearSelection(r.Context(), claims.ExplorerID); err != nil {
			response.Error(w, r, logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
	}
}
