package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"galaxy-server/internal/bookmark"
	"galaxy-server/internal/middleware"
	"galaxy-server/internal/shared/errors"
	"galaxy-server/internal/shared/response"
)

type BookmarksHandler struct {
	service *bookmark.Service
}

func NewBookmarksHandler(service *bookmark.Service) *BookmarksHandler {
	return &BookmarksHandler{service: service}
}

func (h *BookmarksHandler) List(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "list_bookmarks")

	claims := middleware.GetExplorerFromContext(r)
	if claims == nil {
		response.Error(w, r, logger, errors.Unauthorized("no explorer claims found in context"))
		return
	}

	views, err := h.service.List(r.Context(), claims.ExplorerID)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, views)
}

func (h *BookmarksHandler) Create(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "create_bookmark")

	claims := middleware.GetExplorerFromContext(r)
	if claims == nil {
		response.Error(w, r, logger, errors.Unauthorized("no explorer claims found in context"))
		return
	}

	var req bookmark.CreateRequest
	r.Body = http.MaxBytesReader(w, r.Body, 1<<12)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid JSON in request body", err))
		return
	}

	view, err := h.service.Create(r.Context(), claims.ExplorerID, req)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusCreated, view)
}

func (h *BookmarksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "delete_bookmark")

	claims := middleware.GetExplorerFromContext(r)
	if claims == nil {
		response.Error(w, r, logger, errors.Unauthorized("no explorer claims found in context"))
		return
	}

	if err := h.service.Delete(r.Context(), claims.ExplorerID, r.PathValue("id")); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
