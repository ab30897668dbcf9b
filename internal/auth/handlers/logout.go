package handlers

import (
	"log/slog"
	"net/http"

	"galaxy-server/internal/shared/cookies"
	"galaxy-server/internal/shared/errors"
	"galaxy-server/internal/shared/response"
)

type LogoutHandler struct{}

func NewLogoutHandler() *LogoutHandler {
	return &LogoutHandler{}
}

func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "logout")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	cookies.ClearAuthCookie(w)
	response.Success(w, http.StatusOK, map[string]string{"status": "logged_out"})
}
