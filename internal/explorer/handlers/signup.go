package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"galaxy-server/internal/explorer"
	"galaxy-server/internal/shared/cookies"
	apperrors "galaxy-server/internal/shared/errors"
	"galaxy-server/internal/shared/response"
)

type TokenIssuer interface {
	Generate(explorerID, name, provider string) (string, error)
}

type SignupRequest struct {
	Name string `json:"name"`
}

type SignupHandler struct {
	service *explorer.Service
	tokens  TokenIssuer
}

func NewSignupHandler(service *explorer.Service, tokens TokenIssuer) *SignupHandler {
	return &SignupHandler{service: service, tokens: tokens}
}

func (h *SignupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "explorer_signup")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, apperrors.MethodNotAllowed(r.Method))
		return
	}

	var req SignupRequest
	r.Body = http.MaxBytesReader(w, r.Body, 1<<10)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(w, r, logger, apperrors.WrapValidation("invalid JSON in request body", err))
		return
	}

	e, err := h.service.CreateGuest(r.Context(), req.Name)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	token, err := h.tokens.Generate(e.ID, e.Name, e.Provider)
	if err != nil {
		response.Error(w, r, logger, apperrors.WrapInternal("failed to issue session", err))
		return
	}

	cookies.SetAuthCookie(w, token)
	response.Success(w, http.StatusCreated, e)
}
