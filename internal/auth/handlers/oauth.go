package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"galaxy-server/internal/auth"
	"galaxy-server/internal/auth/providers"
	"galaxy-server/internal/explorer"
	"galaxy-server/internal/shared/cookies"
	"galaxy-server/internal/shared/errors"
	"galaxy-server/internal/shared/response"
)

type ExplorerLinker interface {
	FindOrCreateByProvider(ctx context.Context, provider, providerUserID, name, avatarURL string) (*explorer.Explorer, error)
}

type TokenIssuer interface {
	Generate(explorerID, name, provider string) (string, error)
}

type OAuthHandler struct {
	provider     providers.OAuthProvider
	explorers    ExplorerLinker
	tokens       TokenIssuer
	states       *auth.StateManager
	frontendURL  string
	isConfigured bool
}

func NewOAuthHandler(provider providers.OAuthProvider, explorers ExplorerLinker, tokens TokenIssuer, states *auth.StateManager, frontendURL string, isConfigured bool) *OAuthHandler {
	return &OAuthHandler{
		provider:     provider,
		explorers:    explorers,
		tokens:       tokens,
		states:       states,
		frontendURL:  frontendURL,
		isConfigured: isConfigured,
	}
}

func (h *OAuthHandler) HandleAuth(w http.ResponseWriter, r *http.Request) {
	name := h.provider.Name()
	logger := slog.With("handler", name+"_oauth_init")

	if !h.isConfigured {
		response.Error(w, r, logger, errors.External(fmt.Sprintf("%s OAuth is not properly configured", name)))
		return
	}

	redirectURI := resolveRedirectURI(r.URL.Query().Get("redirect_uri"), h.frontendURL)

	state, err := h.states.GenerateState(name, r.UserAgent(), redirectURI)
	if err != nil {
		response.Error(w, r, logger, errors.WrapInternal("failed to initialize OAuth flow", err))
		return
	}

	http.Redirect(w, r, h.provider.GetAuthURL(state), http.StatusTemporaryRedirect)
}

func (h *OAuthHandler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	name := h.provider.Name()
	code := r.URL.Query().Get("code")
	state := r.URL.Query().Get("state")
	errorParam := r.URL.Query().Get("error")

	logger := slog.With(
		"handler", name+"_oauth_callback",
		"ip", r.RemoteAddr,
		"has_code", code != "",
		"has_state", state != "",
	)

	entry, err := h.states.ValidateState(state, name, r.UserAgent())
	if err != nil {
		logger.Warn("OAuth state validation failed", "error", err)
		redirectWithError(w, r, h.frontendURL, "invalid_state")
		return
	}
	redirectURI := entry.RedirectURI

	if errorParam != "" {
		logger.Warn("OAuth authorization denied",
			"oauth_error", errorParam,
			"error_description", r.URL.Query().Get("error_description"))
		redirectWithError(w, r, redirectURI, "oauth_denied")
		return
	}

	if code == "" {
		logger.Error("OAuth callback missing authorization code")
		redirectWithError(w, r, redirectURI, "oauth_error")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	token, err := h.provider.ExchangeCode(ctx, code)
	if err != nil {
		logger.Error("Failed to exchange authorization code", "error", err)
		redirectWithError(w, r, redirectURI, "oauth_error")
		return
	}

	userInfo, err := h.provider.GetUserInfo(ctx, token)
	if err != nil {
		logger.Error("Failed to get user info", "error", err)
		redirectWithError(w, r, redirectURI, "oauth_error")
		return
	}

	e, err := h.explorers.FindOrCreateByProvider(ctx, name, userInfo.ID, userInfo.Name, userInfo.AvatarURL)
	if err != nil {
		logger.Error("Failed to resolve explorer", "error", err, "provider_user_id", userInfo.ID)
		redirectWithError(w, r, redirectURI, "database_error")
		return
	}

	jwtToken, err := h.tokens.Generate(e.ID, e.Name, e.Provider)
	if err != nil {
		logger.Error("Failed to generate JWT token", "error", err, "explorer_id", e.ID)
		redirectWithError(w, r, redirectURI, "auth_error")
		return
	}

	cookies.SetAuthCookie(w, jwtToken)

	logger.Info("OAuth authentication successful", "explorer_id", e.ID)

	http.Redirect(w, r, redirectURI+"/auth/callback?success=true", http.StatusTemporaryRedirect)
}
