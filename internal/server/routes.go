package server

import (
	"log/slog"
	"net/http"

	"galaxy-server/internal/auth"
	authHandlers "galaxy-server/internal/auth/handlers"
	"galaxy-server/internal/bookmark"
	bookmarkHandlers "galaxy-server/internal/bookmark/handlers"
	"galaxy-server/internal/explorer"
	explorerHandlers "galaxy-server/internal/explorer/handlers"
	"galaxy-server/internal/galaxy"
	galaxyHandlers "galaxy-server/internal/galaxy/handlers"
	"galaxy-server/internal/middleware"
	serverHandlers "galaxy-server/internal/server/handlers"
	"galaxy-server/internal/shared/config"
	"galaxy-server/internal/shared/database"
	"galaxy-server/internal/shared/metrics"
	"galaxy-server/internal/shared/redis"
)

// Dependencies is everything the HTTP surface needs. Redis may be nil.
type Dependencies struct {
	DB              *database.DB
	Redis           *redis.Client
	ExplorerService *explorer.Service
	GalaxyService   *galaxy.Service
	BookmarkService *bookmark.Service
	Tokens          *auth.TokenManager
	States          *auth.StateManager
	OAuthConfig     *auth.OAuthConfig
	Metrics         *metrics.Metrics
	RateLimiter     *middleware.RateLimiter
	CORS            *middleware.CORSMiddleware
	FrontendURL     string
	GalaxyConfig    config.GalaxyConfig
}

type Routes struct {
	deps Dependencies
}

func NewRoutes(deps Dependencies) *Routes {
	return &Routes{deps: deps}
}

func (r *Routes) Setup() http.Handler {
	logger := slog.With("component", "routes", "operation", "setup")
	logger.Debug("Setting up application routes")

	d := r.deps
	mux := http.NewServeMux()

	var redisPinger serverHandlers.Pinger
	if d.Redis != nil {
		redisPinger = d.Redis
	}
	healthHandler := serverHandlers.NewHealthHandler(d.DB, redisPinger)
	statusHandler := serverHandlers.NewStatusHandler(d.ExplorerService, d.GalaxyConfig)

	galaxyHandler := galaxyHandlers.NewGalaxyHandler(d.GalaxyService)
	selectionHandler := galaxyHandlers.NewSelectionHandler(d.GalaxyService)
	signupHandler := explorerHandlers.NewSignupHandler(d.ExplorerService, d.Tokens)
	meHandler := explorerHandlers.NewMeHandler(d.ExplorerService)
	bookmarksHandler := bookmarkHandlers.NewBookmarksHandler(d.BookmarkService)
	logoutHandler := authHandlers.NewLogoutHandler()

	githubAuthHandler := authHandlers.NewOAuthHandler(
		d.OAuthConfig.GitHubProvider,
		d.ExplorerService,
		d.Tokens,
		d.States,
		d.FrontendURL,
		d.OAuthConfig.GitHubConfigured,
	)

	requireExplorer := middleware.JWTMiddleware(d.Tokens)

	// Public endpoints
	mux.Handle("/api/server/health", healthHandler)
	mux.Handle("GET /api/galaxy/status", statusHandler)
	mux.Handle("GET /metrics", d.Metrics.Handler())
	mux.HandleFunc("GET /api/galaxy/map", galaxyHandler.GetMap)
	mux.HandleFunc("GET /api/galaxy/systems/{x}/{y}", galaxyHandler.GetSystem)
	mux.Handle("/api/explorers", signupHandler)

	// Protected endpoints
	mux.Handle("/api/explorers/me", requireExplorer(meHandler))
	mux.Handle("/api/explorers/me/selection", requireExplorer(selectionHandler))
	mux.Handle("GET /api/explorers/me/bookmarks", requireExplorer(http.HandlerFunc(bookmarksHandler.List)))
	mux.Handle("POST /api/explorers/me/bookmarks", requireExplorer(http.HandlerFunc(bookmarksHandler.Create)))
	mux.Handle("DELETE /api/explorers/me/bookmarks/{id}", requireExplorer(http.HandlerFunc(bookmarksHandler.Delete)))

	// OAuth endpoints
	mux.HandleFunc("/auth/github", githubAuthHandler.HandleAuth)
	mux.HandleFunc("/auth/github/callback", githubAuthHandler.HandleCallback)
	mux.Handle("/auth/logout", logoutHandler)

	logger.Info("Routes configured successfully",
		"public_endpoints", []string{"/api/server/health", "/api/galaxy/status", "/metrics", "/api/galaxy/map", "/api/galaxy/systems/{x}/{y}", "/api/explorers"},
		"protected_endpoints", []string{"/api/explorers/me", "/api/explorers/me/selection", "/api/explorers/me/bookmarks"},
		"auth_endpoints", []string{"/auth/github", "/auth/logout"},
		"redis", d.Redis != nil,
	)

	return middleware.Chain(mux,
		middleware.RequestID,
		d.RateLimiter.Middleware,
		d.CORS.Middleware,
	)
}
