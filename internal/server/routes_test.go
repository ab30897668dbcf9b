package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"galaxy-server/internal/auth"
	"galaxy-server/internal/bookmark"
	"galaxy-server/internal/explorer"
	"galaxy-server/internal/galaxy"
	"galaxy-server/internal/middleware"
	"galaxy-server/internal/procgen"
	"galaxy-server/internal/selection"
	"galaxy-server/internal/shared/config"
	"galaxy-server/internal/shared/cookies"
	"galaxy-server/internal/shared/database"
	"galaxy-server/internal/shared/metrics"
)

const testSecret = "a-test-secret-that-is-long-enough-123"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := &config.Config{
		Server:   config.ServerConfig{URL: "http://localhost:8080", Environment: "test"},
		Auth:     config.AuthConfig{JWTSecret: testSecret, TokenExpiration: time.Hour, CookieSameSite: "lax"},
		Frontend: config.FrontendConfig{URL: "http://localhost:3000"},
		Galaxy:   config.GalaxyConfig{MaxWindowCells: 4096, ScanWorkers: 2},
	}
	previous := config.GlobalConfig
	config.GlobalConfig = cfg
	t.Cleanup(func() { config.GlobalConfig = previous })

	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "routes.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := db.RunMigrations(context.Background()); err != nil {
		t.Fatal(err)
	}

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiration)
	if err != nil {
		t.Fatal(err)
	}

	m := metrics.New()
	galaxyService := galaxy.NewService(
		procgen.NewGenerator(procgen.DefaultPalette(), logger),
		selection.NewMemoryStore(time.Hour),
		m,
		cfg.Galaxy,
		logger,
	)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	routes := NewRoutes(Dependencies{
		DB:              db,
		ExplorerService: explorer.NewService(explorer.NewRepository(db), logger),
		GalaxyService:   galaxyService,
		BookmarkService: bookmark.NewService(bookmark.NewRepository(db), galaxyService, logger),
		Tokens:          tokens,
		States:          auth.NewStateManager(auth.DefaultStateTTL),
		OAuthConfig:     auth.InitOAuth(cfg),
		Metrics:         m,
		RateLimiter:     middleware.NewRateLimiter(ctx, cfg.RateLimit),
		CORS:            middleware.NewCORS(cfg.Frontend),
		FrontendURL:     cfg.Frontend.URL,
		GalaxyConfig:    cfg.Galaxy,
	})

	srv := httptest.NewServer(routes.Setup())
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path, body string, session *http.Cookie) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	if session != nil {
		req.AddCookie(session)
	}
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == cookies.AuthCookieName {
			return c
		}
	}
	return nil
}

func TestPublicRoutes(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		path string
		want int
	}{
		{"/api/server/health", http.StatusOK},
		{"/api/galaxy/status", http.StatusOK},
		{"/api/galaxy/map?x=0&y=0&width=8&height=8", http.StatusOK},
		{"/api/galaxy/systems/0/2", http.StatusOK},
		{"/api/galaxy/systems/0/nope", http.StatusBadRequest},
		{"/api/explorers/me", http.StatusUnauthorized},
		{"/api/explorers/me/selection", http.StatusUnauthorized},
		{"/api/explorers/me/bookmarks", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp := do(t, srv, http.MethodGet, tt.path, "", nil)
			if resp.StatusCode != tt.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.want)
			}
			if resp.Header.Get(middleware.RequestIDHeader) == "" {
				t.Error("response carries no request id")
			}
		})
	}
}

func TestExplorerSession(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, srv, http.MethodPost, "/api/explorers", `{"name": "Vega"}`, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("signup status = %d", resp.StatusCode)
	}
	session := sessionCookie(resp)
	if session == nil {
		t.Fatal("signup did not set a session cookie")
	}

	resp = do(t, srv, http.MethodGet, "/api/explorers/me", "", session)
	var me explorer.Explorer
	if err := json.NewDecoder(resp.Body).Decode(&me); err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK || me.Name != "Vega" {
		t.Errorf("me = %d %+v", resp.StatusCode, me)
	}

	resp = do(t, srv, http.MethodPut, "/api/explorers/me/selection", `{"x": 0, "y": 2}`, session)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("select status = %d", resp.StatusCode)
	}

	resp = do(t, srv, http.MethodPost, "/api/explorers/me/bookmarks", `{"x": 0, "y": 27, "label": "remnant"}`, session)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("bookmark status = %d", resp.StatusCode)
	}
	var created bookmark.View
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatal(err)
	}
	if created.Kind != procgen.KindBlackHole || !created.Supernova {
		t.Errorf("bookmark = %+v", created)
	}

	resp = do(t, srv, http.MethodDelete, "/api/explorers/me/bookmarks/"+created.ID, "", session)
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("delete status = %d", resp.StatusCode)
	}

	resp = do(t, srv, http.MethodPost, "/auth/logout", "", session)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("logout status = %d", resp.StatusCode)
	}
	if c := sessionCookie(resp); c == nil || c.MaxAge >= 0 {
		t.Errorf("logout cookie = %+v", c)
	}
}

func TestMetricsAfterScan(t *testing.T) {
	srv := newTestServer(t)

	do(t, srv, http.MethodGet, "/api/galaxy/map?x=0&y=0&width=8&height=32", "", nil)

	resp := do(t, srv, http.MethodGet, "/metrics", "", nil)
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"galaxy_scan_cells_total 256", "galaxy_systems_generated_total", "galaxy_scan_duration_seconds"} {
		if !strings.Contains(string(body), name) {
			t.Errorf("metrics output missing %q", name)
		}
	}
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t)

	req, _ := http.NewRequest(http.MethodOptions, srv.URL+"/api/explorers/me/bookmarks", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("allow origin = %q", got)
	}
	if got := resp.Header.Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Errorf("allow credentials = %q", got)
	}
}
