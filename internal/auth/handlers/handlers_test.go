package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"galaxy-server/internal/auth"
	"galaxy-server/internal/auth/providers"
	"galaxy-server/internal/explorer"
	"galaxy-server/internal/shared/config"
	"galaxy-server/internal/shared/cookies"

	"golang.org/x/oauth2"
)

const frontend = "http://localhost:3000"

type fakeProvider struct {
	exchangeErr error
	user        *providers.OAuthUser
}

func (p *fakeProvider) Name() string { return "github" }

func (p *fakeProvider) GetAuthURL(state string) string {
	return "https://github.example/authorize?state=" + url.QueryEscape(state)
}

func (p *fakeProvider) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	if p.exchangeErr != nil {
		return nil, p.exchangeErr
	}
	return &oauth2.Token{AccessToken: "access-" + code}, nil
}

func (p *fakeProvider) GetUserInfo(ctx context.Context, token *oauth2.Token) (*providers.OAuthUser, error) {
	return p.user, nil
}

type fakeLinker struct {
	calls []string
}

func (l *fakeLinker) FindOrCreateByProvider(ctx context.Context, provider, providerUserID, name, avatarURL string) (*explorer.Explorer, error) {
	l.calls = append(l.calls, provider+":"+providerUserID)
	return &explorer.Explorer{ID: "explorer-" + providerUserID, Name: name, Provider: provider}, nil
}

func setup(t *testing.T, provider *fakeProvider, configured bool) (*OAuthHandler, *fakeLinker, *auth.TokenManager) {
	t.Helper()
	prev := config.GlobalConfig
	config.GlobalConfig = &config.Config{
		Auth:     config.AuthConfig{TokenExpiration: time.Hour},
		Frontend: config.FrontendConfig{URL: frontend},
	}
	t.Cleanup(func() { config.GlobalConfig = prev })

	tokens, err := auth.NewTokenManager(strings.Repeat("s", auth.MinSecretLength), time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	linker := &fakeLinker{}
	h := NewOAuthHandler(provider, linker, tokens, auth.NewStateManager(auth.DefaultStateTTL), frontend, configured)
	return h, linker, tokens
}

func startFlow(t *testing.T, h *OAuthHandler, query string) string {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/github"+query, nil)
	req.Header.Set("User-Agent", "test-agent")
	h.HandleAuth(rec, req)

	if rec.Code != http.StatusTemporaryRedirect {
		t.Fatalf("HandleAuth status = %d", rec.Code)
	}
	loc, err := url.Parse(rec.Header().Get("Location"))
	if err != nil {
		t.Fatal(err)
	}
	return loc.Query().Get("state")
}

func callback(h *OAuthHandler, query url.Values) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/github/callback?"+query.Encode(), nil)
	req.Header.Set("User-Agent", "test-agent")
	h.HandleCallback(rec, req)
	return rec
}

func TestOAuthFlow_Success(t *testing.T) {
	h, linker, tokens := setup(t, &fakeProvider{user: &providers.OAuthUser{ID: "42", Name: "octo"}}, true)

	state := startFlow(t, h, "")
	if state == "" {
		t.Fatal("auth redirect should carry a state")
	}

	rec := callback(h, url.Values{"code": {"abc"}, "state": {state}})
	if rec.Code != http.StatusTemporaryRedirect {
		t.Fatalf("callback status = %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != frontend+"/auth/callback?success=true" {
		t.Errorf("redirect = %q", loc)
	}
	if len(linker.calls) != 1 || linker.calls[0] != "github:42" {
		t.Errorf("linker calls = %v", linker.calls)
	}

	var session string
	for _, c := range rec.Result().Cookies() {
		if c.Name == cookies.AuthCookieName {
			session = c.Value
		}
	}
	claims, err := tokens.Validate(session)
	if err != nil {
		t.Fatalf("session cookie invalid: %v", err)
	}
	if claims.ExplorerID != "explorer-42" || claims.Provider != "github" {
		t.Errorf("claims = %+v", claims)
	}

	rec = callback(h, url.Values{"code": {"abc"}, "state": {state}})
	if !strings.Contains(rec.Header().Get("Location"), "error=invalid_state") {
		t.Errorf("replayed state should fail, got %q", rec.Header().Get("Location"))
	}
}

func TestOAuthFlow_RedirectURI(t *testing.T) {
	h, _, _ := setup(t, &fakeProvider{user: &providers.OAuthUser{ID: "1"}}, true)

	state := startFlow(t, h, "?redirect_uri="+url.QueryEscape(frontend+"/app/"))
	rec := callback(h, url.Values{"code": {"abc"}, "state": {state}})
	if loc := rec.Header().Get("Location"); loc != frontend+"/app/auth/callback?success=true" {
		t.Errorf("redirect = %q", loc)
	}

	state = startFlow(t, h, "?redirect_uri="+url.QueryEscape("https://evil.example"))
	rec = callback(h, url.Values{"code": {"abc"}, "state": {state}})
	if loc := rec.Header().Get("Location"); !strings.HasPrefix(loc, frontend+"/auth/callback") {
		t.Errorf("foreign redirect must fall back to the frontend, got %q", loc)
	}
}

func TestOAuthFlow_Failures(t *testing.T) {
	tests := []struct {
		name     string
		provider *fakeProvider
		query    func(state string) url.Values
		want     string
	}{
		{"denied", &fakeProvider{}, func(s string) url.Values {
			return url.Values{"error": {"access_denied"}, "state": {s}}
		}, "error=oauth_denied"},
		{"missing code", &fakeProvider{}, func(s string) url.Values {
			return url.Values{"state": {s}}
		}, "error=oauth_error"},
		{"exchange fails", &fakeProvider{exchangeErr: errors.New("bad code")}, func(s string) url.Values {
			return url.Values{"code": {"x"}, "state": {s}}
		}, "error=oauth_error"},
		{"unknown state", &fakeProvider{}, func(string) url.Values {
			return url.Values{"code": {"x"}, "state": {"forged"}}
		}, "error=invalid_state"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, linker, _ := setup(t, tt.provider, true)
			state := startFlow(t, h, "")

			rec := callback(h, tt.query(state))
			if loc := rec.Header().Get("Location"); !strings.Contains(loc, tt.want) {
				t.Errorf("redirect = %q, want %s", loc, tt.want)
			}
			if len(linker.calls) != 0 {
				t.Error("no explorer should be created on failure")
			}
		})
	}
}

func TestOAuth_NotConfigured(t *testing.T) {
	h, _, _ := setup(t, &fakeProvider{}, false)

	rec := httptest.NewRecorder()
	h.HandleAuth(rec, httptest.NewRequest(http.MethodGet, "/auth/github", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestLogout(t *testing.T) {
	setup(t, &fakeProvider{}, true)
	h := NewLogoutHandler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/logout", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	cleared := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == cookies.AuthCookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("logout should clear the session cookie")
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/logout", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET logout status = %d", rec.Code)
	}
}

func TestResolveRedirectURI(t *testing.T) {
	tests := []struct {
		requested string
		want      string
	}{
		{"", frontend},
		{frontend + "/maps", frontend + "/maps"},
		{"https://localhost:3000", frontend},
		{"http://localhost:4000", frontend},
		{"://bad", frontend},
	}
	for _, tt := range tests {
		if got := resolveRedirectURI(tt.requested, frontend); got != tt.want {
			t.Errorf("resolveRedirectURI(%q) = %q, want %q", tt.requested, got, tt.want)
		}
	}
}
