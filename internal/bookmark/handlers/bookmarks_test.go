package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"galaxy-server/internal/auth"
	"galaxy-server/internal/bookmark"
	"galaxy-server/internal/explorer"
	"galaxy-server/internal/middleware"
	"galaxy-server/internal/procgen"
	"galaxy-server/internal/shared/database"
)

type generatorClassifier struct{}

func (generatorClassifier) Classify(x, y uint32) *procgen.StarSystem {
	return procgen.Generate(x, y, procgen.DetailCoarse)
}

func setup(t *testing.T) (*http.ServeMux, string) {
	t.Helper()
	ctx := context.Background()

	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "bookmarks.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := db.RunMigrations(ctx); err != nil {
		t.Fatal(err)
	}

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	e, err := explorer.NewService(explorer.NewRepository(db), logger).CreateGuest(ctx, "Vega")
	if err != nil {
		t.Fatal(err)
	}

	h := NewBookmarksHandler(bookmark.NewService(bookmark.NewRepository(db), generatorClassifier{}, logger))

	withExplorer := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			next(w, r.WithContext(middleware.WithExplorer(r.Context(), &auth.Claims{ExplorerID: e.ID})))
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/explorers/me/bookmarks", withExplorer(h.List))
	mux.HandleFunc("POST /api/explorers/me/bookmarks", withExplorer(h.Create))
	mux.HandleFunc("DELETE /api/explorers/me/bookmarks/{id}", withExplorer(h.Delete))
	mux.HandleFunc("GET /anonymous", h.List)
	return mux, e.ID
}

func serve(mux *http.ServeMux, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rec
}

func TestBookmarkLifecycle(t *testing.T) {
	mux, _ := setup(t)

	rec := serve(mux, http.MethodPost, "/api/explorers/me/bookmarks", `{"x": 0, "y": 2, "label": "home"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}
	var created bookmark.View
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatal(err)
	}
	if created.Kind != procgen.KindStar || created.Label != "home" || created.ID == "" {
		t.Errorf("created = %+v", created)
	}

	rec = serve(mux, http.MethodPost, "/api/explorers/me/bookmarks", `{"x": 0, "y": 2, "label": "again"}`)
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate status = %d, want 409", rec.Code)
	}

	rec = serve(mux, http.MethodGet, "/api/explorers/me/bookmarks", "")
	var list []bookmark.View
	if err := json.NewDecoder(rec.Body).Decode(&list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].ID != created.ID {
		t.Errorf("list = %+v", list)
	}

	rec = serve(mux, http.MethodDelete, "/api/explorers/me/bookmarks/"+created.ID, "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("delete status = %d", rec.Code)
	}

	rec = serve(mux, http.MethodGet, "/api/explorers/me/bookmarks", "")
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("empty list body = %q", rec.Body.String())
	}
}

func TestBookmarkErrors(t *testing.T) {
	mux, _ := setup(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"bad json", http.MethodPost, "/api/explorers/me/bookmarks", "{", http.StatusBadRequest},
		{"missing label", http.MethodPost, "/api/explorers/me/bookmarks", `{"x": 1, "y": 1}`, http.StatusBadRequest},
		{"negative x", http.MethodPost, "/api/explorers/me/bookmarks", `{"x": -1, "y": 1, "label": "a"}`, http.StatusBadRequest},
		{"unknown id", http.MethodDelete, "/api/explorers/me/bookmarks/9b2f4c1e-0000-4000-8000-000000000000", "", http.StatusNotFound},
		{"no claims", http.MethodGet, "/anonymous", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := serve(mux, tt.method, tt.path, tt.body); rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}
