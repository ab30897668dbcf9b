package explorer

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"galaxy-server/internal/shared/database"
	"galaxy-server/internal/shared/errors"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "explorers.db"))
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := db.RunMigrations(context.Background()); err != nil {
		t.Fatalf("RunMigrations() error = %v", err)
	}

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	return NewService(NewRepository(db), logger)
}

func TestCreateGuest(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 500, time.UTC) }

	e, err := svc.CreateGuest(ctx, "  Vega  ")
	if err != nil {
		t.Fatalf("CreateGuest() error = %v", err)
	}
	if e.Name != "Vega" || e.Provider != ProviderGuest || e.ProviderUserID != e.ID {
		t.Errorf("unexpected explorer %+v", e)
	}

	stored, err := svc.GetByID(ctx, e.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if stored.Name != "Vega" || !stored.CreatedAt.Equal(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("stored explorer %+v", stored)
	}
}

func TestCreateGuest_GeneratedName(t *testing.T) {
	svc := newTestService(t)

	e, err := svc.CreateGuest(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(e.Name, "Explorer-") || e.Name != "Explorer-"+e.ID[:8] {
		t.Errorf("generated name = %q", e.Name)
	}
}

func TestCreateGuest_InvalidName(t *testing.T) {
	svc := newTestService(t)

	for _, name := range []string{strings.Repeat("a", MaxNameLength+1), "tab\tname"} {
		_, err := svc.CreateGuest(context.Background(), name)
		if !errors.Is(err, errors.ErrorTypeValidation) {
			t.Errorf("CreateGuest(%q) error = %v, want validation", name, err)
		}
	}

	if _, err := svc.CreateGuest(context.Background(), strings.Repeat("é", MaxNameLength)); err != nil {
		t.Errorf("names are limited in characters, not bytes: %v", err)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.GetByID(context.Background(), "missing")
	if !errors.Is(err, errors.ErrorTypeNotFound) {
		t.Errorf("GetByID() error = %v, want not found", err)
	}
}

func TestFindOrCreateByProvider(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	first, err := svc.FindOrCreateByProvider(ctx, ProviderGitHub, "583231", "The Octocat", "https://a/1.png")
	if err != nil {
		t.Fatalf("first login error = %v", err)
	}

	second, err := svc.FindOrCreateByProvider(ctx, ProviderGitHub, "583231", "Octocat Renamed", "https://a/2.png")
	if err != nil {
		t.Fatalf("second login error = %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("same identity produced two explorers: %s, %s", first.ID, second.ID)
	}

	stored, err := svc.GetByID(ctx, first.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Name != "Octocat Renamed" || stored.AvatarURL != "https://a/2.png" {
		t.Errorf("profile not refreshed: %+v", stored)
	}

	other, err := svc.FindOrCreateByProvider(ctx, ProviderGitHub, "1", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if other.ID == first.ID || other.Name != "github-1" {
		t.Errorf("unexpected explorer for new identity %+v", other)
	}

	count, err := svc.repo.Count(ctx)
	if err != nil || count != 2 {
		t.Errorf("Count() = %d, %v", count, err)
	}
}

func TestFindOrCreateByProvider_LongName(t *testing.T) {
	svc := newTestService(t)
	e, err := svc.FindOrCreateByProvider(context.Background(), ProviderGitHub, "7", strings.Repeat("n", 100), "")
	if err != nil {
		t.Fatal(err)
	}
	if len(e.Name) != MaxNameLength {
		t.Errorf("provider names should be truncated, got %d chars", len(e.Name))
	}
}

func TestFindOrCreateByProvider_RequiresIdentity(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.FindOrCreateByProvider(context.Background(), ProviderGitHub, "", "x", "")
	if !errors.Is(err, errors.ErrorTypeValidation) {
		t.Errorf("error = %v, want validation", err)
	}
}
