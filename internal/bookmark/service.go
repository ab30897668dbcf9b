package bookmark

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"galaxy-server/internal/procgen"
	"galaxy-server/internal/shared/errors"

	"github.com/google/uuid"
)

// Classifier reports what a coordinate holds
type Classifier interface {
	Classify(x, y uint32) *procgen.StarSystem
}

type Service struct {
	repo       *Repository
	classifier Classifier
	logger     *slog.Logger
	now        func() time.Time
}

func NewService(repo *Repository, classifier Classifier, logger *slog.Logger) *Service {
	logger.Debug("Initializing bookmark service")

	return &Service{
		repo:       repo,
		classifier: classifier,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *Service) view(b Bookmark) View {
	system := s.classifier.Classify(b.X, b.Y)
	return View{
		Bookmark:  b,
		Kind:      system.Kind(),
		Supernova: system.IsSupernova(),
	}
}

func (s *Service) List(ctx context.Context, explorerID string) ([]View, error) {
	bookmarks, err := s.repo.ListByExplorer(ctx, explorerID)
	if err != nil {
		return nil, err
	}

	views := make([]View, 0, len(bookmarks))
	for _, b := range bookmarks {
		views = append(views, s.view(b))
	}
	return views, nil
}

func (s *Service) Create(ctx context.Context, explorerID string, req CreateRequest) (*View, error) {
	logger := s.logger.With("component", "bookmark_service", "operation", "create", "explorer_id", explorerID)

	if req.X == nil || req.Y == nil {
		return nil, errors.Validation("x and y are required")
	}

	label := strings.TrimSpace(req.Label)
	if label == "" {
		return nil, errors.Validation("label is required")
	}
	if utf8.RuneCountInString(label) > MaxLabelLength {
		return nil, errors.Validationf("label must be at most %d characters", MaxLabelLength)
	}

	exists, err := s.repo.Exists(ctx, explorerID, *req.X, *req.Y)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.Conflictf("(%d, %d) is already bookmarked", *req.X, *req.Y)
	}

	b := Bookmark{
		ID:         uuid.NewString(),
		ExplorerID: explorerID,
		X:          *req.X,
		Y:          *req.Y,
		Label:      label,
		CreatedAt:  s.now().UTC().Truncate(time.Second),
	}
	if err := s.repo.Create(ctx, &b); err != nil {
		return nil, err
	}

	logger.Info("Bookmark created", "bookmark_id", b.ID, "x", b.X, "y", b.Y)

	v := s.view(b)
	return &v, nil
}

func (s *Service) Delete(ctx context.Context, explorerID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errors.NotFoundf("bookmark %s not found", id)
	}

	deleted, err := s.repo.Delete(ctx, explorerID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return errors.NotFoundf("bookmark %s not found", id)
	}
	return nil
}
