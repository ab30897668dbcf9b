package explorer

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"galaxy-server/internal/shared/errors"

	"github.com/google/uuid"
)

type Service struct {
	repo   *Repository
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo *Repository, logger *slog.Logger) *Service {
	logger.Debug("Initializing explorer service")

	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

func (s *Service) GetByID(ctx context.Context, id string) (*Explorer, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

// CreateGuest signs up an explorer without an external identity. An empty
// name gets a generated call sign.
func (s *Service) CreateGuest(ctx context.Context, name string) (*Explorer, error) {
	id := uuid.NewString()

	name = strings.TrimSpace(name)
	if name == "" {
		name = "Explorer-" + id[:8]
	}
	if err := validateName(name); err != nil {
		return nil, err
	}

	now := s.now().UTC().Truncate(time.Second)
	e := &Explorer{
		ID:             id,
		Name:           name,
		Provider:       ProviderGuest,
		ProviderUserID: id,
		CreatedAt:      now,
		LastLoginAt:    now,
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}

	s.logger.With("component", "explorer_service", "operation", "create_guest").
		Info("Guest explorer signed up", "explorer_id", e.ID)
	return e, nil
}

// FindOrCreateByProvider resolves an OAuth identity to an explorer,
// refreshing the display name and avatar on every login.
func (s *Service) FindOrCreateByProvider(ctx context.Context, provider, providerUserID, name, avatarURL string) (*Explorer, error) {
	logger := s.logger.With(
		"component", "explorer_service",
		"operation", "find_or_create_by_provider",
		"provider", provider,
	)

	if provider == "" || providerUserID == "" {
		return nil, errors.Validation("provider identity is required")
	}

	name = truncateName(strings.TrimSpace(name))
	if name == "" {
		name = provider + "-" + providerUserID
		name = truncateName(name)
	}

	now := s.now().UTC().Truncate(time.Second)

	existing, err := s.repo.GetByProvider(ctx, provider, providerUserID)
	if err != nil && errors.GetType(err) != errors.ErrorTypeNotFound {
		return nil, err
	}

	if existing != nil {
		if err := s.repo.UpdateLogin(ctx, existing.ID, name, avatarURL, now); err != nil {
			return nil, err
		}
		existing.Name = name
		existing.AvatarURL = avatarURL
		existing.LastLoginAt = now
		logger.Info("Explorer logged in", "explorer_id", existing.ID)
		return existing, nil
	}

	e := &Explorer{
		ID:             uuid.NewString(),
		Name:           name,
		Provider:       provider,
		ProviderUserID: providerUserID,
		AvatarURL:      avatarURL,
		CreatedAt:      now,
		LastLoginAt:    now,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}

	logger.Info("Explorer created from provider identity", "explorer_id", e.ID)
	return e, nil
}

func validateName(name string) error {
	if utf8.RuneCountInString(name) > MaxNameLength {
		return errors.Validationf("name must be at most %d characters", MaxNameLength)
	}
	for _, r := range name {
		if r < 0x20 || r == 0x7f {
			return errors.Validation("name must not contain control characters")
		}
	}
	return nil
}

func truncateName(name string) string {
	if utf8.RuneCountInString(name) <= MaxNameLength {
		return name
	}
	return string([]rune(name)[:MaxNameLength])
}
