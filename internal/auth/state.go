package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

const DefaultStateTTL = 10 * time.Minute

// StateManager issues one-time OAuth state tokens and remembers where to
// send the browser once the provider calls back
type StateManager struct {
	states map[string]StateEntry
	ttl    time.Duration
	now    func() time.Time
	mutex  sync.Mutex
}

type StateEntry struct {
	CreatedAt   time.Time
	Provider    string
	UserAgent   string
	RedirectURI string
}

func NewStateManager(ttl time.Duration) *StateManager {
	return &StateManager{
		states: make(map[string]StateEntry),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (sm *StateManager) GenerateState(provider, userAgent, redirectURI string) (string, error) {
	logger := slog.With("component", "state_manager", "operation", "generate", "provider", provider)

	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		logger.Error("Failed to generate random bytes for state token", "error", err)
		return "", fmt.Errorf("failed to generate state token: %w", err)
	}

	state := base64.URLEncoding.EncodeToString(b)

	sm.mutex.Lock()
	sm.states[state] = StateEntry{
		CreatedAt:   sm.now(),
		Provider:    provider,
		UserAgent:   userAgent,
		RedirectURI: redirectURI,
	}
	sm.mutex.Unlock()

	logger.Debug("OAuth state token generated and stored", "state_length", len(state))

	return state, nil
}

// ValidateState consumes state; a token can be validated once
func (sm *StateManager) ValidateState(state, provider, userAgent string) (StateEntry, error) {
	logger := slog.With("component", "state_manager", "operation", "validate", "provider", provider)

	if state == "" {
		return StateEntry{}, fmt.Errorf("state token is required")
	}

	sm.mutex.Lock()
	entry, exists := sm.states[state]
	delete(sm.states, state)
	sm.mutex.Unlock()

	if !exists {
		logger.Warn("Invalid or expired state token")
		return StateEntry{}, fmt.Errorf("invalid or expired state token")
	}

	age := sm.now().Sub(entry.CreatedAt)
	if age > sm.ttl {
		logger.Warn("Expired state token", "age_seconds", age.Seconds())
		return StateEntry{}, fmt.Errorf("state token has expired")
	}

	if entry.Provider != provider {
		logger.Warn("State token provider mismatch",
			"expected_provider", entry.Provider,
			"received_provider", provider)
		return StateEntry{}, fmt.Errorf("state token provider mismatch")
	}

	if entry.UserAgent != userAgent {
		logger.Warn("State token user agent mismatch",
			"stored_user_agent", entry.UserAgent,
			"received_user_agent", userAgent)
	}

	return entry, nil
}

// RunCleanup drops expired tokens every interval until ctx is done
func (sm *StateManager) RunCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sm.cleanupExpiredStates()
		}
	}
}

func (sm *StateManager) cleanupExpiredStates() int {
	logger := slog.With("component", "state_manager", "operation", "cleanup_expired")

	sm.mutex.Lock()
	defer sm.mutex.Unlock()

	now := sm.now()
	expiredCount := 0

	for state, entry := range sm.states {
		if now.Sub(entry.CreatedAt) > sm.ttl {
			delete(sm.states, state)
			expiredCount++
		}
	}

	if expiredCount > 0 {
		logger.Debug("Cleaned up expired state tokens",
			"expired_count", expiredCount,
			"remaining_count", len(sm.states))
	}
	return expiredCount
}

func (sm *StateManager) Active() int {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()
	return len(sm.states)
}
