package selection

import (
	"context"
	"sync"
	"time"

	"galaxy-server/internal/procgen"
)

type memoryEntry struct {
	coord     procgen.Coordinate
	expiresAt time.Time
}

// MemoryStore is the single-process fallback used when Redis is disabled
type MemoryStore struct {
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
	mutex   sync.RWMutex
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memoryEntry),
	}
}

func (s *MemoryStore) Get(ctx context.Context, explorerID string) (procgen.Coordinate, bool, error) {
	if err := ctx.Err(); err != nil {
		return procgen.Coordinate{}, false, err
	}

	s.mutex.RLock()
	entry, ok := s.entries[explorerID]
	s.mutex.RUnlock()

	if !ok {
		return procgen.Coordinate{}, false, nil
	}

	if s.ttl > 0 && !s.now().Before(entry.expiresAt) {
		s.mutex.Lock()
		if current, still := s.entries[explorerID]; still && current == entry {
			delete(s.entries, explorerID)
		}
		s.mutex.Unlock()
		return procgen.Coordinate{}, false, nil
	}

	return entry.coord, true, nil
}

func (s *MemoryStore) Set(ctx context.Context, explorerID string, coord procgen.Coordinate) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mutex.Lock()
	s.entries[explorerID] = memoryEntry{coord: coord, expiresAt: s.now().Add(s.ttl)}
	s.mutex.Unlock()
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context, explorerID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mutex.Lock()
	delete(s.entries, explorerID)
	s.mutex.Unlock()
	return nil
}
