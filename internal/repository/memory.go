package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rocketscienceinc/warehouse-backend/internal/apperror"
	"github.com/rocketscienceinc/warehouse-backend/internal/entity"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

type memoryGameRepository struct {
	mu        sync.RWMutex
	games     map[string]memoryEntry
	ttl       time.Duration
	now       func() time.Time
	nextSweep time.Time
}

// NewMemoryGameRepository - process local storage with the same JSON round trip as the redis one,
// so callers never share a *entity.Game with the store.
func NewMemoryGameRepository(ttl time.Duration) GameRepository {
	return &memoryGameRepository{
		games: make(map[string]memoryEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (that *memoryGameRepository) CreateOrUpdate(_ context.Context, game *entity.Game) error {
	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	entry := memoryEntry{data: gameJSON}
	if that.ttl > 0 {
		entry.expiresAt = that.now().Add(that.ttl)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	that.sweepLocked()
	that.games[game.ID] = entry

	return nil
}

func (that *memoryGameRepository) GetByID(_ context.Context, id string) (*entity.Game, error) {
	that.mu.RLock()
	entry, ok := that.games[id]
	that.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrGameNotFound, id)
	}

	if that.expired(entry) {
		that.mu.Lock()
		if current, ok := that.games[id]; ok && that.expired(current) {
			delete(that.games, id)
		}
		that.mu.Unlock()

		return nil, fmt.Errorf("%w: %s", apperror.ErrGameNotFound, id)
	}

	var existingGame entity.Game
	if err := json.Unmarshal(entry.data, &existingGame); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &existingGame, nil
}

func (that *memoryGameRepository) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.games, id)

	return nil
}

func (that *memoryGameRepository) expired(entry memoryEntry) bool {
	return !entry.expiresAt.IsZero() && that.now().After(entry.expiresAt)
}

// sweepLocked - drops every expired game, at most once per ttl. Callers hold mu.
func (that *memoryGameRepository) sweepLocked() {
	if that.ttl <= 0 {
		return
	}

	now := that.now()
	if now.Before(that.nextSweep) {
		return
	}

	for id, entry := range that.games {
		if that.expired(entry) {
			delete(that.games, id)
		}
	}

	that.nextSweep = now.Add(that.ttl)
}
