package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

const lockKeyPrefix = "lock:game:"

var ErrLockLost = errors.New("game lock was lost before release")

// Unlock - releases a lock taken by Locker.
type Unlock func(ctx context.Context) error

// Locker - serialises state changing calls on a single game.
type Locker interface {
	Lock(ctx context.Context, gameID string) (Unlock, error)
}

type localLocker struct {
	mu    sync.Mutex
	locks map[string]*gameMutex
}

// gameMutex - refs counts the holder and waiters, the entry is dropped when it reaches zero.
type gameMutex struct {
	sync.Mutex
	refs int
}

// NewLocalLocker - per game mutexes for a single process.
func NewLocalLocker() Locker {
	return &localLocker{
		locks: make(map[string]*gameMutex),
	}
}

func (that *localLocker) Lock(ctx context.Context, gameID string) (Unlock, error) {
	gameLock := that.acquire(gameID)

	acquired := make(chan struct{})
	go func() {
		gameLock.Lock()
		close(acquired)
	}()

	select {
	case <-acquired:
		return func(context.Context) error {
			gameLock.Unlock()
			that.release(gameID, gameLock)

			return nil
		}, nil
	case <-ctx.Done():
		// the lock is handed back as soon as the waiting goroutine gets it
		go func() {
			<-acquired
			gameLock.Unlock()
			that.release(gameID, gameLock)
		}()

		return nil, fmt.Errorf("failed to lock game %s: %w", gameID, ctx.Err())
	}
}

func (that *localLocker) acquire(gameID string) *gameMutex {
	that.mu.Lock()
	defer that.mu.Unlock()

	gameLock, ok := that.locks[gameID]
	if !ok {
		gameLock = &gameMutex{}
		that.locks[gameID] = gameLock
	}
	gameLock.refs++

	return gameLock
}

func (that *localLocker) release(gameID string, gameLock *gameMutex) {
	that.mu.Lock()
	defer that.mu.Unlock()

	gameLock.refs--
	if gameLock.refs == 0 && that.locks[gameID] == gameLock {
		delete(that.locks, gameID)
	}
}

type redisLocker struct {
	rs     *redsync.Redsync
	expiry time.Duration
}

// NewRedisLocker - redsync mutex per game, shared by every instance using the same redis.
func NewRedisLocker(client *redis.Client, expiry time.Duration) Locker {
	return &redisLocker{
		rs:     redsync.New(goredis.NewPool(client)),
		expiry: expiry,
	}
}

func (that *redisLocker) Lock(ctx context.Context, gameID string) (Unlock, error) {
	mutex := that.rs.NewMutex(lockKeyPrefix+gameID, redsync.WithExpiry(that.expiry))

	if err := mutex.LockContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to lock game %s: %w", gameID, err)
	}

	return func(ctx context.Context) error {
		ok, err := mutex.UnlockContext(ctx)
		if err != nil {
			return fmt.Errorf("failed to unlock game %s: %w", gameID, err)
		}

		if !ok {
			return fmt.Errorf("%w: %s", ErrLockLost, gameID)
		}

		return nil
	}, nil
}
