package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/warehouse-backend/internal/apperror"
	"github.com/rocketscienceinc/warehouse-backend/internal/entity"
	"github.com/rocketscienceinc/warehouse-backend/internal/repository"
	"github.com/rocketscienceinc/warehouse-backend/internal/warehouse"
)

type GamePlayService interface {
	// Submit - applies input to the game. A rejected input still returns the game,
	// with the failure recorded in its last result.
	Submit(ctx context.Context, gameID string, input warehouse.Input) (*entity.Game, error)
	ResetGame(ctx context.Context, gameID string) (*entity.Game, error)
	CleanupGame(ctx context.Context, gameID string) error
}

type gameLocker interface {
	Lock(ctx context.Context, gameID string) (repository.Unlock, error)
}

type gamePlayService struct {
	logger *slog.Logger

	gameService GameService
	locker      gameLocker
	dispatcher  *warehouse.Dispatcher
}

func NewGamePlayService(logger *slog.Logger, gameService GameService, locker gameLocker) GamePlayService {
	return &gamePlayService{
		logger:      logger,
		gameService: gameService,
		locker:      locker,
		dispatcher:  warehouse.NewDispatcher(),
	}
}

func (that *gamePlayService) Submit(ctx context.Context, gameID string, input warehouse.Input) (*entity.Game, error) {
	log := that.logger.With("method", "Submit", "gameID", gameID, "input", input.Kind, "role", input.Role)

	var game *entity.Game
	var actionErr error

	err := that.withLock(ctx, gameID, func() error {
		var err error

		game, err = that.gameService.GetGameByID(ctx, gameID)
		if err != nil {
			return fmt.Errorf("failed to get game by id: %w", err)
		}

		actionErr = that.dispatcher.Dispatch(game, input)

		if err = that.gameService.UpdateGame(ctx, game); err != nil {
			return fmt.Errorf("failed to update game: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if actionErr != nil {
		log.Debug("input rejected", "kind", apperror.Kind(actionErr), "error", actionErr)
		return game, fmt.Errorf("input rejected: %w", actionErr)
	}

	log.Debug("input applied", "outcome", game.LastResult.Outcome, "phase", game.Phase)

	if game.IsFinished() {
		log.Info("game finished", "winner", game.Winner, "turn", game.TurnNumber)
	}

	return game, nil
}

// ResetGame - discards the game and starts a fresh one under the same id.
func (that *gamePlayService) ResetGame(ctx context.Context, gameID string) (*entity.Game, error) {
	var game *entity.Game

	err := that.withLock(ctx, gameID, func() error {
		if _, err := that.gameService.GetGameByID(ctx, gameID); err != nil {
			return fmt.Errorf("failed to get game by id: %w", err)
		}

		game = entity.NewGame(gameID)
		if err := that.gameService.UpdateGame(ctx, game); err != nil {
			return fmt.Errorf("failed to update game: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return game, nil
}

func (that *gamePlayService) CleanupGame(ctx context.Context, gameID string) error {
	return that.withLock(ctx, gameID, func() error {
		if err := that.gameService.DeleteGame(ctx, gameID); err != nil {
			return fmt.Errorf("failed to delete game: %w", err)
		}

		return nil
	})
}

// withLock - runs fn while holding the lock of gameID.
func (that *gamePlayService) withLock(ctx context.Context, gameID string, fn func() error) error {
	log := that.logger.With("method", "withLock", "gameID", gameID)

	unlock, err := that.locker.Lock(ctx, gameID)
	if err != nil {
		return fmt.Errorf("failed to lock game: %w", err)
	}

	defer func() {
		if err := unlock(context.WithoutCancel(ctx)); err != nil {
			log.Error("failed to unlock game", "error", err)
		}
	}()

	return fn()
}
