package usecase

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/warehouse-backend/internal/entity"
	"github.com/rocketscienceinc/warehouse-backend/internal/warehouse"
)

// GameUseCase - everything a presentation adapter may do with a game. Only views leave this layer.
type GameUseCase interface {
	CreateGame(ctx context.Context) (*entity.View, error)
	GetView(ctx context.Context, gameID string) (*entity.View, error)
	DeleteGame(ctx context.Context, gameID string) error

	// SubmitCoordinate - a rejected coordinate returns the error together with the view
	// carrying the recorded failure.
	SubmitCoordinate(ctx context.Context, gameID, role string, x, y int) (*entity.View, error)
	TriggerRoundStart(ctx context.Context, gameID string) (*entity.View, error)
	Reset(ctx context.Context, gameID string) (*entity.View, error)
}

type gameService interface {
	CreateGame(ctx context.Context) (*entity.Game, error)
	GetGameByID(ctx context.Context, id string) (*entity.Game, error)
}

type gamePlayService interface {
	Submit(ctx context.Context, gameID string, input warehouse.Input) (*entity.Game, error)
	ResetGame(ctx context.Context, gameID string) (*entity.Game, error)
	CleanupGame(ctx context.Context, gameID string) error
}

type gameUseCase struct {
	gameService     gameService
	gamePlayService gamePlayService
}

func NewGameUseCase(gameService gameService, gamePlayService gamePlayService) GameUseCase {
	return &gameUseCase{
		gameService:     gameService,
		gamePlayService: gamePlayService,
	}
}

func (that *gameUseCase) CreateGame(ctx context.Context) (*entity.View, error) {
	game, err := that.gameService.CreateGame(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not create game: %w", err)
	}

	return game.View(), nil
}

func (that *gameUseCase) GetView(ctx context.Context, gameID string) (*entity.View, error) {
	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	return game.View(), nil
}

func (that *gameUseCase) DeleteGame(ctx context.Context, gameID string) error {
	if err := that.gamePlayService.CleanupGame(ctx, gameID); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	return nil
}

func (that *gameUseCase) SubmitCoordinate(ctx context.Context, gameID, role string, x, y int) (*entity.View, error) {
	parsedRole, err := entity.ParseRole(role)
	if err != nil {
		return nil, fmt.Errorf("invalid role: %w", err)
	}

	return that.submit(ctx, gameID, warehouse.Coordinate(parsedRole, x, y))
}

func (that *gameUseCase) TriggerRoundStart(ctx context.Context, gameID string) (*entity.View, error) {
	return that.submit(ctx, gameID, warehouse.RoundStart())
}

func (that *gameUseCase) Reset(ctx context.Context, gameID string) (*entity.View, error) {
	game, err := that.gamePlayService.ResetGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to reset game: %w", err)
	}

	return game.View(), nil
}

func (that *gameUseCase) submit(ctx context.Context, gameID string, input warehouse.Input) (*entity.View, error) {
	game, err := that.gamePlayService.Submit(ctx, gameID, input)
	if err != nil {
		if game != nil {
			return game.View(), fmt.Errorf("failed to submit %s: %w", input.Kind, err)
		}

		return nil, fmt.Errorf("failed to submit %s: %w", input.Kind, err)
	}

	return game.View(), nil
}
