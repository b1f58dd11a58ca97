package warehouse

import (
	"fmt"

	"github.com/rocketscienceinc/warehouse-backend/internal/apperror"
	"github.com/rocketscienceinc/warehouse-backend/internal/entity"
)

// InputKind - kind of input a presentation adapter can submit.
type InputKind string

const (
	InputCoordinate InputKind = "coordinate"
	InputRoundStart InputKind = "round_start"
)

// Input - a single user input addressed to a game.
type Input struct {
	Kind     InputKind
	Role     entity.Role
	Position entity.Position
}

func Coordinate(role entity.Role, x, y int) Input {
	return Input{Kind: InputCoordinate, Role: role, Position: entity.Position{X: x, Y: y}}
}

func RoundStart() Input {
	return Input{Kind: InputRoundStart}
}

type handler func(game *entity.Game, input Input) error

// Dispatcher - routes inputs by (phase, input kind). Pairs missing from the table are out of phase.
type Dispatcher struct {
	handlers map[entity.Phase]map[InputKind]handler
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		handlers: map[entity.Phase]map[InputKind]handler{
			entity.PhaseSetup: {
				InputCoordinate: place,
			},
			entity.PhasePlaying: {
				InputCoordinate: act,
			},
			entity.PhaseRoundTransition: {
				InputRoundStart: startRound,
			},
		},
	}
}

// Dispatch - applies input to game. A rejected input leaves the game as it was,
// apart from LastResult which records the failure unless the game has ended.
func (that *Dispatcher) Dispatch(game *entity.Game, input Input) error {
	if err := that.dispatch(game, input); err != nil {
		var target *entity.Position
		if input.Kind == InputCoordinate {
			target = &input.Position
		}

		// an ended game keeps its terminal result
		if !game.IsFinished() {
			game.Reject(input.Role, target, err)
		}

		return err
	}

	return nil
}

func (that *Dispatcher) dispatch(game *entity.Game, input Input) error {
	handle, ok := that.handlers[game.Phase][input.Kind]
	if !ok {
		if game.IsFinished() {
			return fmt.Errorf("%w: %w", apperror.ErrActionOutOfPhase, apperror.ErrGameFinished)
		}

		return fmt.Errorf("%w: %s input during %s", apperror.ErrActionOutOfPhase, input.Kind, game.Phase)
	}

	return handle(game, input)
}

func place(game *entity.Game, input Input) error {
	if placer := game.ActivePlacer(); input.Role != placer {
		return fmt.Errorf("%w: %s places now", apperror.ErrNotYourTurn, placer.DisplayName())
	}

	if err := game.Place(input.Position); err != nil {
		return fmt.Errorf("place %s: %w", input.Role, err)
	}

	return nil
}

func act(game *entity.Game, input Input) error {
	if input.Role != game.ActiveRole {
		return fmt.Errorf("%w: %s acts now", apperror.ErrNotYourTurn, game.ActiveRole.DisplayName())
	}

	if input.Role == entity.Mouse {
		if err := game.MoveMouse(input.Position); err != nil {
			return fmt.Errorf("move mouse: %w", err)
		}

		return nil
	}

	if err := game.KeeperAct(input.Position); err != nil {
		return fmt.Errorf("%s act: %w", input.Role, err)
	}

	return nil
}

func startRound(game *entity.Game, _ Input) error {
	if err := game.StartRound(); err != nil {
		return fmt.Errorf("start round: %w", err)
	}

	return nil
}
