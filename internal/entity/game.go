package entity

import (
	"fmt"

	"github.com/rocketscienceinc/warehouse-backend/internal/apperror"
)

// MaxTurns - rounds the mouse has to survive.
const MaxTurns = 10

// Game - authoritative state of a single warehouse game.
type Game struct {
	ID              string                 `json:"id"`
	Board           Board                  `json:"board"`
	Phase           Phase                  `json:"phase"`
	TurnNumber      int                    `json:"turn_number"`
	ActiveRole      Role                   `json:"active_role"`
	PlacementIndex  int                    `json:"placement_index"`
	MousePosition   *Position              `json:"mouse_position,omitempty"`
	MousePath       []Position             `json:"mouse_path"`
	KeeperPositions [KeeperCount]*Position `json:"keeper_positions"`
	FoundFootprints []Position             `json:"found_footprints"`
	Started         bool                   `json:"started"`
	Winner          string                 `json:"winner,omitempty"`
	CapturedBy      Role                   `json:"captured_by,omitempty"`
	LastResult      ActionResult           `json:"last_result"`
}

func NewGame(id string) *Game {
	return &Game{
		ID:              id,
		Board:           GenerateBoard(BoardSize),
		Phase:           PhaseSetup,
		TurnNumber:      1,
		ActiveRole:      Mouse,
		PlacementIndex:  0,
		MousePath:       []Position{},
		FoundFootprints: []Position{},
	}
}

func (that *Game) IsSetup() bool {
	return that.Phase == PhaseSetup
}

func (that *Game) IsPlaying() bool {
	return that.Phase == PhasePlaying
}

func (that *Game) IsRoundTransition() bool {
	return that.Phase == PhaseRoundTransition
}

func (that *Game) IsFinished() bool {
	return that.Phase == PhaseEnded
}

// ActivePlacer - role that still has to place its piece, NoRole once setup is done.
func (that *Game) ActivePlacer() Role {
	if that.PlacementIndex < 0 || that.PlacementIndex >= len(turnOrder) {
		return NoRole
	}

	return turnOrder[that.PlacementIndex]
}

// ConfirmPhase - returns nil when the game is in phase, an out-of-phase error otherwise.
func (that *Game) ConfirmPhase(phase Phase) error {
	if that.Phase == phase {
		return nil
	}

	if that.IsFinished() {
		return fmt.Errorf("%w: %w", apperror.ErrActionOutOfPhase, apperror.ErrGameFinished)
	}

	return fmt.Errorf("%w: expected %s, game is in %s", apperror.ErrActionOutOfPhase, phase, that.Phase)
}

// Reject - records a rejected action as the last result; nothing else changes.
func (that *Game) Reject(role Role, target *Position, err error) {
	that.LastResult = ActionResult{
		Outcome: OutcomeRejected,
		Role:    role,
		Target:  target,
		Failure: apperror.Kind(err),
	}
}

// keeperAt - the keeper standing on pos, NoRole when nobody does.
func (that *Game) keeperAt(pos Position) Role {
	for i, keeper := range that.KeeperPositions {
		if keeper != nil && *keeper == pos {
			return KeeperRole(i)
		}
	}

	return NoRole
}

func (that *Game) inMousePath(pos Position) bool {
	return indexOf(that.MousePath, pos) >= 0
}

func (that *Game) finish(winner string) {
	that.Phase = PhaseEnded
	that.ActiveRole = NoRole
	that.Winner = winner
}

func (that *Game) checkBounds(pos Position) error {
	if !that.Board.InBounds(pos) {
		return fmt.Errorf("%w: %s", apperror.ErrOutOfBounds, pos)
	}

	return nil
}

func indexOf(positions []Position, pos Position) int {
	for i, p := range positions {
		if p == pos {
			return i
		}
	}

	return -1
}

func ptr(pos Position) *Position {
	return &pos
}
