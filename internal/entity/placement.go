package entity

import (
	"fmt"

	"github.com/rocketscienceinc/warehouse-backend/internal/apperror"
)

// Place - places the piece of the active placer at pos.
func (that *Game) Place(pos Position) error {
	if err := that.ConfirmPhase(PhaseSetup); err != nil {
		return err
	}

	if err := that.checkBounds(pos); err != nil {
		return err
	}

	role := that.ActivePlacer()

	if err := that.validatePlacement(role, pos); err != nil {
		return err
	}

	if role == Mouse {
		that.MousePosition = ptr(pos)
		that.MousePath = append(that.MousePath, pos)
	} else {
		that.KeeperPositions[role.KeeperIndex()] = ptr(pos)
	}

	that.PlacementIndex++

	result := ActionResult{Outcome: OutcomePlaced, Role: role, Target: ptr(pos)}

	if that.PlacementIndex == len(turnOrder) {
		that.Phase = PhaseRoundTransition
		that.ActiveRole = NoRole
		result.Outcome = OutcomePlacementComplete
	} else {
		that.ActiveRole = that.ActivePlacer()
	}

	that.LastResult = result

	return nil
}

func (that *Game) validatePlacement(role Role, pos Position) error {
	if role == Mouse {
		if that.Board.KindAt(pos) != Storage {
			return fmt.Errorf("%w: mouse goes on a storage cell, %s is %s", apperror.ErrInvalidPlacement, pos, that.Board.KindAt(pos))
		}

		return nil
	}

	if !that.Board.IsIntersection(pos) {
		return fmt.Errorf("%w: keepers go on a road intersection, %s is not", apperror.ErrInvalidPlacement, pos)
	}

	if other := that.keeperAt(pos); other != NoRole {
		return fmt.Errorf("%w: %s already stands at %s", apperror.ErrPositionOccupied, other.DisplayName(), pos)
	}

	return nil
}
