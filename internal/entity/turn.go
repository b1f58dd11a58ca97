package entity

import (
	"fmt"

	"github.com/rocketscienceinc/warehouse-backend/internal/apperror"
)

// MoveMouse - hops the mouse two cells along one axis to an unvisited storage cell.
func (that *Game) MoveMouse(dest Position) error {
	if err := that.confirmActing(Mouse); err != nil {
		return err
	}

	if err := that.checkBounds(dest); err != nil {
		return err
	}

	if that.Board.KindAt(dest) != Storage {
		return fmt.Errorf("%w: %s", apperror.ErrNotStorage, dest)
	}

	if !isOrthogonalHop(*that.MousePosition, dest) {
		return fmt.Errorf("%w: mouse hops two cells along one axis, %s -> %s", apperror.ErrIllegalDistance, *that.MousePosition, dest)
	}

	if that.inMousePath(dest) {
		return fmt.Errorf("%w: %s", apperror.ErrPathRevisit, dest)
	}

	that.MousePosition = ptr(dest)
	that.MousePath = append(that.MousePath, dest)

	result := ActionResult{Outcome: OutcomeMoved, Role: Mouse, Target: ptr(dest)}
	that.advanceTurn(&result)
	that.LastResult = result

	return nil
}

// KeeperAct - the active keeper moves when dest is road, checks when dest is storage.
func (that *Game) KeeperAct(dest Position) error {
	if err := that.ConfirmPhase(PhasePlaying); err != nil {
		return err
	}

	role := that.ActiveRole
	if !role.IsKeeper() {
		return fmt.Errorf("%w: %s is not a keeper", apperror.ErrNotYourTurn, role.DisplayName())
	}

	if err := that.checkBounds(dest); err != nil {
		return err
	}

	if that.Board.KindAt(dest) == Road {
		return that.moveKeeper(role, dest)
	}

	return that.checkStorage(role, dest)
}

func (that *Game) moveKeeper(role Role, dest Position) error {
	current := *that.KeeperPositions[role.KeeperIndex()]

	if !that.Board.IsIntersection(dest) {
		return fmt.Errorf("%w: %s", apperror.ErrNotIntersection, dest)
	}

	if !isOrthogonalHop(current, dest) {
		return fmt.Errorf("%w: keepers walk two cells along one axis, %s -> %s", apperror.ErrIllegalDistance, current, dest)
	}

	if other := that.keeperAt(dest); other != NoRole {
		return fmt.Errorf("%w: %s already stands at %s", apperror.ErrPositionOccupied, other.DisplayName(), dest)
	}

	that.KeeperPositions[role.KeeperIndex()] = ptr(dest)

	result := ActionResult{Outcome: OutcomeMoved, Role: role, Target: ptr(dest)}
	that.advanceTurn(&result)
	that.LastResult = result

	return nil
}

func (that *Game) checkStorage(role Role, dest Position) error {
	current := *that.KeeperPositions[role.KeeperIndex()]

	if !isDiagonalNeighbour(current, dest) {
		return fmt.Errorf("%w: keepers check a diagonal neighbour, %s -> %s", apperror.ErrIllegalDistance, current, dest)
	}

	result := ActionResult{Role: role, Target: ptr(dest)}

	switch {
	case that.MousePosition != nil && *that.MousePosition == dest:
		result.Outcome = OutcomeCaptured
		that.CapturedBy = role
		that.finish(WinnerKeepers)
		that.LastResult = result

		return nil
	case that.inMousePath(dest):
		result.Outcome = OutcomeFootprintFound
		if indexOf(that.FoundFootprints, dest) < 0 {
			that.FoundFootprints = append(that.FoundFootprints, dest)
		}
	default:
		result.Outcome = OutcomeCheckedEmpty
	}

	that.advanceTurn(&result)
	that.LastResult = result

	return nil
}

// StartRound - leaves the round transition; ends the game once MaxTurns rounds are played.
func (that *Game) StartRound() error {
	if err := that.ConfirmPhase(PhaseRoundTransition); err != nil {
		return err
	}

	if !that.Started {
		that.Started = true
		that.Phase = PhasePlaying
		that.ActiveRole = Mouse
		that.LastResult = ActionResult{Outcome: OutcomeRoundStarted}

		return nil
	}

	if that.TurnNumber+1 > MaxTurns {
		that.finish(WinnerMouse)
		that.LastResult = ActionResult{Outcome: OutcomeGameEnded}

		return nil
	}

	that.TurnNumber++
	that.Phase = PhasePlaying
	that.ActiveRole = Mouse
	that.LastResult = ActionResult{Outcome: OutcomeRoundStarted}

	return nil
}

func (that *Game) confirmActing(role Role) error {
	if err := that.ConfirmPhase(PhasePlaying); err != nil {
		return err
	}

	if that.ActiveRole != role {
		return fmt.Errorf("%w: %s acts now", apperror.ErrNotYourTurn, that.ActiveRole.DisplayName())
	}

	return nil
}

// advanceTurn - passes the turn on; Keeper3 closes the round.
func (that *Game) advanceTurn(result *ActionResult) {
	if that.ActiveRole == Keeper3 {
		that.Phase = PhaseRoundTransition
		that.ActiveRole = NoRole
		result.RoundEnded = true

		return
	}

	that.ActiveRole = that.ActiveRole.Next()
}
