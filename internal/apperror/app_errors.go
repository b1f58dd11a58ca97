package apperror

import "errors"

var (
	ErrInvalidPlacement = errors.New("invalid placement for this piece")
	ErrPositionOccupied = errors.New("position is already occupied")
	ErrNotStorage       = errors.New("target is not a storage cell")
	ErrNotIntersection  = errors.New("target is not a road intersection")
	ErrIllegalDistance  = errors.New("illegal distance for this action")
	ErrPathRevisit      = errors.New("mouse cannot revisit a storage cell")
	ErrActionOutOfPhase = errors.New("action is not expected in this phase")

	ErrOutOfBounds  = errors.New("position is out of the board")
	ErrNotYourTurn  = errors.New("it's not your turn")
	ErrUnknownRole  = errors.New("unknown role")
	ErrGameFinished = errors.New("game is already finished")
	ErrGameNotFound = errors.New("game not found")
)

// Failure kinds reported to the presentation layer.
const (
	KindInvalidPlacement = "invalid_placement"
	KindPositionOccupied = "position_occupied"
	KindNotStorage       = "not_storage"
	KindNotIntersection  = "not_intersection"
	KindIllegalDistance  = "illegal_distance"
	KindPathRevisit      = "path_revisit"
	KindActionOutOfPhase = "action_out_of_phase"
	KindOutOfBounds      = "out_of_bounds"
	KindNotYourTurn      = "not_your_turn"
	KindUnknownRole      = "unknown_role"
	KindGameNotFound     = "game_not_found"
	KindInternal         = "internal"
)

var kinds = []struct {
	err  error
	kind string
}{
	{ErrInvalidPlacement, KindInvalidPlacement},
	{ErrPositionOccupied, KindPositionOccupied},
	{ErrNotStorage, KindNotStorage},
	{ErrNotIntersection, KindNotIntersection},
	{ErrIllegalDistance, KindIllegalDistance},
	{ErrPathRevisit, KindPathRevisit},
	{ErrActionOutOfPhase, KindActionOutOfPhase},
	{ErrOutOfBounds, KindOutOfBounds},
	{ErrNotYourTurn, KindNotYourTurn},
	{ErrUnknownRole, KindUnknownRole},
	{ErrGameNotFound, KindGameNotFound},
}

// Kind - returns the wire kind of a validation error, or KindInternal.
func Kind(err error) string {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}

	return KindInternal
}

// IsValidation - reports whether err is a user input rejection rather than a failure.
func IsValidation(err error) bool {
	kind := Kind(err)
	return kind != KindInternal && kind != KindGameNotFound
}
