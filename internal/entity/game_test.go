package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/warehouse-backend/internal/apperror"
)

func pos(x, y int) Position {
	return Position{X: x, Y: y}
}

// setupGame - places the mouse and keepers in turn order and starts the first round.
func setupGame(t *testing.T, mouse, keeper1, keeper2, keeper3 Position) *Game {
	t.Helper()

	game := NewGame("game-1")
	for _, p := range []Position{mouse, keeper1, keeper2, keeper3} {
		require.NoError(t, game.Place(p))
	}
	require.NoError(t, game.StartRound())

	return game
}

func snapshot(t *testing.T, game *Game) *Game {
	t.Helper()

	raw, err := json.Marshal(game)
	require.NoError(t, err)

	var clone Game
	require.NoError(t, json.Unmarshal(raw, &clone))

	return &clone
}

func TestNewGame(t *testing.T) {
	// Given: a new game
	game := NewGame("game-1")

	// Then: it waits for the mouse to be placed
	assert.Equal(t, "game-1", game.ID)
	assert.Equal(t, PhaseSetup, game.Phase)
	assert.Equal(t, 1, game.TurnNumber)
	assert.Equal(t, Mouse, game.ActiveRole)
	assert.Equal(t, Mouse, game.ActivePlacer())
	assert.Nil(t, game.MousePosition)
	assert.Empty(t, game.MousePath)
	assert.Empty(t, game.FoundFootprints)
	assert.False(t, game.Started)
}

func TestGame_Place(t *testing.T) {
	t.Run("Places every piece and completes setup", func(t *testing.T) {
		// Given: a new game
		game := NewGame("game-1")

		// When: the mouse is placed on storage
		require.NoError(t, game.Place(pos(0, 0)))

		// Then: the mouse is recorded and keeper1 places next
		assert.Equal(t, pos(0, 0), *game.MousePosition)
		assert.Equal(t, []Position{pos(0, 0)}, game.MousePath)
		assert.Equal(t, Keeper1, game.ActiveRole)
		assert.Equal(t, OutcomePlaced, game.LastResult.Outcome)

		// When: the keepers are placed on intersections
		require.NoError(t, game.Place(pos(1, 1)))
		require.NoError(t, game.Place(pos(5, 1)))
		require.NoError(t, game.Place(pos(7, 7)))

		// Then: setup is over
		assert.Equal(t, PhaseRoundTransition, game.Phase)
		assert.Equal(t, NoRole, game.ActiveRole)
		assert.Equal(t, 4, game.PlacementIndex)
		assert.Equal(t, OutcomePlacementComplete, game.LastResult.Outcome)
		assert.Equal(t, pos(5, 1), *game.KeeperPositions[1])
	})

	t.Run("Error when mouse is placed on road", func(t *testing.T) {
		// Given: a new game
		game := NewGame("game-1")
		before := snapshot(t, game)

		// When: the mouse is placed on a road cell
		err := game.Place(pos(1, 0))

		// Then: the placement is rejected and nothing changes
		require.ErrorIs(t, err, apperror.ErrInvalidPlacement)
		assert.Equal(t, before, game)
	})

	t.Run("Error when keeper is placed off an intersection", func(t *testing.T) {
		// Given: the mouse is placed
		game := NewGame("game-1")
		require.NoError(t, game.Place(pos(0, 0)))
		before := snapshot(t, game)

		// When: keeper1 is placed on storage and on an edge road
		errStorage := game.Place(pos(2, 2))
		errEdge := game.Place(pos(1, 0))

		// Then: both are rejected
		require.ErrorIs(t, errStorage, apperror.ErrInvalidPlacement)
		require.ErrorIs(t, errEdge, apperror.ErrInvalidPlacement)
		assert.Equal(t, before, game)
	})

	t.Run("Error when keeper is placed on another keeper", func(t *testing.T) {
		// Given: keeper1 stands on (1, 1)
		game := NewGame("game-1")
		require.NoError(t, game.Place(pos(0, 0)))
		require.NoError(t, game.Place(pos(1, 1)))
		before := snapshot(t, game)

		// When: keeper2 is placed on the same cell
		err := game.Place(pos(1, 1))

		// Then: the position is occupied
		require.ErrorIs(t, err, apperror.ErrPositionOccupied)
		assert.Equal(t, before, game)
	})

	t.Run("Error when position is out of the board", func(t *testing.T) {
		game := NewGame("game-1")

		err := game.Place(pos(BoardSize, 0))

		require.ErrorIs(t, err, apperror.ErrOutOfBounds)
	})

	t.Run("Error when placing after setup", func(t *testing.T) {
		game := setupGame(t, pos(0, 0), pos(1, 1), pos(5, 1), pos(7, 7))

		err := game.Place(pos(2, 2))

		require.ErrorIs(t, err, apperror.ErrActionOutOfPhase)
	})
}

func TestGame_StartRound(t *testing.T) {
	t.Run("First start keeps turn one", func(t *testing.T) {
		// Given: all pieces are placed
		game := NewGame("game-1")
		for _, p := range []Position{pos(0, 0), pos(1, 1), pos(5, 1), pos(7, 7)} {
			require.NoError(t, game.Place(p))
		}

		// When: the round is started
		require.NoError(t, game.StartRound())

		// Then: the mouse plays turn one
		assert.Equal(t, PhasePlaying, game.Phase)
		assert.Equal(t, Mouse, game.ActiveRole)
		assert.Equal(t, 1, game.TurnNumber)
		assert.True(t, game.Started)
		assert.Equal(t, OutcomeRoundStarted, game.LastResult.Outcome)
	})

	t.Run("Error when round is started during play", func(t *testing.T) {
		game := setupGame(t, pos(0, 0), pos(1, 1), pos(5, 1), pos(7, 7))

		err := game.StartRound()

		require.ErrorIs(t, err, apperror.ErrActionOutOfPhase)
		assert.Equal(t, PhasePlaying, game.Phase)
	})

	t.Run("Error when round is started during setup", func(t *testing.T) {
		game := NewGame("game-1")

		err := game.StartRound()

		require.ErrorIs(t, err, apperror.ErrActionOutOfPhase)
	})
}

func TestGame_MoveMouse(t *testing.T) {
	t.Run("Moves two cells along one axis", func(t *testing.T) {
		// Given: a started game with the mouse on (0, 0)
		game := setupGame(t, pos(0, 0), pos(1, 1), pos(5, 1), pos(7, 7))

		// When: the mouse hops to (0, 2)
		require.NoError(t, game.MoveMouse(pos(0, 2)))

		// Then: the path grows by exactly the destination and keeper1 acts
		assert.Equal(t, pos(0, 2), *game.MousePosition)
		assert.Equal(t, []Position{pos(0, 0), pos(0, 2)}, game.MousePath)
		assert.Equal(t, Keeper1, game.ActiveRole)
		assert.Equal(t, OutcomeMoved, game.LastResult.Outcome)
	})

	t.Run("Rejects illegal destinations without changing state", func(t *testing.T) {
		game := setupGame(t, pos(2, 2), pos(1, 1), pos(5, 1), pos(7, 7))
		before := snapshot(t, game)

		cases := []struct {
			name string
			dest Position
			err  error
		}{
			{"road cell", pos(2, 3), apperror.ErrNotStorage},
			{"diagonal hop", pos(4, 4), apperror.ErrIllegalDistance},
			{"long hop", pos(2, 6), apperror.ErrIllegalDistance},
			{"current cell", pos(2, 2), apperror.ErrIllegalDistance},
			{"off the board", pos(2, -2), apperror.ErrOutOfBounds},
		}

		for _, tc := range cases {
			err := game.MoveMouse(tc.dest)

			require.ErrorIs(t, err, tc.err, tc.name)
			assert.Equal(t, before, game, tc.name)
		}
	})

	t.Run("Error when mouse revisits a storage cell", func(t *testing.T) {
		// Given: the mouse went from (0, 0) to (0, 2) and the round is over
		game := setupGame(t, pos(0, 0), pos(1, 1), pos(5, 1), pos(7, 7))
		require.NoError(t, game.MoveMouse(pos(0, 2)))
		require.NoError(t, game.KeeperAct(pos(2, 2)))
		require.NoError(t, game.KeeperAct(pos(4, 0)))
		require.NoError(t, game.KeeperAct(pos(8, 8)))
		require.NoError(t, game.StartRound())
		before := snapshot(t, game)

		// When: the mouse tries to go back to (0, 0)
		err := game.MoveMouse(pos(0, 0))

		// Then: the move is rejected
		require.ErrorIs(t, err, apperror.ErrPathRevisit)
		assert.Equal(t, before, game)
	})

	t.Run("Error when a keeper is active", func(t *testing.T) {
		game := setupGame(t, pos(0, 0), pos(1, 1), pos(5, 1), pos(7, 7))
		require.NoError(t, game.MoveMouse(pos(0, 2)))

		err := game.MoveMouse(pos(0, 4))

		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
	})
}

func TestGame_KeeperAct(t *testing.T) {
	t.Run("Keeper finds a footprint", func(t *testing.T) {
		// Given: the mouse moved from (0, 0) to (0, 2)
		game := setupGame(t, pos(0, 0), pos(1, 1), pos(5, 1), pos(7, 7))
		require.NoError(t, game.MoveMouse(pos(0, 2)))

		// When: keeper1 checks (0, 0)
		require.NoError(t, game.KeeperAct(pos(0, 0)))

		// Then: the footprint is found and keeper2 acts
		assert.Equal(t, OutcomeFootprintFound, game.LastResult.Outcome)
		assert.Equal(t, Keeper1, game.LastResult.Role)
		assert.Equal(t, []Position{pos(0, 0)}, game.FoundFootprints)
		assert.Equal(t, Keeper2, game.ActiveRole)
	})

	t.Run("Repeated footprint is reported but stored once", func(t *testing.T) {
		// Given: keeper1 already found the footprint on (0, 0)
		game := setupGame(t, pos(0, 0), pos(1, 1), pos(5, 1), pos(7, 7))
		require.NoError(t, game.MoveMouse(pos(0, 2)))
		require.NoError(t, game.KeeperAct(pos(0, 0)))
		require.NoError(t, game.KeeperAct(pos(4, 0)))
		require.NoError(t, game.KeeperAct(pos(8, 8)))
		require.NoError(t, game.StartRound())
		require.NoError(t, game.MoveMouse(pos(0, 4)))

		// When: keeper1 checks (0, 0) again
		require.NoError(t, game.KeeperAct(pos(0, 0)))

		// Then: the outcome is repeated and the list is unchanged
		assert.Equal(t, OutcomeFootprintFound, game.LastResult.Outcome)
		assert.Equal(t, []Position{pos(0, 0)}, game.FoundFootprints)
	})

	t.Run("Keeper checks an empty cell", func(t *testing.T) {
		game := setupGame(t, pos(0, 0), pos(1, 1), pos(5, 1), pos(7, 7))
		require.NoError(t, game.MoveMouse(pos(0, 2)))

		require.NoError(t, game.KeeperAct(pos(2, 2)))

		assert.Equal(t, OutcomeCheckedEmpty, game.LastResult.Outcome)
		assert.Empty(t, game.FoundFootprints)
		assert.Equal(t, Keeper2, game.ActiveRole)
	})

	t.Run("Keeper captures the mouse", func(t *testing.T) {
		// Given: the mouse stands on (0, 2)
		game := setupGame(t, pos(0, 0), pos(1, 1), pos(5, 1), pos(7, 7))
		require.NoError(t, game.MoveMouse(pos(0, 2)))

		// When: keeper1 checks (0, 2)
		require.NoError(t, game.KeeperAct(pos(0, 2)))

		// Then: keepers win and the turn does not advance
		assert.Equal(t, OutcomeCaptured, game.LastResult.Outcome)
		assert.Equal(t, PhaseEnded, game.Phase)
		assert.Equal(t, WinnerKeepers, game.Winner)
		assert.Equal(t, Keeper1, game.CapturedBy)
		assert.Equal(t, NoRole, game.ActiveRole)
		assert.True(t, game.MouseCaught())

		// Then: every further action is rejected
		err := game.StartRound()
		require.ErrorIs(t, err, apperror.ErrActionOutOfPhase)
		require.ErrorIs(t, err, apperror.ErrGameFinished)
		require.ErrorIs(t, game.KeeperAct(pos(0, 0)), apperror.ErrGameFinished)
		require.ErrorIs(t, game.MoveMouse(pos(0, 4)), apperror.ErrGameFinished)
	})

	t.Run("Keeper moves to an intersection", func(t *testing.T) {
		game := setupGame(t, pos(0, 0), pos(1, 1), pos(5, 1), pos(7, 7))
		require.NoError(t, game.MoveMouse(pos(0, 2)))

		require.NoError(t, game.KeeperAct(pos(1, 3)))

		assert.Equal(t, pos(1, 3), *game.KeeperPositions[0])
		assert.Equal(t, OutcomeMoved, game.LastResult.Outcome)
		assert.Equal(t, Keeper2, game.ActiveRole)
	})

	t.Run("Rejects illegal keeper actions without changing state", func(t *testing.T) {
		// Given: keeper1 on (1, 1) and keeper2 on (3, 1)
		game := setupGame(t, pos(0, 0), pos(1, 1), pos(3, 1), pos(7, 7))
		require.NoError(t, game.MoveMouse(pos(0, 2)))
		before := snapshot(t, game)

		cases := []struct {
			name string
			dest Position
			err  error
		}{
			{"non intersection road", pos(2, 1), apperror.ErrNotIntersection},
			{"edge road", pos(1, 0), apperror.ErrNotIntersection},
			{"diagonal walk", pos(3, 3), apperror.ErrIllegalDistance},
			{"long walk", pos(5, 1), apperror.ErrIllegalDistance},
			{"occupied intersection", pos(3, 1), apperror.ErrPositionOccupied},
			{"far storage", pos(4, 4), apperror.ErrIllegalDistance},
			{"off the board", pos(-1, 1), apperror.ErrOutOfBounds},
		}

		for _, tc := range cases {
			err := game.KeeperAct(tc.dest)

			require.ErrorIs(t, err, tc.err, tc.name)
			assert.Equal(t, before, game, tc.name)
		}
	})

	t.Run("Error when the mouse is active", func(t *testing.T) {
		game := setupGame(t, pos(0, 0), pos(1, 1), pos(5, 1), pos(7, 7))

		err := game.KeeperAct(pos(0, 0))

		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
	})
}

func TestGame_RoundAdvancement(t *testing.T) {
	t.Run("Keeper3 closes the round", func(t *testing.T) {
		game := setupGame(t, pos(0, 0), pos(1, 1), pos(5, 1), pos(7, 7))
		require.NoError(t, game.MoveMouse(pos(0, 2)))
		require.NoError(t, game.KeeperAct(pos(2, 2)))
		require.NoError(t, game.KeeperAct(pos(4, 0)))

		require.NoError(t, game.KeeperAct(pos(8, 8)))

		assert.Equal(t, PhaseRoundTransition, game.Phase)
		assert.Equal(t, NoRole, game.ActiveRole)
		assert.True(t, game.LastResult.RoundEnded)

		require.NoError(t, game.StartRound())
		assert.Equal(t, 2, game.TurnNumber)
		assert.Equal(t, Mouse, game.ActiveRole)
	})

	t.Run("Mouse wins after surviving every round", func(t *testing.T) {
		// Given: keepers far away from the mouse route
		game := setupGame(t, pos(0, 0), pos(7, 5), pos(5, 7), pos(7, 7))
		route := []Position{
			pos(0, 2), pos(0, 4), pos(0, 6), pos(0, 8), pos(2, 8),
			pos(2, 6), pos(2, 4), pos(2, 2), pos(2, 0), pos(4, 0),
		}
		require.Len(t, route, MaxTurns)

		// When: ten rounds are played without a capture
		for i, dest := range route {
			require.Equal(t, i+1, game.TurnNumber)
			require.NoError(t, game.MoveMouse(dest))
			require.NoError(t, game.KeeperAct(pos(8, 6)))
			require.NoError(t, game.KeeperAct(pos(6, 8)))
			require.NoError(t, game.KeeperAct(pos(8, 8)))
			require.LessOrEqual(t, game.TurnNumber, MaxTurns)

			if i+1 < MaxTurns {
				require.NoError(t, game.StartRound())
			}
		}

		// When: the next round is triggered
		require.NoError(t, game.StartRound())

		// Then: the mouse wins and the turn counter stays at the limit
		assert.Equal(t, PhaseEnded, game.Phase)
		assert.Equal(t, WinnerMouse, game.Winner)
		assert.Equal(t, MaxTurns, game.TurnNumber)
		assert.Equal(t, OutcomeGameEnded, game.LastResult.Outcome)
		assert.False(t, game.MouseCaught())
	})
}

func TestGame_Reject(t *testing.T) {
	// Given: a started game
	game := setupGame(t, pos(0, 0), pos(1, 1), pos(5, 1), pos(7, 7))
	target := pos(1, 0)

	// When: a rejection is recorded
	err := game.MoveMouse(target)
	require.Error(t, err)
	game.Reject(Mouse, &target, err)

	// Then: the last result carries the failure kind
	assert.True(t, game.LastResult.IsRejected())
	assert.Equal(t, apperror.KindNotStorage, game.LastResult.Failure)
	assert.Equal(t, Mouse, game.ActiveRole)
}
