package entity

import "fmt"

// Footprint marks reveal only where a footprint sits relative to the placement.
const (
	MarkOrigin    = "origin"
	MarkHighlight = "highlight"
	MarkTrace     = "trace"

	highlightPathIndex = 4
)

// Footprint - a discovered footprint as shown to the player.
type Footprint struct {
	Position
	Mark string `json:"mark"`
}

// View - read-only snapshot of a game, safe to hand to the presentation side.
type View struct {
	ID              string                 `json:"id"`
	Phase           Phase                  `json:"phase"`
	ActiveRole      Role                   `json:"active_role,omitempty"`
	TurnNumber      int                    `json:"turn_number"`
	MaxTurns        int                    `json:"max_turns"`
	Board           Board                  `json:"board"`
	MousePosition   *Position              `json:"mouse_position,omitempty"`
	KeeperPositions [KeeperCount]*Position `json:"keeper_positions"`
	Footprints      []Footprint            `json:"footprints"`
	LastResult      ActionResult           `json:"last_result"`
	Winner          string                 `json:"winner,omitempty"`
	MouseCaught     bool                   `json:"mouse_caught"`
	Prompt          string                 `json:"prompt"`
}

// MouseVisible - the mouse is shown only to its own side and once the game is over.
func (that *Game) MouseVisible() bool {
	switch that.Phase {
	case PhasePlaying:
		return that.ActiveRole == Mouse
	case PhaseSetup:
		return that.ActivePlacer() == Mouse
	case PhaseEnded:
		return true
	default:
		return false
	}
}

func (that *Game) VisibleMousePosition() (Position, bool) {
	if !that.MouseVisible() || that.MousePosition == nil {
		return Position{}, false
	}

	return *that.MousePosition, true
}

// MouseCaught - the game ended with a keeper checking the mouse cell.
func (that *Game) MouseCaught() bool {
	return that.IsFinished() && that.Winner == WinnerKeepers
}

// View - builds a detached copy of the game with the mouse hidden when it must be.
func (that *Game) View() *View {
	view := &View{
		ID:          that.ID,
		Phase:       that.Phase,
		ActiveRole:  that.ActiveRole,
		TurnNumber:  that.TurnNumber,
		MaxTurns:    MaxTurns,
		Board:       that.Board.Clone(),
		Footprints:  make([]Footprint, 0, len(that.FoundFootprints)),
		LastResult:  that.LastResult,
		Winner:      that.Winner,
		MouseCaught: that.MouseCaught(),
		Prompt:      that.Prompt(),
	}

	if pos, ok := that.VisibleMousePosition(); ok {
		view.MousePosition = &pos
	}

	for i, keeper := range that.KeeperPositions {
		if keeper != nil {
			view.KeeperPositions[i] = ptr(*keeper)
		}
	}

	for _, pos := range that.FoundFootprints {
		view.Footprints = append(view.Footprints, Footprint{Position: pos, Mark: that.footprintMark(pos)})
	}

	if view.LastResult.Target != nil {
		view.LastResult.Target = ptr(*view.LastResult.Target)

		if view.LastResult.Role == Mouse && !that.MouseVisible() {
			view.LastResult.Target = nil
		}
	}

	return view
}

func (that *Game) footprintMark(pos Position) string {
	switch indexOf(that.MousePath, pos) {
	case 0:
		return MarkOrigin
	case highlightPathIndex:
		return MarkHighlight
	default:
		return MarkTrace
	}
}

// Prompt - status line describing what the game expects next.
func (that *Game) Prompt() string {
	switch that.Phase {
	case PhaseSetup:
		placer := that.ActivePlacer()
		if placer == Mouse {
			return fmt.Sprintf("[Setup] %s, select a storage tile to place.", placer.DisplayName())
		}

		return fmt.Sprintf("[Setup] %s, select a road intersection to place.", placer.DisplayName())
	case PhaseRoundTransition:
		if !that.Started {
			return "All pieces are placed. Start the game."
		}

		return fmt.Sprintf("Round %d finished. Start the next round.", that.TurnNumber)
	case PhasePlaying:
		return fmt.Sprintf("[%s turn] select a tile to act.", that.ActiveRole.DisplayName())
	case PhaseEnded:
		if that.Winner == WinnerKeepers {
			return fmt.Sprintf("%s found the mouse! Keepers win!", that.CapturedBy.DisplayName())
		}

		return fmt.Sprintf("The mouse escaped for %d rounds! Mouse wins!", MaxTurns)
	default:
		return ""
	}
}
