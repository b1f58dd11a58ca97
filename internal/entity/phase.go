package entity

// Phase - stage of the game state machine.
type Phase string

const (
	PhaseSetup           Phase = "setup"
	PhasePlaying         Phase = "playing"
	PhaseRoundTransition Phase = "round_transition"
	PhaseEnded           Phase = "ended"
)

const (
	WinnerNone    = ""
	WinnerMouse   = "mouse"
	WinnerKeepers = "keepers"
)

// Outcome - what a successful action did, or OutcomeRejected.
type Outcome string

const (
	OutcomeNone              Outcome = ""
	OutcomePlaced            Outcome = "placed"
	OutcomePlacementComplete Outcome = "placement_complete"
	OutcomeMoved             Outcome = "moved"
	OutcomeCheckedEmpty      Outcome = "checked_empty"
	OutcomeFootprintFound    Outcome = "footprint_found"
	OutcomeCaptured          Outcome = "captured"
	OutcomeRoundStarted      Outcome = "round_started"
	OutcomeGameEnded         Outcome = "game_ended"
	OutcomeRejected          Outcome = "rejected"
)

// ActionResult - result of the last action submitted to a game.
type ActionResult struct {
	Outcome    Outcome   `json:"outcome"`
	Role       Role      `json:"role,omitempty"`
	Target     *Position `json:"target,omitempty"`
	RoundEnded bool      `json:"round_ended,omitempty"`
	Failure    string    `json:"failure,omitempty"`
}

func (that ActionResult) IsRejected() bool {
	return that.Outcome == OutcomeRejected
}
