package engine

import "fmt"

type Intent string

const (
	IntentStart      Intent = "start"
	IntentIncrement  Intent = "increment"
	IntentDecrement  Intent = "decrement"
	IntentPassTurn   Intent = "pass_turn"
	IntentNextPlayer Intent = "next_player"
	IntentNextRound  Intent = "next_round"
	IntentNextMatch  Intent = "next_match"
	IntentEditScore  Intent = "edit_score"
	IntentRestart    Intent = "restart"
)

// Input is one discrete intent sent back by a renderer. PlayerID and Score are
// only read by the intents that need them.
type Input struct {
	Intent   Intent `json:"intent"`
	PlayerID int    `json:"player_id,omitempty"`
	Score    int    `json:"score,omitempty"`
}

type Phase string

const (
	PhaseAwaitingStart   Phase = "awaiting_start"
	PhaseInProgress      Phase = "in_progress"
	PhaseTurnComplete    Phase = "turn_complete"
	PhaseRoundComplete   Phase = "round_complete"
	PhaseMatchNotStarted Phase = "not_started"
	PhaseMatchActive     Phase = "active"
	PhaseMatchResolved   Phase = "resolved"
	PhaseBracketComplete Phase = "bracket_complete"
)

// State is the per-tick view handed to a renderer.
type State struct {
	Mode          GameMode      `json:"mode"`
	Phase         Phase         `json:"phase"`
	Round         int           `json:"round"`
	CurrentPlayer *Player       `json:"current_player,omitempty"`
	Score         int           `json:"score"`
	TurnCap       int           `json:"turn_cap,omitempty"`
	TimeRemaining *int          `json:"time_remaining"`
	RoundOver     bool          `json:"round_over"`
	Match         *MatchState   `json:"match,omitempty"`
	Bracket       *BracketState `json:"bracket,omitempty"`
}

// ModeController is the state machine behind one game mode.
type ModeController interface {
	Mode() GameMode
	Start() error
	Tick()
	RecordInput(in Input) error
	IsRoundOver() bool
	Ranking() []Player
	State() State
}

type controllerFactory func(roster *Roster, rules Rules) (ModeController, error)

var controllerFactories = map[GameMode]controllerFactory{
	ModeChill: func(roster *Roster, rules Rules) (ModeController, error) {
		return NewChillController(roster, rules.ChillTurnCap), nil
	},
	ModeBlitz: func(roster *Roster, rules Rules) (ModeController, error) {
		return NewBlitzController(roster, rules.BlitzTurnSeconds), nil
	},
	ModeBattle: func(roster *Roster, rules Rules) (ModeController, error) {
		return NewBattleController(roster, rules.BattleTurnSeconds)
	},
}

// NewController builds the controller registered for mode.
func NewController(mode GameMode, roster *Roster, rules Rules) (ModeController, error) {
	factory, ok := controllerFactories[mode]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	return factory(roster, rules.normalized())
}

func intPtr(v int) *int {
	return &v
}
