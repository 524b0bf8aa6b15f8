package engine

import "fmt"

// PromptSupply hands out prompts for a pack without repeating the ones in
// exclude, recycling the pack once every prompt has been used. It reports
// false when the pack has nothing to offer.
type PromptSupply interface {
	NextPrompt(packKey string, exclude map[string]struct{}) (string, bool)
}

// playerListener is implemented by controllers that keep their own copies of
// players and need to hear about roster edits.
type playerListener interface {
	PlayerUpdated(p Player)
}

// Session is the state of one game from setup to teardown: the settings it was
// created with, the roster, the mode controller and the prompt in play.
type Session struct {
	settings   GameSettings
	rules      Rules
	roster     *Roster
	controller ModeController
	supply     PromptSupply

	used       map[string]struct{}
	prompt     string
	hasPrompt  bool
	turnKey    string
	generation int
	closed     bool
}

type Snapshot struct {
	State
	Settings        GameSettings `json:"settings"`
	Players         []Player     `json:"players"`
	Ranking         []Player     `json:"ranking,omitempty"`
	Prompt          string       `json:"prompt"`
	PromptAvailable bool         `json:"prompt_available"`
	Closed          bool         `json:"closed"`
}

// NewSession validates settings, builds the roster and the controller for the
// chosen mode, and draws the first prompt. supply may be nil.
func NewSession(settings GameSettings, rules Rules, supply PromptSupply) (*Session, error) {
	settings, err := settings.Normalize()
	if err != nil {
		return nil, err
	}
	roster, err := NewRoster(settings.PlayerCount)
	if err != nil {
		return nil, err
	}
	controller, err := NewController(settings.Mode, roster, rules)
	if err != nil {
		return nil, err
	}
	s := &Session{
		settings:   settings,
		rules:      rules.normalized(),
		roster:     roster,
		controller: controller,
		supply:     supply,
		used:       make(map[string]struct{}),
	}
	s.refreshPrompt()
	return s, nil
}

func (s *Session) Settings() GameSettings {
	return s.settings
}

func (s *Session) Mode() GameMode {
	return s.settings.Mode
}

func (s *Session) Controller() ModeController {
	return s.controller
}

func (s *Session) Players() []Player {
	return s.roster.Players()
}

// Apply feeds one renderer intent to the controller.
func (s *Session) Apply(in Input) error {
	if s.closed {
		return ErrSessionClosed
	}
	if err := s.controller.RecordInput(in); err != nil {
		return err
	}
	if in.Intent == IntentRestart {
		s.generation++
	}
	s.refreshPrompt()
	return nil
}

// Tick advances the active countdown by one unit and reports whether the
// phase changed as a result.
func (s *Session) Tick() bool {
	if s.closed {
		return false
	}
	before := s.controller.State().Phase
	s.controller.Tick()
	after := s.controller.State().Phase
	s.refreshPrompt()
	return before != after
}

func (s *Session) Rename(playerID int, name string) error {
	if s.closed {
		return ErrSessionClosed
	}
	if err := s.roster.Rename(playerID, name); err != nil {
		return err
	}
	if l, ok := s.controller.(playerListener); ok {
		p, _ := s.roster.Player(playerID)
		l.PlayerUpdated(p)
	}
	return nil
}

func (s *Session) Prompt() (string, bool) {
	return s.prompt, s.hasPrompt
}

func (s *Session) Snapshot() Snapshot {
	st := s.controller.State()
	snap := Snapshot{
		State:           st,
		Settings:        s.settings,
		Players:         s.roster.Players(),
		Prompt:          s.prompt,
		PromptAvailable: s.hasPrompt,
		Closed:          s.closed,
	}
	if st.RoundOver {
		snap.Ranking = s.controller.Ranking()
	}
	return snap
}

func (s *Session) Close() {
	s.closed = true
}

func (s *Session) Closed() bool {
	return s.closed
}

// refreshPrompt draws a new prompt whenever play has moved to a new turn
// (Chill/Blitz) or a new match (Battle).
func (s *Session) refreshPrompt() {
	st := s.controller.State()
	if st.RoundOver {
		return
	}
	key := s.currentTurnKey(st)
	if key == s.turnKey {
		return
	}
	s.turnKey = key
	s.drawPrompt()
}

func (s *Session) currentTurnKey(st State) string {
	if st.Bracket != nil {
		return fmt.Sprintf("g%d:r%d:m%d", s.generation, st.Round, st.Bracket.GlobalMatchIndex)
	}
	playerID := 0
	if st.CurrentPlayer != nil {
		playerID = st.CurrentPlayer.ID
	}
	return fmt.Sprintf("g%d:r%d:p%d", s.generation, st.Round, playerID)
}

func (s *Session) drawPrompt() {
	s.prompt, s.hasPrompt = "", false
	if s.supply == nil {
		return
	}
	prompt, ok := s.supply.NextPrompt(s.settings.PackID, s.used)
	if !ok {
		return
	}
	if _, seen := s.used[prompt]; seen {
		s.used = make(map[string]struct{})
	}
	s.used[prompt] = struct{}{}
	s.prompt, s.hasPrompt = prompt, true
}
