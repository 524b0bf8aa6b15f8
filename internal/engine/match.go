package engine

// Match is one head-to-head duel. Only the side at turnIndex has a running
// countdown; passing the turn hands the countdown to the opponent with a fresh
// duration, and the side whose countdown reaches zero loses.
type Match struct {
	players   [2]Player
	seconds   int
	phase     Phase
	turnIndex int
	remaining int
	winner    int
}

type MatchState struct {
	Players       [2]Player `json:"players"`
	TurnIndex     int       `json:"turn_index"`
	Phase         Phase     `json:"phase"`
	TimeRemaining int       `json:"time_remaining"`
	WinnerID      int       `json:"winner_id,omitempty"`
	LoserID       int       `json:"loser_id,omitempty"`
}

func NewMatch(a, b Player, turnSeconds int) *Match {
	return &Match{
		players:   [2]Player{a, b},
		seconds:   turnSeconds,
		phase:     PhaseMatchNotStarted,
		remaining: turnSeconds,
		winner:    -1,
	}
}

func (m *Match) Start() {
	if m.phase != PhaseMatchNotStarted {
		return
	}
	m.phase = PhaseMatchActive
	m.turnIndex = 0
	m.remaining = m.seconds
}

// PassTurn is ignored unless the match is active, so a pass racing a
// timeout that already resolved the match changes nothing.
func (m *Match) PassTurn() {
	if m.phase != PhaseMatchActive {
		return
	}
	m.turnIndex = 1 - m.turnIndex
	m.remaining = m.seconds
}

// Tick advances the active countdown and reports whether it resolved the match.
func (m *Match) Tick() bool {
	if m.phase != PhaseMatchActive {
		return false
	}
	if m.remaining > 0 {
		m.remaining--
	}
	if m.remaining > 0 {
		return false
	}
	m.resolve(1 - m.turnIndex)
	return true
}

func (m *Match) resolve(winner int) {
	m.winner = winner
	m.phase = PhaseMatchResolved
	m.remaining = 0
}

func (m *Match) Players() [2]Player {
	return m.players
}

func (m *Match) Phase() Phase {
	return m.phase
}

func (m *Match) TurnIndex() int {
	return m.turnIndex
}

func (m *Match) Remaining() int {
	return m.remaining
}

func (m *Match) Active() Player {
	return m.players[m.turnIndex]
}

func (m *Match) Resolved() bool {
	return m.phase == PhaseMatchResolved
}

func (m *Match) Winner() (Player, bool) {
	if m.winner < 0 {
		return Player{}, false
	}
	return m.players[m.winner], true
}

func (m *Match) Loser() (Player, bool) {
	if m.winner < 0 {
		return Player{}, false
	}
	return m.players[1-m.winner], true
}

func (m *Match) updatePlayer(p Player) {
	replacePlayer(m.players[:], p)
}

func (m *Match) sideOf(playerID int) int {
	for i, p := range m.players {
		if p.ID == playerID {
			return i
		}
	}
	return -1
}

func (m *Match) State() MatchState {
	st := MatchState{
		Players:       m.players,
		TurnIndex:     m.turnIndex,
		Phase:         m.phase,
		TimeRemaining: m.remaining,
	}
	if w, ok := m.Winner(); ok {
		st.WinnerID = w.ID
	}
	if l, ok := m.Loser(); ok {
		st.LoserID = l.ID
	}
	return st
}
