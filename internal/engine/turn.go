package engine

// roundMachine is the turn/round state machine shared by Chill and Blitz.
//
// A turn moves awaiting_start -> in_progress -> turn_complete. next_player
// moves the pointer to the following player in roster order, or to
// round_complete after the last one. Increments are gated on in_progress so a
// tap that lands after the countdown expired is dropped.
type roundMachine struct {
	roster *Roster
	mode   GameMode

	// turnCap of 0 means no per-turn ceiling.
	turnCap int
	// turnSeconds of 0 means the turn is not timed.
	turnSeconds int
	// carryScores makes a committed turn add to the roster score instead of
	// replacing it, and keeps roster scores across rounds.
	carryScores bool

	phase     Phase
	round     int
	current   int
	turnScore int
	remaining int
	committed bool
}

func newRoundMachine(roster *Roster, mode GameMode) *roundMachine {
	return &roundMachine{
		roster: roster,
		mode:   mode,
		phase:  PhaseAwaitingStart,
		round:  1,
	}
}

func (m *roundMachine) Mode() GameMode {
	return m.mode
}

func (m *roundMachine) Start() error {
	if m.phase != PhaseAwaitingStart {
		return nil
	}
	m.phase = PhaseInProgress
	m.turnScore = 0
	m.committed = false
	m.remaining = m.turnSeconds
	return nil
}

func (m *roundMachine) Tick() {
	if m.phase != PhaseInProgress || m.turnSeconds <= 0 {
		return
	}
	if m.remaining > 0 {
		m.remaining--
	}
	if m.remaining == 0 {
		m.completeTurn()
	}
}

func (m *roundMachine) increment() {
	if m.phase != PhaseInProgress {
		return
	}
	if m.turnCap > 0 && m.turnScore >= m.turnCap {
		return
	}
	m.turnScore++
	if m.turnCap > 0 && m.turnScore >= m.turnCap {
		m.completeTurn()
	}
}

func (m *roundMachine) decrement() {
	if m.phase != PhaseInProgress || m.turnScore == 0 {
		return
	}
	m.turnScore--
}

// completeTurn commits the turn score to the roster once per turn.
func (m *roundMachine) completeTurn() {
	if m.committed {
		return
	}
	player, ok := m.roster.At(m.current)
	if ok {
		score := m.turnScore
		if m.carryScores {
			score += player.Score
		}
		_ = m.roster.UpdatePlayerScore(player.ID, score)
	}
	m.committed = true
	m.phase = PhaseTurnComplete
}

func (m *roundMachine) nextPlayer() {
	switch m.phase {
	case PhaseRoundComplete:
		return
	case PhaseInProgress:
		m.completeTurn()
	}
	if m.current+1 >= m.roster.Len() {
		m.phase = PhaseRoundComplete
		return
	}
	m.current++
	m.resetTurn()
}

func (m *roundMachine) nextRound() {
	if m.phase != PhaseRoundComplete {
		return
	}
	m.round++
	m.current = 0
	if !m.carryScores {
		m.roster.ResetScores()
	}
	m.resetTurn()
}

func (m *roundMachine) restart() {
	m.round = 1
	m.current = 0
	m.roster.ResetScores()
	m.resetTurn()
}

func (m *roundMachine) resetTurn() {
	m.phase = PhaseAwaitingStart
	m.turnScore = 0
	m.remaining = m.turnSeconds
	m.committed = false
}

func (m *roundMachine) editScore(playerID, score int) error {
	if m.phase == PhaseInProgress {
		return ErrTurnInProgress
	}
	return m.roster.UpdatePlayerScore(playerID, score)
}

func (m *roundMachine) record(in Input) error {
	switch in.Intent {
	case IntentStart:
		return m.Start()
	case IntentIncrement:
		m.increment()
	case IntentNextPlayer:
		m.nextPlayer()
	case IntentNextRound:
		m.nextRound()
	case IntentEditScore:
		return m.editScore(in.PlayerID, in.Score)
	case IntentRestart:
		m.restart()
	default:
		return ErrUnsupportedIntent
	}
	return nil
}

func (m *roundMachine) IsRoundOver() bool {
	return m.phase == PhaseRoundComplete
}

func (m *roundMachine) Ranking() []Player {
	return Ranking(m.roster.Players())
}

func (m *roundMachine) CurrentPlayer() (Player, bool) {
	if m.phase == PhaseRoundComplete {
		return Player{}, false
	}
	return m.roster.At(m.current)
}

func (m *roundMachine) Phase() Phase {
	return m.phase
}

func (m *roundMachine) TurnScore() int {
	return m.turnScore
}

func (m *roundMachine) State() State {
	st := State{
		Mode:      m.mode,
		Phase:     m.phase,
		Round:     m.round,
		Score:     m.turnScore,
		TurnCap:   m.turnCap,
		RoundOver: m.IsRoundOver(),
	}
	if player, ok := m.CurrentPlayer(); ok {
		st.CurrentPlayer = &player
	}
	if m.turnSeconds > 0 {
		st.TimeRemaining = intPtr(m.remaining)
	}
	return st
}
