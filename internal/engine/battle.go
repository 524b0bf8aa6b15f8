package engine

import "sort"

// BattleController runs the elimination bracket. It reads identities from the
// roster and never touches scores.
type BattleController struct {
	roster  *Roster
	bracket *Bracket
}

func NewBattleController(roster *Roster, turnSeconds int) (*BattleController, error) {
	bracket, err := NewBracket(roster.Players(), turnSeconds)
	if err != nil {
		return nil, err
	}
	return &BattleController{roster: roster, bracket: bracket}, nil
}

func (c *BattleController) Mode() GameMode {
	return ModeBattle
}

func (c *BattleController) Bracket() *Bracket {
	return c.bracket
}

func (c *BattleController) Start() error {
	if match := c.bracket.CurrentMatch(); match != nil {
		match.Start()
	}
	return nil
}

func (c *BattleController) Tick() {
	if match := c.bracket.CurrentMatch(); match != nil {
		match.Tick()
	}
}

func (c *BattleController) RecordInput(in Input) error {
	switch in.Intent {
	case IntentStart:
		return c.Start()
	case IntentPassTurn:
		if match := c.bracket.CurrentMatch(); match != nil {
			match.PassTurn()
		}
		return nil
	case IntentNextMatch:
		return c.nextMatch()
	case IntentRestart:
		c.bracket.Restart()
		return nil
	default:
		return ErrUnsupportedIntent
	}
}

// PlayerUpdated pushes a roster change into the bracket.
func (c *BattleController) PlayerUpdated(p Player) {
	c.bracket.UpdatePlayer(p)
}

func (c *BattleController) nextMatch() error {
	match := c.bracket.CurrentMatch()
	if match == nil {
		return nil
	}
	winner, ok := match.Winner()
	if !ok {
		return ErrMatchUnresolved
	}
	_, err := c.bracket.Advance(winner.ID)
	return err
}

func (c *BattleController) IsRoundOver() bool {
	return c.bracket.Complete()
}

// Ranking puts the champion first, then everyone else by how late they were
// knocked out. Players still alive rank above those already out, and ties keep
// roster order.
func (c *BattleController) Ranking() []Player {
	players := c.roster.Players()
	champion, hasChampion := c.bracket.Champion()
	key := func(p Player) int {
		if hasChampion && p.ID == champion.ID {
			return 1 << 30
		}
		if round, out := c.bracket.EliminatedIn(p.ID); out {
			return round
		}
		return 1 << 20
	}
	sort.SliceStable(players, func(i, j int) bool {
		return key(players[i]) > key(players[j])
	})
	return players
}

func (c *BattleController) State() State {
	bracket := c.bracket.State()
	st := State{
		Mode:      ModeBattle,
		Round:     c.bracket.Round(),
		RoundOver: c.bracket.Complete(),
		Bracket:   &bracket,
	}
	match := c.bracket.CurrentMatch()
	if match == nil {
		st.Phase = PhaseBracketComplete
		return st
	}
	ms := match.State()
	st.Phase = match.Phase()
	st.Match = &ms
	if match.Phase() != PhaseMatchResolved {
		active := match.Active()
		st.CurrentPlayer = &active
		st.TimeRemaining = intPtr(match.Remaining())
	}
	return st
}
