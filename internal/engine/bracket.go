package engine

// Bracket sequences a single-elimination tournament.
//
// Players are paired in round order: (0,1), (2,3), ... When a round has an odd
// number of players the last one gets a bye. The bye player counts as the
// first winner produced in that round, so it leads the next round's order and
// is paired first. A bracket over K players always plays K-1 matches.
type Bracket struct {
	seeds   []Player
	seconds int

	round      int
	entrants   []Player
	pairs      [][2]Player
	bye        *Player
	pairIndex  int
	match      *Match
	next       []Player
	played     int
	champion   *Player
	eliminated map[int]int
}

type BracketState struct {
	Round            int      `json:"round"`
	TotalRounds      int      `json:"total_rounds"`
	GlobalMatchIndex int      `json:"global_match_index"`
	TotalMatches     int      `json:"total_matches"`
	Entrants         []Player `json:"entrants"`
	Bye              *Player  `json:"bye,omitempty"`
	Champion         *Player  `json:"champion,omitempty"`
}

func NewBracket(players []Player, turnSeconds int) (*Bracket, error) {
	b := &Bracket{seconds: turnSeconds}
	if _, err := b.SetupBattleMode(players); err != nil {
		return nil, err
	}
	return b, nil
}

// SetupBattleMode seeds the bracket from players and returns the first match.
func (b *Bracket) SetupBattleMode(players []Player) (*Match, error) {
	if len(players) < 2 {
		return nil, ErrBattleNeedsTwoPlayers
	}
	b.seeds = make([]Player, len(players))
	copy(b.seeds, players)
	b.round = 0
	b.played = 0
	b.champion = nil
	b.eliminated = make(map[int]int)
	b.formRound(b.seeds)
	return b.match, nil
}

func (b *Bracket) Restart() *Match {
	match, _ := b.SetupBattleMode(b.seeds)
	return match
}

func (b *Bracket) formRound(players []Player) {
	b.pairs = b.pairs[:0]
	b.bye = nil
	b.next = nil
	b.pairIndex = 0
	b.match = nil
	if len(players) == 1 {
		champion := players[0]
		b.champion = &champion
		return
	}
	b.round++
	b.entrants = players
	for i := 0; i+1 < len(players); i += 2 {
		b.pairs = append(b.pairs, [2]Player{players[i], players[i+1]})
	}
	if len(players)%2 == 1 {
		bye := players[len(players)-1]
		b.bye = &bye
		b.next = append(b.next, bye)
	}
	b.match = NewMatch(b.pairs[0][0], b.pairs[0][1], b.seconds)
}

// Advance records winnerID as the winner of the current match and returns the
// next match, or nil once the bracket has a champion. An unresolved match is
// resolved in the winner's favour.
func (b *Bracket) Advance(winnerID int) (*Match, error) {
	if b.Complete() {
		return nil, ErrBracketComplete
	}
	side := b.match.sideOf(winnerID)
	if side < 0 {
		return nil, ErrNotInMatch
	}
	if b.match.Resolved() {
		if w, _ := b.match.Winner(); w.ID != winnerID {
			return nil, ErrWinnerMismatch
		}
	} else {
		b.match.resolve(side)
	}
	winner, _ := b.match.Winner()
	loser, _ := b.match.Loser()
	b.eliminated[loser.ID] = b.round
	b.next = append(b.next, winner)
	b.played++
	b.pairIndex++
	if b.pairIndex < len(b.pairs) {
		pair := b.pairs[b.pairIndex]
		b.match = NewMatch(pair[0], pair[1], b.seconds)
		return b.match, nil
	}
	b.formRound(b.next)
	return b.match, nil
}

func (b *Bracket) CurrentMatch() *Match {
	return b.match
}

func (b *Bracket) Complete() bool {
	return b.champion != nil
}

func (b *Bracket) Champion() (Player, bool) {
	if b.champion == nil {
		return Player{}, false
	}
	return *b.champion, true
}

func (b *Bracket) Round() int {
	return b.round
}

func (b *Bracket) Entrants() []Player {
	out := make([]Player, len(b.entrants))
	copy(out, b.entrants)
	return out
}

func (b *Bracket) Bye() (Player, bool) {
	if b.bye == nil {
		return Player{}, false
	}
	return *b.bye, true
}

// GlobalMatchIndex is the 1-based number of the match in play, for display.
func (b *Bracket) GlobalMatchIndex() int {
	if b.Complete() {
		return b.played
	}
	return b.played + 1
}

func (b *Bracket) TotalMatches() int {
	return len(b.seeds) - 1
}

func (b *Bracket) TotalRounds() int {
	return roundsFor(len(b.seeds))
}

// EliminatedIn reports the round a player lost in.
func (b *Bracket) EliminatedIn(playerID int) (int, bool) {
	round, ok := b.eliminated[playerID]
	return round, ok
}

// UpdatePlayer replaces every copy of the player held by the bracket, so a
// rename shows up in the current match, the entrants and the restart seeds.
func (b *Bracket) UpdatePlayer(p Player) {
	replacePlayer(b.seeds, p)
	replacePlayer(b.entrants, p)
	replacePlayer(b.next, p)
	for i := range b.pairs {
		replacePlayer(b.pairs[i][:], p)
	}
	if b.bye != nil && b.bye.ID == p.ID {
		*b.bye = p
	}
	if b.champion != nil && b.champion.ID == p.ID {
		*b.champion = p
	}
	if b.match != nil {
		b.match.updatePlayer(p)
	}
}

func replacePlayer(players []Player, p Player) {
	for i := range players {
		if players[i].ID == p.ID {
			players[i] = p
		}
	}
}

func (b *Bracket) State() BracketState {
	st := BracketState{
		Round:            b.round,
		TotalRounds:      b.TotalRounds(),
		GlobalMatchIndex: b.GlobalMatchIndex(),
		TotalMatches:     b.TotalMatches(),
		Entrants:         b.Entrants(),
	}
	if bye, ok := b.Bye(); ok {
		st.Bye = &bye
	}
	if champion, ok := b.Champion(); ok {
		st.Champion = &champion
	}
	return st
}

func roundsFor(players int) int {
	rounds := 0
	for players > 1 {
		players = (players + 1) / 2
		rounds++
	}
	return rounds
}
