package engine

import (
	"fmt"
	"sort"
	"strings"
)

// IconCount is the number of decorative avatars a player can be given.
const IconCount = 12

var colorPairs = [][2]string{
	{"#ff6b6b", "#ffa94d"},
	{"#4dabf7", "#845ef7"},
	{"#51cf66", "#20c997"},
	{"#ffa94d", "#ffd43b"},
	{"#ffd43b", "#51cf66"},
	{"#845ef7", "#e64980"},
	{"#20c997", "#4dabf7"},
	{"#e64980", "#ff6b6b"},
}

type Player struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Score      int    `json:"score"`
	IconIndex  int    `json:"icon_index"`
	StartColor string `json:"start_color"`
	EndColor   string `json:"end_color"`
}

func newPlayer(id int) Player {
	pair := colorPairs[(id-1)%len(colorPairs)]
	return Player{
		ID:         id,
		Name:       defaultPlayerName(id),
		IconIndex:  (id - 1) % IconCount,
		StartColor: pair[0],
		EndColor:   pair[1],
	}
}

func defaultPlayerName(id int) string {
	return fmt.Sprintf("Player %d", id)
}

// Roster is the ordered list of players for one session. Order matters: it
// drives turn order in Chill/Blitz and seeding in Battle.
type Roster struct {
	players []Player
}

func NewRoster(count int) (*Roster, error) {
	r := &Roster{}
	if _, err := r.InitializePlayers(count); err != nil {
		return nil, err
	}
	return r, nil
}

// InitializePlayers replaces the roster with count fresh players numbered 1..count.
func (r *Roster) InitializePlayers(count int) ([]Player, error) {
	if count <= 0 {
		return nil, ErrNoPlayers
	}
	players := make([]Player, 0, count)
	for id := 1; id <= count; id++ {
		players = append(players, newPlayer(id))
	}
	r.players = players
	return r.Players(), nil
}

// UpdatePlayerScore sets the score of the player with the given id.
// The roster is left untouched when the id is unknown or the score negative.
func (r *Roster) UpdatePlayerScore(id, score int) error {
	if score < 0 {
		return ErrNegativeScore
	}
	i := r.indexOf(id)
	if i < 0 {
		return ErrPlayerNotFound
	}
	r.players[i].Score = score
	return nil
}

func (r *Roster) Rename(id int, name string) error {
	i := r.indexOf(id)
	if i < 0 {
		return ErrPlayerNotFound
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultPlayerName(id)
	}
	r.players[i].Name = name
	return nil
}

func (r *Roster) ResetScores() {
	for i := range r.players {
		r.players[i].Score = 0
	}
}

// Players returns a copy of the roster in insertion order.
func (r *Roster) Players() []Player {
	out := make([]Player, len(r.players))
	copy(out, r.players)
	return out
}

func (r *Roster) Player(id int) (Player, bool) {
	i := r.indexOf(id)
	if i < 0 {
		return Player{}, false
	}
	return r.players[i], true
}

func (r *Roster) At(index int) (Player, bool) {
	if index < 0 || index >= len(r.players) {
		return Player{}, false
	}
	return r.players[index], true
}

func (r *Roster) Len() int {
	return len(r.players)
}

func (r *Roster) indexOf(id int) int {
	for i := range r.players {
		if r.players[i].ID == id {
			return i
		}
	}
	return -1
}

// Ranking orders players by descending score. Ties keep roster order.
func Ranking(players []Player) []Player {
	ranked := make([]Player, len(players))
	copy(ranked, players)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}
