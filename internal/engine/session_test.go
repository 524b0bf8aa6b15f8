package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listSupply struct {
	packs map[string][]string
	calls int
}

func (s *listSupply) NextPrompt(pack string, exclude map[string]struct{}) (string, bool) {
	s.calls++
	prompts := s.packs[pack]
	if len(prompts) == 0 {
		return "", false
	}
	for _, p := range prompts {
		if _, used := exclude[p]; !used {
			return p, true
		}
	}
	return prompts[0], true
}

func TestNewSessionRejectsInvalidSetup(t *testing.T) {
	_, err := NewSession(GameSettings{Mode: ModeChill}, DefaultRules(), nil)
	assert.ErrorIs(t, err, ErrNoPlayers)
	_, err = NewSession(GameSettings{Mode: ModeBattle, PlayerCount: 1}, DefaultRules(), nil)
	assert.ErrorIs(t, err, ErrBattleNeedsTwoPlayers)
}

func TestSessionDrawsPromptPerTurn(t *testing.T) {
	supply := &listSupply{packs: map[string][]string{"classic": {"fruits", "rivers"}}}
	settings := GameSettings{Mode: ModeChill, PlayerCount: 3, PackID: "classic"}
	s, err := NewSession(settings, DefaultRules(), supply)
	require.NoError(t, err)

	prompt, ok := s.Prompt()
	require.True(t, ok)
	assert.Equal(t, "fruits", prompt)

	require.NoError(t, s.Apply(Input{Intent: IntentStart}))
	require.NoError(t, s.Apply(Input{Intent: IntentIncrement}))
	prompt, _ = s.Prompt()
	assert.Equal(t, "fruits", prompt, "prompt stays for the whole turn")

	require.NoError(t, s.Apply(Input{Intent: IntentNextPlayer}))
	prompt, _ = s.Prompt()
	assert.Equal(t, "rivers", prompt)

	require.NoError(t, s.Apply(Input{Intent: IntentNextPlayer}))
	prompt, _ = s.Prompt()
	assert.Equal(t, "fruits", prompt, "exhausted pack recycles")
}

func TestSessionMissingPackStallsSafely(t *testing.T) {
	supply := &listSupply{packs: map[string][]string{}}
	s, err := NewSession(GameSettings{Mode: ModeBlitz, PlayerCount: 2, PackID: "nope"}, DefaultRules(), supply)
	require.NoError(t, err)
	snap := s.Snapshot()
	assert.False(t, snap.PromptAvailable)
	assert.Equal(t, "", snap.Prompt)
	require.NoError(t, s.Apply(Input{Intent: IntentStart}))
}

func TestSessionTickReportsPhaseChange(t *testing.T) {
	rules := Rules{BlitzTurnSeconds: 2}
	s, err := NewSession(GameSettings{Mode: ModeBlitz, PlayerCount: 1}, rules, nil)
	require.NoError(t, err)
	require.NoError(t, s.Apply(Input{Intent: IntentStart}))
	assert.False(t, s.Tick())
	assert.True(t, s.Tick())
	assert.Equal(t, PhaseTurnComplete, s.Snapshot().Phase)
}

func TestSessionSnapshotIncludesRankingWhenOver(t *testing.T) {
	s, err := NewSession(GameSettings{Mode: ModeChill, PlayerCount: 2}, DefaultRules(), nil)
	require.NoError(t, err)
	assert.Empty(t, s.Snapshot().Ranking)

	require.NoError(t, s.Apply(Input{Intent: IntentEditScore, PlayerID: 2, Score: 4}))
	require.NoError(t, s.Apply(Input{Intent: IntentNextPlayer}))
	require.NoError(t, s.Apply(Input{Intent: IntentNextPlayer}))
	snap := s.Snapshot()
	require.True(t, snap.RoundOver)
	require.Len(t, snap.Ranking, 2)
	assert.Equal(t, 2, snap.Ranking[0].ID)
}

func TestClosedSessionRejectsInput(t *testing.T) {
	s, err := NewSession(GameSettings{Mode: ModeBattle, PlayerCount: 2}, DefaultRules(), nil)
	require.NoError(t, err)
	s.Close()
	assert.ErrorIs(t, s.Apply(Input{Intent: IntentStart}), ErrSessionClosed)
	assert.False(t, s.Tick())
	assert.True(t, s.Snapshot().Closed)
}

func TestBattleSessionNewPromptPerMatch(t *testing.T) {
	supply := &listSupply{packs: map[string][]string{"classic": {"a", "b", "c"}}}
	s, err := NewSession(GameSettings{Mode: ModeBattle, PlayerCount: 4, PackID: "classic"}, Rules{BattleTurnSeconds: 1}, supply)
	require.NoError(t, err)
	first, _ := s.Prompt()

	require.NoError(t, s.Apply(Input{Intent: IntentStart}))
	require.NoError(t, s.Apply(Input{Intent: IntentPassTurn}))
	p, _ := s.Prompt()
	assert.Equal(t, first, p)

	s.Tick()
	require.NoError(t, s.Apply(Input{Intent: IntentNextMatch}))
	p, _ = s.Prompt()
	assert.NotEqual(t, first, p)
}

func TestBattleRenameReachesBracket(t *testing.T) {
	s, err := NewSession(GameSettings{Mode: ModeBattle, PlayerCount: 3}, Rules{BattleTurnSeconds: 1}, nil)
	require.NoError(t, err)
	require.NoError(t, s.Rename(1, "Alice"))
	require.NoError(t, s.Rename(3, "Cara"))

	snap := s.Snapshot()
	assert.Equal(t, "Alice", snap.Players[0].Name)
	require.NotNil(t, snap.Match)
	assert.Equal(t, "Alice", snap.Match.Players[0].Name)
	require.NotNil(t, snap.CurrentPlayer)
	assert.Equal(t, "Alice", snap.CurrentPlayer.Name)
	assert.Equal(t, "Alice", snap.Bracket.Entrants[0].Name)
	require.NotNil(t, snap.Bracket.Bye)
	assert.Equal(t, "Cara", snap.Bracket.Bye.Name)

	// Player 2 wins match one, then meets the bye in round two.
	require.NoError(t, s.Apply(Input{Intent: IntentStart}))
	s.Tick()
	require.NoError(t, s.Apply(Input{Intent: IntentNextMatch}))
	require.NoError(t, s.Rename(2, "Bo"))
	snap = s.Snapshot()
	assert.Equal(t, "Cara", snap.Match.Players[0].Name)
	assert.Equal(t, "Bo", snap.Match.Players[1].Name)

	require.NoError(t, s.Apply(Input{Intent: IntentStart}))
	s.Tick()
	require.NoError(t, s.Apply(Input{Intent: IntentNextMatch}))
	require.NoError(t, s.Rename(2, "Bea"))
	snap = s.Snapshot()
	require.NotNil(t, snap.Bracket.Champion)
	assert.Equal(t, "Bea", snap.Bracket.Champion.Name)
	assert.Equal(t, "Bea", snap.Ranking[0].Name)

	require.NoError(t, s.Apply(Input{Intent: IntentRestart}))
	snap = s.Snapshot()
	assert.Equal(t, "Alice", snap.Match.Players[0].Name)
	assert.Equal(t, "Bea", snap.Match.Players[1].Name)
}

func TestNewSessionNormalizesMode(t *testing.T) {
	_, err := NewSession(GameSettings{Mode: "BATTLE", PlayerCount: 1}, DefaultRules(), nil)
	assert.ErrorIs(t, err, ErrBattleNeedsTwoPlayers)

	s, err := NewSession(GameSettings{Mode: " Blitz ", PlayerCount: 2}, DefaultRules(), nil)
	require.NoError(t, err)
	assert.Equal(t, ModeBlitz, s.Mode())
	assert.Equal(t, ModeBlitz, s.Settings().Mode)
}
