package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChill(t *testing.T, players, turnCap int) (*Roster, *ChillController) {
	t.Helper()
	roster, err := NewRoster(players)
	require.NoError(t, err)
	return roster, NewChillController(roster, turnCap)
}

func newBlitz(t *testing.T, players, seconds int) (*Roster, *BlitzController) {
	t.Helper()
	roster, err := NewRoster(players)
	require.NoError(t, err)
	return roster, NewBlitzController(roster, seconds)
}

func send(t *testing.T, c ModeController, intents ...Intent) {
	t.Helper()
	for _, intent := range intents {
		require.NoError(t, c.RecordInput(Input{Intent: intent}))
	}
}

func TestIncrementBeforeStartIsIgnored(t *testing.T) {
	_, chill := newChill(t, 2, 5)
	send(t, chill, IntentIncrement, IntentIncrement)
	assert.Equal(t, PhaseAwaitingStart, chill.Phase())
	assert.Equal(t, 0, chill.TurnScore())
}

func TestChillTurnNeverExceedsCap(t *testing.T) {
	roster, chill := newChill(t, 2, 5)
	send(t, chill, IntentStart)
	for i := 0; i < 20; i++ {
		send(t, chill, IntentIncrement)
		assert.LessOrEqual(t, chill.TurnScore(), 5)
	}
	assert.Equal(t, PhaseTurnComplete, chill.Phase())
	p, _ := roster.Player(1)
	assert.Equal(t, 5, p.Score)
}

func TestChillDecrementClampsAtZero(t *testing.T) {
	_, chill := newChill(t, 1, 5)
	send(t, chill, IntentStart, IntentIncrement, IntentDecrement, IntentDecrement, IntentDecrement)
	assert.Equal(t, 0, chill.TurnScore())
	assert.Equal(t, PhaseInProgress, chill.Phase())
}

func TestBlitzRejectsDecrement(t *testing.T) {
	_, blitz := newBlitz(t, 1, 3)
	assert.ErrorIs(t, blitz.RecordInput(Input{Intent: IntentDecrement}), ErrUnsupportedIntent)
	assert.ErrorIs(t, blitz.RecordInput(Input{Intent: IntentPassTurn}), ErrUnsupportedIntent)
}

func TestBlitzTimeoutCommitsOnce(t *testing.T) {
	roster, blitz := newBlitz(t, 2, 3)
	send(t, blitz, IntentStart, IntentIncrement, IntentIncrement)
	blitz.Tick()
	send(t, blitz, IntentIncrement)
	blitz.Tick()
	assert.Equal(t, PhaseInProgress, blitz.Phase())
	blitz.Tick()
	assert.Equal(t, PhaseTurnComplete, blitz.Phase())

	p, _ := roster.Player(1)
	assert.Equal(t, 3, p.Score)

	send(t, blitz, IntentIncrement, IntentIncrement)
	blitz.Tick()
	blitz.Tick()
	p, _ = roster.Player(1)
	assert.Equal(t, 3, p.Score)
	assert.Equal(t, 3, blitz.TurnScore())
}

func TestBlitzTimeRemainingCountsDown(t *testing.T) {
	_, blitz := newBlitz(t, 1, 2)
	st := blitz.State()
	require.NotNil(t, st.TimeRemaining)
	assert.Equal(t, 2, *st.TimeRemaining)

	blitz.Tick()
	assert.Equal(t, 2, *blitz.State().TimeRemaining, "countdown must not run before start")

	send(t, blitz, IntentStart)
	blitz.Tick()
	assert.Equal(t, 1, *blitz.State().TimeRemaining)
}

func TestChillStateIsUntimed(t *testing.T) {
	_, chill := newChill(t, 1, 5)
	assert.Nil(t, chill.State().TimeRemaining)
	assert.Equal(t, 5, chill.State().TurnCap)
}

func TestTurnSequencingVisitsEachPlayerOnce(t *testing.T) {
	const n = 6
	_, chill := newChill(t, n, 5)
	var visited []int
	for i := 0; i < n; i++ {
		st := chill.State()
		require.NotNil(t, st.CurrentPlayer)
		visited = append(visited, st.CurrentPlayer.ID)
		send(t, chill, IntentStart, IntentIncrement, IntentNextPlayer)
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, visited)
	assert.True(t, chill.IsRoundOver())
	assert.Nil(t, chill.State().CurrentPlayer)

	send(t, chill, IntentNextPlayer)
	assert.Equal(t, PhaseRoundComplete, chill.Phase())
}

func TestChillEndToEnd(t *testing.T) {
	_, chill := newChill(t, 2, 5)

	send(t, chill, IntentStart)
	for i := 0; i < 5; i++ {
		send(t, chill, IntentIncrement)
	}
	assert.Equal(t, PhaseTurnComplete, chill.Phase())
	send(t, chill, IntentNextPlayer)
	require.NotNil(t, chill.State().CurrentPlayer)
	assert.Equal(t, 2, chill.State().CurrentPlayer.ID)

	send(t, chill, IntentStart, IntentIncrement, IntentIncrement, IntentNextPlayer)
	require.True(t, chill.IsRoundOver())

	ranking := chill.Ranking()
	require.Len(t, ranking, 2)
	assert.Equal(t, 1, ranking[0].ID)
	assert.Equal(t, 5, ranking[0].Score)
	assert.Equal(t, 2, ranking[1].ID)
	assert.Equal(t, 2, ranking[1].Score)
}

func TestEditScoreBypassesTurn(t *testing.T) {
	roster, chill := newChill(t, 3, 5)
	require.NoError(t, chill.RecordInput(Input{Intent: IntentEditScore, PlayerID: 3, Score: 4}))
	assert.Equal(t, 3, chill.Ranking()[0].ID)

	send(t, chill, IntentStart)
	err := chill.RecordInput(Input{Intent: IntentEditScore, PlayerID: 2, Score: 1})
	assert.ErrorIs(t, err, ErrTurnInProgress)

	send(t, chill, IntentNextPlayer)
	assert.ErrorIs(t, chill.RecordInput(Input{Intent: IntentEditScore, PlayerID: 2, Score: -2}), ErrNegativeScore)
	assert.ErrorIs(t, chill.RecordInput(Input{Intent: IntentEditScore, PlayerID: 9, Score: 2}), ErrPlayerNotFound)
	p, _ := roster.Player(3)
	assert.Equal(t, 4, p.Score)
}

func TestSkippingUnstartedTurnKeepsEditedScore(t *testing.T) {
	roster, chill := newChill(t, 2, 5)
	require.NoError(t, chill.RecordInput(Input{Intent: IntentEditScore, PlayerID: 1, Score: 2}))
	send(t, chill, IntentNextPlayer)
	p, _ := roster.Player(1)
	assert.Equal(t, 2, p.Score)
	assert.Equal(t, 2, chill.State().CurrentPlayer.ID)
}

func TestChillNextRoundResetsScores(t *testing.T) {
	roster, chill := newChill(t, 2, 5)
	send(t, chill, IntentStart, IntentIncrement, IntentNextPlayer, IntentNextPlayer)
	require.True(t, chill.IsRoundOver())

	send(t, chill, IntentNextRound)
	st := chill.State()
	assert.Equal(t, 2, st.Round)
	assert.Equal(t, PhaseAwaitingStart, st.Phase)
	assert.Equal(t, 1, st.CurrentPlayer.ID)
	for _, p := range roster.Players() {
		assert.Equal(t, 0, p.Score)
	}
}

func TestBlitzScoresCarryAcrossRounds(t *testing.T) {
	roster, blitz := newBlitz(t, 2, 1)
	send(t, blitz, IntentStart, IntentIncrement, IntentIncrement)
	blitz.Tick()
	send(t, blitz, IntentNextPlayer, IntentNextPlayer, IntentNextRound)

	st := blitz.State()
	assert.Equal(t, 2, st.Round)
	assert.Equal(t, 0, st.Score)
	assert.Equal(t, 1, *st.TimeRemaining)

	send(t, blitz, IntentStart, IntentIncrement)
	blitz.Tick()
	p, _ := roster.Player(1)
	assert.Equal(t, 3, p.Score)
}

func TestNextRoundIgnoredMidRound(t *testing.T) {
	_, chill := newChill(t, 2, 5)
	send(t, chill, IntentNextRound)
	assert.Equal(t, 1, chill.State().Round)
}

func TestRestartRewindsRound(t *testing.T) {
	roster, blitz := newBlitz(t, 2, 2)
	send(t, blitz, IntentStart, IntentIncrement, IntentNextPlayer, IntentNextPlayer, IntentNextRound, IntentRestart)
	st := blitz.State()
	assert.Equal(t, 1, st.Round)
	assert.Equal(t, 1, st.CurrentPlayer.ID)
	for _, p := range roster.Players() {
		assert.Equal(t, 0, p.Score)
	}
}
