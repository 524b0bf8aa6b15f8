package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializePlayersCreatesContiguousIDs(t *testing.T) {
	for n := 1; n <= 50; n++ {
		roster := &Roster{}
		players, err := roster.InitializePlayers(n)
		require.NoError(t, err)
		require.Len(t, players, n)
		for i, p := range players {
			assert.Equal(t, i+1, p.ID)
			assert.Equal(t, 0, p.Score)
		}
	}
}

func TestInitializePlayersRejectsZero(t *testing.T) {
	roster := &Roster{}
	_, err := roster.InitializePlayers(0)
	assert.ErrorIs(t, err, ErrNoPlayers)
	assert.Equal(t, 0, roster.Len())
}

func TestInitializePlayersReplacesRoster(t *testing.T) {
	roster, err := NewRoster(4)
	require.NoError(t, err)
	require.NoError(t, roster.UpdatePlayerScore(2, 9))

	_, err = roster.InitializePlayers(2)
	require.NoError(t, err)
	assert.Equal(t, 2, roster.Len())
	p, ok := roster.Player(2)
	require.True(t, ok)
	assert.Equal(t, 0, p.Score)
	assert.Equal(t, "Player 2", p.Name)
}

func TestUpdatePlayerScoreOnlyTouchesTarget(t *testing.T) {
	roster, err := NewRoster(5)
	require.NoError(t, err)
	for id := 1; id <= 5; id++ {
		before := roster.Players()
		require.NoError(t, roster.UpdatePlayerScore(id, id*3))
		after := roster.Players()
		require.Len(t, after, 5)
		for i := range after {
			if after[i].ID == id {
				assert.Equal(t, id*3, after[i].Score)
				continue
			}
			assert.Equal(t, before[i], after[i])
		}
	}
}

func TestUpdatePlayerScoreUnknownOrNegative(t *testing.T) {
	roster, err := NewRoster(2)
	require.NoError(t, err)
	before := roster.Players()

	assert.ErrorIs(t, roster.UpdatePlayerScore(7, 3), ErrPlayerNotFound)
	assert.ErrorIs(t, roster.UpdatePlayerScore(1, -1), ErrNegativeScore)
	assert.Equal(t, before, roster.Players())
}

func TestRenameFallsBackToDefault(t *testing.T) {
	roster, err := NewRoster(2)
	require.NoError(t, err)

	require.NoError(t, roster.Rename(1, "  Ada "))
	p, _ := roster.Player(1)
	assert.Equal(t, "Ada", p.Name)

	require.NoError(t, roster.Rename(1, " "))
	p, _ = roster.Player(1)
	assert.Equal(t, "Player 1", p.Name)
	assert.ErrorIs(t, roster.Rename(3, "Cam"), ErrPlayerNotFound)
}

func TestRankingIsStable(t *testing.T) {
	players := []Player{
		{ID: 1, Score: 3},
		{ID: 2, Score: 5},
		{ID: 3, Score: 5},
		{ID: 4, Score: 0},
	}
	ranked := Ranking(players)
	ids := make([]int, 0, len(ranked))
	for _, p := range ranked {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []int{2, 3, 1, 4}, ids)
	assert.Equal(t, 1, players[0].ID, "input must not be reordered")
}

func TestSettingsValidate(t *testing.T) {
	assert.NoError(t, DefaultSettings().Validate())
	assert.ErrorIs(t, GameSettings{Mode: ModeChill}.Validate(), ErrNoPlayers)
	assert.ErrorIs(t, GameSettings{Mode: ModeBattle, PlayerCount: 1}.Validate(), ErrBattleNeedsTwoPlayers)
	assert.ErrorIs(t, GameSettings{Mode: "party", PlayerCount: 3}.Validate(), ErrUnknownMode)

	mode, err := ParseMode(" Blitz ")
	require.NoError(t, err)
	assert.Equal(t, ModeBlitz, mode)
}
