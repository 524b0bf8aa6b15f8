package engine

import (
	"fmt"
	"strings"
)

type GameMode string

const (
	ModeChill  GameMode = "chill"
	ModeBlitz  GameMode = "blitz"
	ModeBattle GameMode = "battle"
)

func ParseMode(raw string) (GameMode, error) {
	switch mode := GameMode(strings.ToLower(strings.TrimSpace(raw))); mode {
	case ModeChill, ModeBlitz, ModeBattle:
		return mode, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, raw)
	}
}

// GameSettings is filled in by the player-select screen and consumed once
// when a session is created.
type GameSettings struct {
	Mode        GameMode `json:"mode"`
	PlayerCount int      `json:"player_count"`
	PackID      string   `json:"pack_id"`
	PackTitle   string   `json:"pack_title"`
}

func DefaultSettings() GameSettings {
	return GameSettings{
		Mode:        ModeChill,
		PlayerCount: 2,
		PackID:      "classic",
		PackTitle:   "Classic",
	}
}

// Normalize returns the settings with the mode parsed, or an error for
// settings no session can be built from.
func (s GameSettings) Normalize() (GameSettings, error) {
	mode, err := ParseMode(string(s.Mode))
	if err != nil {
		return s, err
	}
	s.Mode = mode
	return s, s.Validate()
}

func (s GameSettings) Validate() error {
	mode, err := ParseMode(string(s.Mode))
	if err != nil {
		return err
	}
	if s.PlayerCount <= 0 {
		return ErrNoPlayers
	}
	if mode == ModeBattle && s.PlayerCount < 2 {
		return ErrBattleNeedsTwoPlayers
	}
	return nil
}

// Rules carries the per-mode tuning knobs.
type Rules struct {
	ChillTurnCap      int
	BlitzTurnSeconds  int
	BattleTurnSeconds int
}

func DefaultRules() Rules {
	return Rules{
		ChillTurnCap:      5,
		BlitzTurnSeconds:  30,
		BattleTurnSeconds: 10,
	}
}

func (r Rules) normalized() Rules {
	def := DefaultRules()
	if r.ChillTurnCap <= 0 {
		r.ChillTurnCap = def.ChillTurnCap
	}
	if r.BlitzTurnSeconds <= 0 {
		r.BlitzTurnSeconds = def.BlitzTurnSeconds
	}
	if r.BattleTurnSeconds <= 0 {
		r.BattleTurnSeconds = def.BattleTurnSeconds
	}
	return r
}
