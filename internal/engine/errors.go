package engine

import "errors"

var (
	ErrNoPlayers             = errors.New("at least one player is required")
	ErrBattleNeedsTwoPlayers = errors.New("battle mode needs at least two players")
	ErrUnknownMode           = errors.New("unknown game mode")
	ErrPlayerNotFound        = errors.New("player not found")
	ErrNegativeScore         = errors.New("score must not be negative")
	ErrTurnInProgress        = errors.New("turn in progress")
	ErrUnsupportedIntent     = errors.New("intent not supported in this mode")
	ErrSessionClosed         = errors.New("session closed")
	ErrNotInMatch            = errors.New("player is not in the current match")
	ErrMatchUnresolved       = errors.New("match not resolved")
	ErrBracketComplete       = errors.New("bracket complete")
	ErrWinnerMismatch        = errors.New("winner does not match the resolved match")
)
