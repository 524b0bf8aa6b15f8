package server

import (
	"time"

	"list-blitz/internal/engine"
)

const (
	eventSessionCreated = "session_created"
	eventIntentApplied  = "intent_applied"
	eventPhaseChanged   = "phase_changed"
	eventPlayerUpdated  = "player_updated"
	eventSessionEnded   = "session_ended"
)

// liveSession wraps an engine session with the transport details the server
// needs to route renderers and persist history.
type liveSession struct {
	ID         string
	DBID       uint
	JoinCode   string
	CustomerID string
	CreatedAt  time.Time
	Session    *engine.Session
}

type SessionSummary struct {
	ID       string
	JoinCode string
	Mode     engine.GameMode
	Players  int
	Phase    engine.Phase
}
