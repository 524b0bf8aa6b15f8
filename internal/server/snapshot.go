package server

import "list-blitz/internal/engine"

// sessionPayload is what renderers receive, over HTTP and on every tick.
type sessionPayload struct {
	Type      string `json:"type"`
	SessionID string `json:"session_id"`
	JoinCode  string `json:"join_code"`
	engine.Snapshot
}

func newSessionPayload(live *liveSession) sessionPayload {
	return sessionPayload{
		Type:      "snapshot",
		SessionID: live.ID,
		JoinCode:  live.JoinCode,
		Snapshot:  live.Session.Snapshot(),
	}
}

func (s *Server) payloadFor(sessionID string) (sessionPayload, bool) {
	var payload sessionPayload
	ok := s.store.View(sessionID, func(live *liveSession) {
		payload = newSessionPayload(live)
	})
	return payload, ok
}
