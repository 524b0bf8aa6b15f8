package server

import (
	"errors"
	"log"
	"time"

	"list-blitz/internal/engine"
)

// Ticker is the repeating callback source behind session countdowns.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type tickerFactory func(interval time.Duration) Ticker

type wallTicker struct {
	t *time.Ticker
}

func newWallTicker(interval time.Duration) Ticker {
	return &wallTicker{t: time.NewTicker(interval)}
}

func (w *wallTicker) C() <-chan time.Time {
	return w.t.C
}

func (w *wallTicker) Stop() {
	w.t.Stop()
}

type sessionTicker struct {
	ticker Ticker
	done   chan struct{}
}

// startTicker starts the countdown loop for a session. Calling it for a
// session that already has one is a no-op.
func (s *Server) startTicker(sessionID string) {
	s.tickersMu.Lock()
	defer s.tickersMu.Unlock()
	if _, ok := s.tickers[sessionID]; ok {
		return
	}
	st := &sessionTicker{
		ticker: s.newTicker(s.cfg.TickInterval()),
		done:   make(chan struct{}),
	}
	s.tickers[sessionID] = st
	go func() {
		for {
			select {
			case <-st.done:
				return
			case <-st.ticker.C():
				s.tickSession(sessionID)
			}
		}
	}()
}

func (s *Server) stopTicker(sessionID string) {
	s.tickersMu.Lock()
	defer s.tickersMu.Unlock()
	if st, ok := s.tickers[sessionID]; ok {
		st.ticker.Stop()
		close(st.done)
		delete(s.tickers, sessionID)
	}
}

func (s *Server) hasTicker(sessionID string) bool {
	s.tickersMu.Lock()
	defer s.tickersMu.Unlock()
	_, ok := s.tickers[sessionID]
	return ok
}

// tickSession advances one countdown unit, broadcasts the new state and
// records a phase change when the countdown ended a turn or a match.
func (s *Server) tickSession(sessionID string) {
	var (
		payload sessionPayload
		changed bool
		before  engine.Phase
		dbID    uint
	)
	_, err := s.store.UpdateSession(sessionID, func(live *liveSession) error {
		if live.Session.Closed() {
			return engine.ErrSessionClosed
		}
		before = live.Session.Snapshot().Phase
		changed = live.Session.Tick()
		payload = newSessionPayload(live)
		dbID = live.DBID
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) || errors.Is(err, engine.ErrSessionClosed) {
			s.stopTicker(sessionID)
		}
		return
	}
	if changed {
		log.Printf("countdown expired session_id=%s from=%s to=%s", sessionID, before, payload.Phase)
		if err := s.persistEvent(dbID, eventPhaseChanged, nil, EventPayload{
			SessionID: sessionID,
			Phase:     string(payload.Phase),
			Round:     payload.Round,
			Reason:    "timeout",
		}); err != nil {
			log.Printf("persist phase change failed session_id=%s error=%v", sessionID, err)
		}
	}
	s.ws.Broadcast(sessionID, payload)
}
