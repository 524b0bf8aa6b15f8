package server

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"list-blitz/internal/engine"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("session not found")

type Store struct {
	mu       sync.Mutex
	sessions map[string]*liveSession
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*liveSession),
	}
}

func (s *Store) CreateSession(session *engine.Session, customerID string) *liveSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New().String()
	for {
		if _, exists := s.sessions[id]; !exists {
			break
		}
		id = uuid.New().String()
	}
	live := &liveSession{
		ID:         id,
		JoinCode:   s.newJoinCodeLocked(),
		CustomerID: customerID,
		CreatedAt:  timeNowUTC(),
		Session:    session,
	}
	s.sessions[id] = live
	return live
}

func (s *Store) newJoinCodeLocked() string {
	for {
		code := petname.Generate(2, "-")
		taken := false
		for _, live := range s.sessions {
			if live.JoinCode == code {
				taken = true
				break
			}
		}
		if !taken {
			return code
		}
	}
}

func (s *Store) GetSession(id string) (*liveSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	live, ok := s.sessions[id]
	return live, ok
}

// Resolve finds a session by id or join code.
func (s *Store) Resolve(idOrCode string) (*liveSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if live, ok := s.sessions[idOrCode]; ok {
		return live, true
	}
	code := strings.ToLower(strings.TrimSpace(idOrCode))
	for _, live := range s.sessions {
		if live.JoinCode == code {
			return live, true
		}
	}
	return nil, false
}

// UpdateSession runs update with the store locked. Every mutation of a live
// session goes through here so intents and ticks never interleave.
func (s *Store) UpdateSession(id string, update func(live *liveSession) error) (*liveSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	live, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if err := update(live); err != nil {
		return nil, err
	}
	return live, nil
}

// View runs read with the store locked.
func (s *Store) View(id string, read func(live *liveSession)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	live, ok := s.sessions[id]
	if !ok {
		return false
	}
	read(live)
	return true
}

func (s *Store) RemoveSession(id string) (*liveSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	live, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	delete(s.sessions, id)
	return live, true
}

func (s *Store) ListSessionSummaries() []SessionSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]SessionSummary, 0, len(s.sessions))
	created := make(map[string]time.Time, len(s.sessions))
	for _, live := range s.sessions {
		st := live.Session.Snapshot()
		list = append(list, SessionSummary{
			ID:       live.ID,
			JoinCode: live.JoinCode,
			Mode:     st.Mode,
			Players:  len(st.Players),
			Phase:    st.Phase,
		})
		created[live.ID] = live.CreatedAt
	}
	sort.Slice(list, func(i, j int) bool {
		return created[list[i].ID].Before(created[list[j].ID])
	})
	return list
}

func timeNowUTC() time.Time {
	return time.Now().UTC()
}
