package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"list-blitz/internal/engine"

	"github.com/gin-gonic/gin"
)

var (
	ErrUnknownPack    = errors.New("unknown prompt pack")
	ErrPackLocked     = errors.New("prompt pack is locked")
	ErrTooManyPlayers = errors.New("too many players")
)

type createSessionRequest struct {
	Mode        string `json:"mode" binding:"required,mode"`
	PlayerCount int    `json:"player_count"`
	PackID      string `json:"pack_id" binding:"packid"`
	CustomerID  string `json:"customer_id" binding:"max=128"`
}

type sessionURI struct {
	ID string `uri:"id" binding:"required"`
}

type playerURI struct {
	ID       string `uri:"id" binding:"required"`
	PlayerID int    `uri:"player_id" binding:"required,min=1"`
}

type intentRequest struct {
	Intent   string `json:"intent" binding:"required,intent"`
	PlayerID int    `json:"player_id" binding:"min=0"`
	Score    int    `json:"score"`
}

type updatePlayerRequest struct {
	Name  *string `json:"name" binding:"omitempty,playername"`
	Score *int    `json:"score" binding:"omitempty,min=0"`
}

func (s *Server) handleCreateSession(c *gin.Context) {
	var req createSessionRequest
	if !bindJSON(c, &req, bindMessages{
		"Mode":       {"required": "mode is required", "mode": "mode must be chill, blitz or battle"},
		"PackID":     {"packid": "pack_id contains unsupported characters"},
		"CustomerID": {"max": "customer_id is too long"},
	}, "invalid session request") {
		return
	}
	mode, err := parseModeField(req.Mode)
	if err != nil {
		respondError(c, err)
		return
	}
	if s.cfg.MaxPlayers > 0 && req.PlayerCount > s.cfg.MaxPlayers {
		respondError(c, fmt.Errorf("%w: at most %d players", ErrTooManyPlayers, s.cfg.MaxPlayers))
		return
	}
	packID := strings.TrimSpace(req.PackID)
	if packID == "" {
		packID = s.cfg.DefaultPack
	}
	pack, ok := s.library.Pack(packID)
	if !ok {
		respondError(c, fmt.Errorf("%w: %q", ErrUnknownPack, packID))
		return
	}
	locked, err := s.entitlements.IsLocked(c.Request.Context(), req.CustomerID, pack)
	if err != nil {
		log.Printf("entitlement check failed pack=%s error=%v", pack.Key, err)
		respondError(c, err)
		return
	}
	if locked {
		respondError(c, ErrPackLocked)
		return
	}

	session, err := engine.NewSession(engine.GameSettings{
		Mode:        mode,
		PlayerCount: req.PlayerCount,
		PackID:      pack.Key,
		PackTitle:   pack.Title,
	}, s.cfg.Rules(), s.supply)
	if err != nil {
		respondError(c, err)
		return
	}
	live := s.store.CreateSession(session, strings.TrimSpace(req.CustomerID))
	dbID, err := s.persistSession(live)
	if err != nil {
		log.Printf("persist session failed session_id=%s error=%v", live.ID, err)
	}
	if dbID != 0 {
		_, _ = s.store.UpdateSession(live.ID, func(live *liveSession) error {
			live.DBID = dbID
			return nil
		})
	}
	token, err := s.issueToken(live.ID, roleController, controllerTokenTTL)
	if err != nil {
		log.Printf("issue token failed session_id=%s error=%v", live.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}
	s.startTicker(live.ID)
	log.Printf("session created session_id=%s join_code=%s mode=%s players=%d pack=%s", live.ID, live.JoinCode, mode, req.PlayerCount, pack.Key)
	c.JSON(http.StatusCreated, gin.H{
		"session_id":  live.ID,
		"join_code":   live.JoinCode,
		"token":       token,
		"display_url": s.displayURL(live.JoinCode),
	})
}

func (s *Server) handleGetSession(c *gin.Context) {
	var uri sessionURI
	if !bindURI(c, &uri) {
		return
	}
	live, ok := s.store.Resolve(uri.ID)
	if !ok {
		respondError(c, ErrSessionNotFound)
		return
	}
	payload, ok := s.payloadFor(live.ID)
	if !ok {
		respondError(c, ErrSessionNotFound)
		return
	}
	c.JSON(http.StatusOK, payload)
}

func (s *Server) handleDeleteSession(c *gin.Context) {
	var uri sessionURI
	if !bindURI(c, &uri) {
		return
	}
	if _, ok := s.store.GetSession(uri.ID); !ok {
		respondError(c, ErrSessionNotFound)
		return
	}
	if err := s.authorizeSession(c, uri.ID); err != nil {
		respondError(c, err)
		return
	}
	if err := s.teardown(uri.ID, "deleted"); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ended"})
}

func (s *Server) handleIntent(c *gin.Context) {
	var uri sessionURI
	if !bindURI(c, &uri) {
		return
	}
	if _, ok := s.store.GetSession(uri.ID); !ok {
		respondError(c, ErrSessionNotFound)
		return
	}
	if err := s.authorizeSession(c, uri.ID); err != nil {
		respondError(c, err)
		return
	}
	var req intentRequest
	if !bindJSON(c, &req, bindMessages{
		"Intent":   {"required": "intent is required", "intent": "unknown intent"},
		"PlayerID": {"min": "player_id must not be negative"},
	}, "invalid intent") {
		return
	}
	payload, err := s.applyIntent(uri.ID, engine.Input{
		Intent:   parseIntent(req.Intent),
		PlayerID: req.PlayerID,
		Score:    req.Score,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payload)
}

func (s *Server) handleUpdatePlayer(c *gin.Context) {
	var uri playerURI
	if !bindURI(c, &uri) {
		return
	}
	if _, ok := s.store.GetSession(uri.ID); !ok {
		respondError(c, ErrSessionNotFound)
		return
	}
	if err := s.authorizeSession(c, uri.ID); err != nil {
		respondError(c, err)
		return
	}
	var req updatePlayerRequest
	if !bindJSON(c, &req, bindMessages{
		"Name":  {"playername": fmt.Sprintf("name must be %d safe characters or fewer", maxNameLength)},
		"Score": {"min": "score must not be negative"},
	}, "invalid player update") {
		return
	}
	var (
		payload sessionPayload
		dbID    uint
	)
	_, err := s.store.UpdateSession(uri.ID, func(live *liveSession) error {
		if req.Name != nil {
			if err := live.Session.Rename(uri.PlayerID, normalizeText(*req.Name)); err != nil {
				return err
			}
		}
		if req.Score != nil {
			if err := live.Session.Apply(engine.Input{
				Intent:   engine.IntentEditScore,
				PlayerID: uri.PlayerID,
				Score:    *req.Score,
			}); err != nil {
				return err
			}
		}
		payload = newSessionPayload(live)
		dbID = live.DBID
		return nil
	})
	if err != nil {
		log.Printf("player update rejected session_id=%s player_id=%d error=%v", uri.ID, uri.PlayerID, err)
		respondError(c, err)
		return
	}
	event := EventPayload{SessionID: uri.ID, PlayerID: uri.PlayerID, Score: req.Score}
	if req.Name != nil {
		event.Name = normalizeText(*req.Name)
	}
	playerID := uri.PlayerID
	if err := s.persistEvent(dbID, eventPlayerUpdated, &playerID, event); err != nil {
		log.Printf("persist player update failed session_id=%s error=%v", uri.ID, err)
	}
	s.ws.Broadcast(uri.ID, payload)
	c.JSON(http.StatusOK, payload)
}

// applyIntent feeds one intent to the session under the store lock, then
// broadcasts and records it.
func (s *Server) applyIntent(sessionID string, in engine.Input) (sessionPayload, error) {
	var (
		payload sessionPayload
		before  engine.Phase
		dbID    uint
	)
	_, err := s.store.UpdateSession(sessionID, func(live *liveSession) error {
		before = live.Session.Snapshot().Phase
		if err := live.Session.Apply(in); err != nil {
			return err
		}
		payload = newSessionPayload(live)
		dbID = live.DBID
		return nil
	})
	if err != nil {
		log.Printf("intent rejected session_id=%s intent=%s error=%v", sessionID, in.Intent, err)
		return sessionPayload{}, err
	}
	s.startTicker(sessionID)

	tally := in.Intent == engine.IntentIncrement || in.Intent == engine.IntentDecrement
	if !tally || payload.Phase != before {
		event := EventPayload{
			SessionID: sessionID,
			Intent:    string(in.Intent),
			PlayerID:  in.PlayerID,
			Phase:     string(payload.Phase),
			Round:     payload.Round,
		}
		var playerID *int
		if in.Intent == engine.IntentEditScore {
			score := in.Score
			event.Score = &score
			id := in.PlayerID
			playerID = &id
		}
		if err := s.persistEvent(dbID, eventIntentApplied, playerID, event); err != nil {
			log.Printf("persist intent failed session_id=%s intent=%s error=%v", sessionID, in.Intent, err)
		}
	}
	s.ws.Broadcast(sessionID, payload)
	return payload, nil
}

// teardown closes a session, cancels its countdown and disconnects its
// renderers.
func (s *Server) teardown(sessionID, reason string) error {
	var (
		payload sessionPayload
		dbID    uint
	)
	_, err := s.store.UpdateSession(sessionID, func(live *liveSession) error {
		live.Session.Close()
		payload = newSessionPayload(live)
		dbID = live.DBID
		return nil
	})
	if err != nil {
		return err
	}
	s.stopTicker(sessionID)
	s.ws.Broadcast(sessionID, payload)
	s.store.RemoveSession(sessionID)
	s.ws.CloseGroup(sessionID)
	if err := s.persistSessionEnded(dbID, sessionID, reason); err != nil {
		log.Printf("persist session end failed session_id=%s error=%v", sessionID, err)
	}
	log.Printf("session torn down session_id=%s reason=%s", sessionID, reason)
	return nil
}

func (s *Server) displayURL(joinCode string) string {
	return strings.TrimRight(s.cfg.PublicURL, "/") + "/display/" + joinCode
}
