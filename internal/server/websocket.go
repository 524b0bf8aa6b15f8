package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"list-blitz/internal/engine"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// wsClient serializes writes; gorilla connections allow one writer at a time.
type wsClient struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *wsClient) write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

type wsHub struct {
	mu     sync.Mutex
	groups map[string]map[*wsClient]struct{}
}

func newWSHub() *wsHub {
	return &wsHub{
		groups: make(map[string]map[*wsClient]struct{}),
	}
}

func (h *wsHub) Add(sessionID string, client *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	group := h.groups[sessionID]
	if group == nil {
		group = make(map[*wsClient]struct{})
		h.groups[sessionID] = group
	}
	group[client] = struct{}{}
}

// Remove drops the client and reports how many remain for the session.
func (h *wsHub) Remove(sessionID string, client *wsClient) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	group := h.groups[sessionID]
	if group == nil {
		return 0
	}
	delete(group, client)
	_ = client.conn.Close()
	if len(group) == 0 {
		delete(h.groups, sessionID)
		return 0
	}
	return len(group)
}

func (h *wsHub) Count(sessionID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.groups[sessionID])
}

func (h *wsHub) Send(client *wsClient, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	_ = client.write(data)
}

func (h *wsHub) Broadcast(sessionID string, payload any) {
	h.mu.Lock()
	group := h.groups[sessionID]
	clients := make([]*wsClient, 0, len(group))
	for client := range group {
		clients = append(clients, client)
	}
	h.mu.Unlock()

	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	for _, client := range clients {
		if err := client.write(data); err != nil {
			h.Remove(sessionID, client)
		}
	}
}

// CloseGroup disconnects every renderer of a torn-down session.
func (h *wsHub) CloseGroup(sessionID string) {
	h.mu.Lock()
	group := h.groups[sessionID]
	delete(h.groups, sessionID)
	h.mu.Unlock()
	for client := range group {
		client.mu.Lock()
		_ = client.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session ended"))
		client.mu.Unlock()
		_ = client.conn.Close()
	}
}

func (s *Server) handleWebsocket(c *gin.Context) {
	live, ok := s.store.Resolve(c.Param("id"))
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}
	sessionID := live.ID
	canControl := false
	if raw := requestToken(c); raw != "" {
		canControl = s.checkSessionToken(raw, sessionID) == nil
	}
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	log.Printf("ws connected session_id=%s controller=%t remote=%s", sessionID, canControl, c.Request.RemoteAddr)
	client := &wsClient{conn: conn}
	s.ws.Add(sessionID, client)
	if payload, ok := s.payloadFor(sessionID); ok {
		s.ws.Send(client, payload)
	}
	go s.readWS(sessionID, client, canControl)
}

// readWS applies intents sent by an authorized renderer. Messages from
// read-only renderers are discarded.
func (s *Server) readWS(sessionID string, client *wsClient, canControl bool) {
	defer s.rendererGone(sessionID, client)
	for {
		_, data, err := client.conn.ReadMessage()
		if err != nil {
			log.Printf("ws disconnected session_id=%s error=%v", sessionID, err)
			return
		}
		if !canControl {
			continue
		}
		var in engine.Input
		if err := json.Unmarshal(data, &in); err != nil {
			s.ws.Send(client, gin.H{"type": "error", "error": "invalid intent"})
			continue
		}
		if _, err := s.applyIntent(sessionID, in); err != nil {
			s.ws.Send(client, gin.H{"type": "error", "error": err.Error()})
		}
	}
}

// rendererGone stops the countdown once nobody is watching a finished game.
// A later intent restarts it.
func (s *Server) rendererGone(sessionID string, client *wsClient) {
	if remaining := s.ws.Remove(sessionID, client); remaining > 0 {
		return
	}
	over := false
	s.store.View(sessionID, func(live *liveSession) {
		over = live.Session.Snapshot().RoundOver
	})
	if over {
		s.stopTicker(sessionID)
		log.Printf("ticker stopped session_id=%s reason=renderers_gone", sessionID)
	}
}
