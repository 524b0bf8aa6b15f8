package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
)

type createdSession struct {
	ID       string
	JoinCode string
	Token    string
}

func createSession(t *testing.T, ts *httptest.Server, mode string, players int) createdSession {
	t.Helper()
	resp := doRequest(t, ts, http.MethodPost, "/api/sessions", "", map[string]any{
		"mode":         mode,
		"player_count": players,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	return createdSession{
		ID:       body["session_id"].(string),
		JoinCode: body["join_code"].(string),
		Token:    body["token"].(string),
	}
}

func sendIntent(t *testing.T, ts *httptest.Server, session createdSession, intent string) map[string]any {
	t.Helper()
	resp := doRequest(t, ts, http.MethodPost, "/api/sessions/"+session.ID+"/intents", session.Token, map[string]any{
		"intent": intent,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d for intent %s, got %d", http.StatusOK, intent, resp.StatusCode)
	}
	return decodeBody(t, resp)
}

func fetchSnapshot(t *testing.T, ts *httptest.Server, idOrCode string) map[string]any {
	t.Helper()
	resp := doRequest(t, ts, http.MethodGet, "/api/sessions/"+idOrCode, "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	return decodeBody(t, resp)
}

func playerPath(session createdSession, playerID int) string {
	return "/api/sessions/" + session.ID + "/players/" + strconv.Itoa(playerID)
}

func doRequest(t *testing.T, ts *httptest.Server, method, path, token string, payload any) *http.Response {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, ts.URL+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	t.Cleanup(func() {
		_ = resp.Body.Close()
	})
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

func assertString(t *testing.T, value any) {
	t.Helper()
	if _, ok := value.(string); !ok {
		t.Fatalf("expected string, got %T", value)
	}
}

func number(t *testing.T, value any) int {
	t.Helper()
	n, ok := value.(float64)
	if !ok {
		t.Fatalf("expected number, got %T (%v)", value, value)
	}
	return int(n)
}

func currentPlayerID(t *testing.T, snap map[string]any) int {
	t.Helper()
	player, ok := snap["current_player"].(map[string]any)
	if !ok {
		t.Fatalf("expected current_player, got %#v", snap["current_player"])
	}
	return number(t, player["id"])
}
