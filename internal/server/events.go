package server

type EventPayload struct {
	SessionID   string `json:"session_id,omitempty"`
	JoinCode    string `json:"join_code,omitempty"`
	Mode        string `json:"mode,omitempty"`
	PlayerCount int    `json:"player_count,omitempty"`
	PackID      string `json:"pack_id,omitempty"`
	Intent      string `json:"intent,omitempty"`
	PlayerID    int    `json:"player_id,omitempty"`
	Name        string `json:"name,omitempty"`
	Score       *int   `json:"score,omitempty"`
	Phase       string `json:"phase,omitempty"`
	Round       int    `json:"round,omitempty"`
	Reason      string `json:"reason,omitempty"`
}
