package web

type PackView struct {
	Key         string
	Title       string
	ProductID   string
	PromptCount int
	Locked      bool
}

type SessionSummary struct {
	ID       string `json:"id"`
	JoinCode string `json:"join_code"`
	Mode     string `json:"mode"`
	Phase    string `json:"phase"`
	Players  int    `json:"players"`
	Screens  int    `json:"screens"`
}

type HomeData struct {
	Packs      []PackView
	Active     []SessionSummary
	MaxPlayers int
}

// DisplayData seeds the renderer page; live state arrives over the websocket.
type DisplayData struct {
	SessionID string
	JoinCode  string
	Mode      string
	PackTitle string
}

type PaginationData struct {
	BasePath   string `json:"-"`
	Page       int    `json:"page"`
	PerPage    int    `json:"per_page"`
	Total      int    `json:"total"`
	TotalPages int    `json:"total_pages"`
	HasPrev    bool   `json:"has_prev"`
	HasNext    bool   `json:"has_next"`
	PrevPage   int    `json:"prev_page,omitempty"`
	NextPage   int    `json:"next_page,omitempty"`
}

type HistoryRow struct {
	JoinCode    string
	Mode        string
	PlayerCount int
	PackID      string
	CreatedAt   string
	EndedAt     string
}

type HistoryData struct {
	Rows       []HistoryRow
	Enabled    bool
	Pagination PaginationData
}
