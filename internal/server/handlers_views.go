package server

import (
	"log"
	"net/http"

	"list-blitz/internal/web"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
)

func (s *Server) handleHome(c *gin.Context) {
	packs, _ := s.packViews(c, c.Query("customer_id"))
	templ.Handler(web.Home(web.HomeData{
		Packs:      packs,
		Active:     s.homeSummaries(),
		MaxPlayers: s.cfg.MaxPlayers,
	})).ServeHTTP(c.Writer, c.Request)
}

func (s *Server) handleDisplayView(c *gin.Context) {
	code := c.Param("code")
	live, ok := s.store.Resolve(code)
	if !ok {
		log.Printf("display view missing join_code=%s", code)
		c.Redirect(http.StatusFound, "/")
		return
	}
	settings := live.Session.Settings()
	templ.Handler(web.Display(web.DisplayData{
		SessionID: live.ID,
		JoinCode:  live.JoinCode,
		Mode:      string(settings.Mode),
		PackTitle: settings.PackTitle,
	})).ServeHTTP(c.Writer, c.Request)
}

func (s *Server) handleHistoryView(c *gin.Context) {
	page, perPage := parsePagination(c, defaultHistoryPerPage, maxHistoryPerPage)
	items, pagination, err := s.historyPage(page, perPage)
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to load history")
		return
	}
	rows := make([]web.HistoryRow, 0, len(items))
	for _, item := range items {
		row := web.HistoryRow{
			JoinCode:    item.JoinCode,
			Mode:        item.Mode,
			PlayerCount: item.PlayerCount,
			PackID:      item.PackID,
			CreatedAt:   item.CreatedAt,
		}
		if item.EndedAt != nil {
			row.EndedAt = *item.EndedAt
		}
		rows = append(rows, row)
	}
	templ.Handler(web.History(web.HistoryData{
		Rows:       rows,
		Enabled:    s.db != nil,
		Pagination: pagination,
	})).ServeHTTP(c.Writer, c.Request)
}

func (s *Server) homeSummaries() []web.SessionSummary {
	summaries := make([]web.SessionSummary, 0)
	for _, session := range s.store.ListSessionSummaries() {
		summaries = append(summaries, web.SessionSummary{
			ID:       session.ID,
			JoinCode: session.JoinCode,
			Mode:     string(session.Mode),
			Phase:    string(session.Phase),
			Players:  session.Players,
			Screens:  s.ws.Count(session.ID),
		})
	}
	return summaries
}
