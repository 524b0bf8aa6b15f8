package server

import (
	"log"
	"net/http"
	"strings"
	"time"

	"list-blitz/internal/qrcode"
	"list-blitz/internal/web"

	"github.com/gin-gonic/gin"
)

const (
	qrCodeSize            = 256
	defaultHistoryPerPage = 20
	maxHistoryPerPage     = 100
)

type packResponse struct {
	Key         string `json:"key"`
	Title       string `json:"title"`
	ProductID   string `json:"product_id,omitempty"`
	PromptCount int    `json:"prompt_count"`
	Locked      bool   `json:"locked"`
}

type grantRequest struct {
	CustomerID string `json:"customer_id" binding:"required,max=128"`
	ProductID  string `json:"product_id" binding:"required,max=128"`
}

type historyItem struct {
	ID          string  `json:"session_id"`
	JoinCode    string  `json:"join_code"`
	Mode        string  `json:"mode"`
	PlayerCount int     `json:"player_count"`
	PackID      string  `json:"pack_id"`
	CreatedAt   string  `json:"created_at"`
	EndedAt     *string `json:"ended_at"`
}

func (s *Server) handleQRCode(c *gin.Context) {
	var uri sessionURI
	if !bindURI(c, &uri) {
		return
	}
	live, ok := s.store.Resolve(uri.ID)
	if !ok {
		respondError(c, ErrSessionNotFound)
		return
	}
	png, err := qrcode.JoinPNG(s.displayURL(live.JoinCode), qrCodeSize)
	if err != nil {
		log.Printf("qrcode render failed session_id=%s error=%v", live.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render qr code"})
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

func (s *Server) handleListPacks(c *gin.Context) {
	packs, err := s.packViews(c, strings.TrimSpace(c.Query("customer_id")))
	if err != nil {
		respondError(c, err)
		return
	}
	list := make([]packResponse, 0, len(packs))
	for _, pack := range packs {
		list = append(list, packResponse{
			Key:         pack.Key,
			Title:       pack.Title,
			ProductID:   pack.ProductID,
			PromptCount: pack.PromptCount,
			Locked:      pack.Locked,
		})
	}
	c.JSON(http.StatusOK, gin.H{"packs": list})
}

func (s *Server) packViews(c *gin.Context, customerID string) ([]web.PackView, error) {
	packs := s.library.Packs()
	views := make([]web.PackView, 0, len(packs))
	for _, pack := range packs {
		locked, err := s.entitlements.IsLocked(c.Request.Context(), customerID, pack)
		if err != nil {
			log.Printf("entitlement check failed pack=%s error=%v", pack.Key, err)
			return nil, err
		}
		views = append(views, web.PackView{
			Key:         pack.Key,
			Title:       pack.Title,
			ProductID:   pack.ProductID,
			PromptCount: len(pack.Prompts),
			Locked:      locked,
		})
	}
	return views, nil
}

func (s *Server) handleGrantEntitlement(c *gin.Context) {
	if err := s.authorizeAdmin(c); err != nil {
		respondError(c, err)
		return
	}
	var req grantRequest
	if !bindJSON(c, &req, bindMessages{
		"CustomerID": {"required": "customer_id is required"},
		"ProductID":  {"required": "product_id is required"},
	}, "invalid entitlement") {
		return
	}
	if err := s.entitlements.Grant(c.Request.Context(), req.CustomerID, req.ProductID); err != nil {
		log.Printf("entitlement grant failed customer_id=%s product_id=%s error=%v", req.CustomerID, req.ProductID, err)
		respondError(c, err)
		return
	}
	log.Printf("entitlement granted customer_id=%s product_id=%s", req.CustomerID, req.ProductID)
	c.JSON(http.StatusCreated, gin.H{"status": "granted"})
}

func (s *Server) handleHistory(c *gin.Context) {
	page, perPage := parsePagination(c, defaultHistoryPerPage, maxHistoryPerPage)
	items, pagination, err := s.historyPage(page, perPage)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"sessions":   items,
		"pagination": pagination,
	})
}

func (s *Server) historyPage(page, perPage int) ([]historyItem, web.PaginationData, error) {
	records, total, err := s.listHistory(page, perPage)
	if err != nil {
		log.Printf("history query failed error=%v", err)
		return nil, web.PaginationData{}, err
	}
	items := make([]historyItem, 0, len(records))
	for _, record := range records {
		item := historyItem{
			ID:          record.PublicID,
			JoinCode:    record.JoinCode,
			Mode:        record.Mode,
			PlayerCount: record.PlayerCount,
			PackID:      record.PackID,
			CreatedAt:   record.CreatedAt.UTC().Format(time.RFC3339),
		}
		if record.EndedAt != nil {
			ended := record.EndedAt.UTC().Format(time.RFC3339)
			item.EndedAt = &ended
		}
		items = append(items, item)
	}
	return items, buildPaginationData("/history", page, perPage, total), nil
}
