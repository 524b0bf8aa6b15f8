package server

import (
	"log"
	"net/http"
	"sync"

	"list-blitz/internal/config"
	"list-blitz/internal/entitlement"
	"list-blitz/internal/prompts"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Server struct {
	store        *Store
	db           *gorm.DB
	ws           *wsHub
	cfg          config.Config
	library      *prompts.Library
	supply       *prompts.Supply
	entitlements *entitlement.Service
	newTicker    tickerFactory
	tickersMu    sync.Mutex
	tickers      map[string]*sessionTicker
	// signingKey is SESSION_SECRET, or a per-process random key when unset.
	signingKey []byte
	// adminEnabled is false without a configured secret.
	adminEnabled bool
}

type Option func(*Server)

// WithTickerFactory replaces the wall-clock ticker driving session countdowns.
func WithTickerFactory(factory tickerFactory) Option {
	return func(s *Server) {
		s.newTicker = factory
	}
}

func WithLibrary(lib *prompts.Library) Option {
	return func(s *Server) {
		s.library = lib
	}
}

func WithEntitlementRepo(repo entitlement.Repo) Option {
	return func(s *Server) {
		s.entitlements = entitlement.NewService(repo)
	}
}

func New(conn *gorm.DB, cfg config.Config, opts ...Option) *Server {
	s := &Server{
		store:     NewStore(),
		db:        conn,
		ws:        newWSHub(),
		cfg:       cfg,
		newTicker: newWallTicker,
		tickers:   make(map[string]*sessionTicker),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.library == nil {
		lib, err := prompts.LoadLibrary(conn)
		if err != nil {
			log.Printf("prompt library load failed, using built-in packs error=%v", err)
			lib = prompts.DefaultLibrary()
		}
		s.library = lib
	}
	s.supply = prompts.NewSupply(s.library)
	if s.entitlements == nil {
		if conn != nil {
			s.entitlements = entitlement.NewService(entitlement.NewGormRepo(conn))
		} else {
			s.entitlements = entitlement.NewService(entitlement.NewMemoryRepo())
		}
	}
	s.signingKey, s.adminEnabled = signingKeyFor(cfg.SessionSecret)
	registerValidators()
	return s
}

func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/", s.handleHome)
	router.GET("/display/:code", s.handleDisplayView)
	router.GET("/history", s.handleHistoryView)

	api := router.Group("/api")
	api.POST("/sessions", s.handleCreateSession)
	api.GET("/sessions/:id", s.handleGetSession)
	api.DELETE("/sessions/:id", s.handleDeleteSession)
	api.POST("/sessions/:id/intents", s.handleIntent)
	api.PUT("/sessions/:id/players/:player_id", s.handleUpdatePlayer)
	api.GET("/sessions/:id/qrcode", s.handleQRCode)
	api.GET("/packs", s.handleListPacks)
	api.POST("/entitlements", s.handleGrantEntitlement)
	api.GET("/history", s.handleHistory)

	router.GET("/ws/sessions/:id", s.handleWebsocket)
	return router
}

// Shutdown stops every session ticker.
func (s *Server) Shutdown() {
	s.tickersMu.Lock()
	ids := make([]string, 0, len(s.tickers))
	for id := range s.tickers {
		ids = append(ids, id)
	}
	s.tickersMu.Unlock()
	for _, id := range ids {
		s.stopTicker(id)
	}
}
