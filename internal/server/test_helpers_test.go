package server

import (
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"list-blitz/internal/config"
	"list-blitz/internal/entitlement"
)

// manualTicker never fires on its own; tests drive countdowns with
// Server.tickSession.
type manualTicker struct {
	c       chan time.Time
	mu      sync.Mutex
	stopped bool
}

func (m *manualTicker) C() <-chan time.Time {
	return m.c
}

func (m *manualTicker) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = true
}

func manualTickers() tickerFactory {
	return func(time.Duration) Ticker {
		return &manualTicker{c: make(chan time.Time)}
	}
}

func newTestApp(t *testing.T) *Server {
	t.Helper()
	cfg := config.Default()
	cfg.SessionSecret = "test-secret"
	return newTestAppWithConfig(t, cfg)
}

func newTestAppWithConfig(t *testing.T, cfg config.Config) *Server {
	t.Helper()
	srv := New(nil, cfg,
		WithTickerFactory(manualTickers()),
		WithEntitlementRepo(entitlement.NewMemoryRepo()),
	)
	t.Cleanup(srv.Shutdown)
	return srv
}

func newTestServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()
	listener, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Skipf("skipping test; listen unavailable: %v", err)
	}
	ts := &httptest.Server{
		Listener: listener,
		Config:   &http.Server{Handler: handler},
	}
	ts.Start()
	t.Cleanup(ts.Close)
	return ts
}
