// internal/api/server.go
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	apihandler "github.com/adamdoherty-arc/magnus/internal/api/handler/api"
	"github.com/adamdoherty-arc/magnus/internal/api/middleware"
	"github.com/adamdoherty-arc/magnus/internal/metrics"
	"github.com/adamdoherty-arc/magnus/internal/position"
	"github.com/adamdoherty-arc/magnus/internal/risk"
	"github.com/adamdoherty-arc/magnus/internal/storage/archive"
	"github.com/adamdoherty-arc/magnus/internal/storage/ledger"
	"github.com/adamdoherty-arc/magnus/internal/strategy"
	"github.com/adamdoherty-arc/magnus/internal/strategy/coveredcall"
	"github.com/adamdoherty-arc/magnus/internal/tax"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server is the HTTP front end over the engine, portfolio, and tax
// calculator.
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
	mux        *http.ServeMux
}

// Config holds server configuration.
type Config struct {
	Host   string
	Port   int
	APIKey string

	ScanConfig     coveredcall.ScanConfig
	ScanMaxResults int
	MetricsPath    string
}

// Deps holds the wired application components the routes serve.
type Deps struct {
	Engine    *strategy.Engine
	Portfolio *position.Portfolio
	Risk      *risk.Manager
	Tax       *tax.Calculator
	Ledger    ledger.Store
	Archiver  *archive.Archiver
	Metrics   *metrics.Registry
}

// NewServer creates a new HTTP server.
func NewServer(cfg Config, deps Deps, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	mux := http.NewServeMux()

	var handler http.Handler = mux
	handler = middleware.APIKeyAuth(cfg.APIKey)(handler)
	if deps.Metrics != nil {
		handler = metrics.HTTPMiddleware(deps.Metrics)(handler)
	}
	handler = metrics.LoggingMiddleware(logger)(handler)

	s := &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Handler:      handler,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
		mux:    mux,
	}

	s.setupRoutes(cfg, deps)
	return s, nil
}

func (s *Server) setupRoutes(cfg Config, deps Deps) {
	analyze := apihandler.NewAnalyzeHandler(deps.Engine, deps.Ledger, deps.Metrics)
	positions := apihandler.NewPositionsHandler(deps.Portfolio, deps.Risk, deps.Metrics)
	portfolio := apihandler.NewPortfolioHandler(deps.Portfolio, deps.Risk)
	taxes := apihandler.NewTaxHandler(deps.Portfolio, deps.Tax, deps.Archiver, deps.Metrics)

	scanCfg := cfg.ScanConfig
	if scanCfg.Rungs < 1 {
		scanCfg = coveredcall.DefaultScanConfig()
	}
	maxResults := cfg.ScanMaxResults
	if maxResults < 1 {
		maxResults = 10
	}
	scan := apihandler.NewScanHandler(scanCfg, maxResults, deps.Metrics)

	s.mux.HandleFunc("POST /api/v1/analyze", analyze.Analyze)
	s.mux.HandleFunc("GET /api/v1/analyses", analyze.History)

	s.mux.HandleFunc("GET /api/v1/positions", positions.List)
	s.mux.HandleFunc("POST /api/v1/positions", positions.Open)
	s.mux.HandleFunc("GET /api/v1/positions/{id}", positions.Get)
	s.mux.HandleFunc("POST /api/v1/positions/{id}/close", positions.Close)
	s.mux.HandleFunc("POST /api/v1/positions/{id}/assign", positions.Assign)

	s.mux.HandleFunc("GET /api/v1/portfolio", portfolio.Get)

	s.mux.HandleFunc("GET /api/v1/tax/report", taxes.Report)
	s.mux.HandleFunc("POST /api/v1/tax/report", taxes.Report)
	s.mux.HandleFunc("POST /api/v1/tax/placement", taxes.Placement)

	s.mux.HandleFunc("POST /api/v1/scan", scan.Scan)

	alerts := apihandler.NewAlertsHandler(deps.Portfolio)
	s.mux.HandleFunc("GET /api/v1/alerts", alerts.Evaluate)
	s.mux.HandleFunc("POST /api/v1/alerts", alerts.Evaluate)

	s.mux.HandleFunc("GET /api/v1/health", s.handleHealth)

	if deps.Metrics != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		s.mux.Handle("GET "+path, promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{}))
	}
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the middleware-wrapped handler for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
