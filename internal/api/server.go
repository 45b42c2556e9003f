// Package api exposes the question bank and the scoring and journey engines
// over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/verte-zerg/parcours/internal/logger"
	"github.com/verte-zerg/parcours/internal/model"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = ":3001"

const shutdownTimeout = 10 * time.Second

// QuestionRepository lists question texts by mode.
type QuestionRepository interface {
	ListQuestions(ctx context.Context, mode string) ([]string, error)
}

// Config configures a Server.
type Config struct {
	Addr           string
	AllowedOrigins []string
	Questions      QuestionRepository
	Items          []model.NavigationItem
	Log            *logger.Logger
	Now            func() time.Time
}

// Server wraps the gin engine and its http.Server.
type Server struct {
	cfg     Config
	log     *logger.Logger
	metrics *Metrics
	engine  *gin.Engine
	server  *http.Server
}

// New builds the router and middleware chain.
func New(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Log == nil {
		cfg.Log = logger.Nop()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	s := &Server{cfg: cfg, log: cfg.Log, metrics: NewMetrics()}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(cfg.Log))
	r.Use(s.metrics.Middleware())
	r.Use(CORS(cfg.AllowedOrigins))

	r.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	api := r.Group("/api")
	{
		api.GET("/health", s.health)
		api.GET("/questions", s.listQuestions)
		api.POST("/journey", s.generateJourney)
		api.POST("/navigation", s.rankNavigation)
	}
	s.engine = r
	s.server = &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler returns the root handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("api listening", "addr", s.cfg.Addr)
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.log.Info("api shutting down")
		return s.server.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
