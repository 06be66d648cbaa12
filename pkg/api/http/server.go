package http

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/aescanero/gita/internal/application/chapters"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Server represents the HTTP API server
type Server struct {
	router   *gin.Engine
	server   *http.Server
	chapters *chapters.Service
	logger   *zap.Logger
}

// Config holds HTTP server configuration
type Config struct {
	// Addr is the listen address, e.g. config.Config.GetHTTPAddr()
	Addr            string
	Chapters        *chapters.Service
	Logger          *zap.Logger
	CORSAllowOrigin string

	// MetricsHandler serves /metrics; defaults to promhttp.Handler()
	MetricsHandler http.Handler
}

// NewServer creates a new HTTP server
func NewServer(cfg *Config) *Server {
	gin.SetMode(gin.ReleaseMode)

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestID())
	router.Use(requestLogger(logger))
	router.Use(corsMiddleware(cfg.CORSAllowOrigin))
	router.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.html")))

	s := &Server{
		router:   router,
		chapters: cfg.Chapters,
		logger:   logger,
	}

	metrics := cfg.MetricsHandler
	if metrics == nil {
		metrics = promhttp.Handler()
	}

	s.setupRoutes(metrics)

	s.server = &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// setupRoutes configures API routes
func (s *Server) setupRoutes(metrics http.Handler) {
	s.router.GET("/", s.handleRoot)
	s.router.GET("/health", s.handleHealth)
	s.router.GET("/metrics", gin.WrapH(metrics))

	s.router.GET("/explorer", s.handleExplorer)
	s.router.POST("/explorer", s.handleExplorerSubmit)

	api := s.router.Group("/api")
	{
		api.POST("/chapter", s.handleChapter)
	}
}

// SetupWebSocket adds the websocket lookup handler to the server
func (s *Server) SetupWebSocket(handler interface {
	HandleChapterStream(*gin.Context)
}) {
	s.router.GET("/api/chapter/ws", handler.HandleChapterStream)
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	s.logger.Info("HTTP server shut down complete")
	return nil
}
