package server

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"storecheck/database"
	"storecheck/internal/config"
	"storecheck/matching"
	"storecheck/server/middleware"
)

// Server wires the match engine, the store database and the HTTP surface.
type Server struct {
	cfg    *config.Config
	db     *database.StoreDB
	engine *matching.Engine
	logger *slog.Logger
	router *gin.Engine
}

// NewServer builds a fully routed server. The caller owns the database
// handle lifecycle.
func NewServer(cfg *config.Config, db *database.StoreDB, logger *slog.Logger) *Server {
	gin.SetMode(cfg.GinMode)

	s := &Server{
		cfg:    cfg,
		db:     db,
		engine: matching.NewEngine(),
		logger: logger,
		router: gin.New(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(s.logger),
		middleware.Recovery(s.logger),
		middleware.CORS(),
		middleware.Gzip(),
	)

	uploadLimit := rate.Every(time.Minute / time.Duration(s.cfg.UploadRatePerMinute))

	api := s.router.Group("/api")
	{
		api.GET("/health", s.handleHealth)
		api.GET("/template", s.handleTemplate)
		api.POST("/check", s.handleCheck)
		api.POST("/check/upload",
			middleware.RateLimit(uploadLimit, s.cfg.UploadBurst),
			s.handleUpload)
		api.POST("/export", s.handleExport)
	}
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run serves HTTP on the configured port until the listener fails.
func (s *Server) Run() error {
	s.logger.Info("server starting", "port", s.cfg.Port)
	return s.router.Run(":" + s.cfg.Port)
}
