package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/menucraft/backend/config"
	"github.com/menucraft/backend/internal/api"
	"github.com/menucraft/backend/internal/middleware"
	"github.com/menucraft/backend/internal/router"
	"github.com/menucraft/backend/internal/service"
)

// Server wires services, handlers and the HTTP listener together.
type Server struct {
	cfg    *config.Config
	engine *gin.Engine
	http   *http.Server
}

// New builds the full service graph. Redis and logo storage are optional;
// a nil client just disables caching and rate limiting.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, logoStorage service.LogoStorage) *Server {
	authService := service.NewAuthService(db, cfg.JWTSecret)

	var cache *service.MenuCache
	var saveLimiter *middleware.RateLimiter
	if redisClient != nil {
		cache = service.NewMenuCache(redisClient)
		saveLimiter = middleware.NewMenuSaveRateLimiter(redisClient)
	}
	menuService := service.NewMenuService(db, cache)

	authHandler := api.NewAuthHandler(authService)
	menuHandler := api.NewMenuHandler(menuService, authService, logoStorage, saveLimiter)

	engine := router.SetupRouter(authHandler, menuHandler, cfg.AllowedOrigins)

	return &Server{
		cfg:    cfg,
		engine: engine,
	}
}

// Start blocks serving HTTP until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.http = &http.Server{
		Addr:    s.cfg.ServerHost + ":" + s.cfg.ServerPort,
		Handler: s.engine,
	}

	log.WithField("addr", s.http.Addr).Info("Starting server")
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http != nil {
		return s.http.Shutdown(ctx)
	}
	return nil
}

// Engine exposes the router, mainly for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
