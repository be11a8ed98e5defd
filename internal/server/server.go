package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/familyllc/recipe-manager/backend/config"
	"github.com/familyllc/recipe-manager/backend/internal/api"
	"github.com/familyllc/recipe-manager/backend/internal/logger"
	"github.com/familyllc/recipe-manager/backend/internal/middleware"
)

const serviceName = "recipe-manager"

// Dependencies are the collaborators the server wires into its routes.
// Tokens and Redis are optional: nil disables auth and rate limiting.
type Dependencies struct {
	Services api.Services
	Tokens   middleware.TokenValidator
	Redis    *redis.Client
}

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	log    *logger.Logger
}

// New assembles the gin engine and registers every route.
func New(cfg *config.Config, deps Dependencies, baseLog *logger.Logger) *Server {
	log := baseLog.With("component", "server")

	router := gin.New()
	router.Use(middleware.Recovery(baseLog), middleware.RequestLogger(baseLog))
	if cfg.OtelEnabled {
		router.Use(otelgin.Middleware(serviceName))
	}
	router.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	var guards api.Guards
	if deps.Tokens != nil {
		guards.Write = append(guards.Write, middleware.AuthMiddleware(deps.Tokens))
		log.Info("Write routes require a bearer token")
	}
	if deps.Redis != nil {
		guards.RecipeWrite = append(guards.RecipeWrite, middleware.NewRecipeWriteRateLimiter(deps.Redis, baseLog).Middleware())
		log.Info("Recipe writes are rate limited")
	}
	api.RegisterRoutes(router, deps.Services, guards, baseLog)

	return &Server{
		router: router,
		http: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		log: log,
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	s.log.Info("Starting server", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Shutting down server")
	return s.http.Shutdown(ctx)
}
