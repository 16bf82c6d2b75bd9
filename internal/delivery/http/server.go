package http

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/place-discovery/internal/config"
	"github.com/place-discovery/internal/delivery/http/handler"
	"github.com/place-discovery/internal/delivery/http/middleware"
)

// Handlers - обработчики, которые монтирует сервер
type Handlers struct {
	Auth     *handler.AuthHandler
	Category *handler.CategoryHandler
	Place    *handler.PlaceHandler
	Wishlist *handler.WishlistHandler
	Debug    *handler.DebugHandler
	Health   *handler.HealthHandler

	Discovery *handler.DiscoveryHandler
}

// Server - HTTP сервер на основе Fiber
type Server struct {
	app      *fiber.App
	config   *config.Config
	logger   *zap.Logger
	handlers Handlers
	auth     middleware.Authenticator
}

func NewServer(cfg *config.Config, logger *zap.Logger, auth middleware.Authenticator, handlers Handlers) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Place Discovery",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:      app,
		config:   cfg,
		logger:   logger,
		handlers: handlers,
		auth:     auth,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS(s.config.Server.CORSOrigins))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")

	api.Get("/health", s.handlers.Health.Health)
	api.Post("/auth/anonymous", s.handlers.Auth.SignInAnonymously)
	api.Get("/categories", s.handlers.Category.List)

	debug := api.Group("/debug")
	debug.Get("/coverage", s.handlers.Debug.Coverage)

	requireAuth := middleware.Auth(s.auth)

	places := api.Group("/places", requireAuth)
	places.Post("/query", s.handlers.Discovery.Query)
	places.Post("/more", s.handlers.Discovery.LoadMore)
	places.Get("/feed", s.handlers.Discovery.Feed)
	places.Get("/:id", s.handlers.Place.GetPlace)

	wishlist := api.Group("/wishlist", requireAuth)
	wishlist.Get("/", s.handlers.Wishlist.List)
	wishlist.Post("/:id/toggle", s.handlers.Wishlist.Toggle)
}

// App - для тестов через app.Test
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		errCode := "INTERNAL_SERVER_ERROR"

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			if code == fiber.StatusNotFound {
				errCode = "NOT_FOUND"
			}
		}

		if code >= fiber.StatusInternalServerError {
			logger.Error("HTTP Error",
				zap.String("path", c.Path()),
				zap.Int("status", code),
				zap.Error(err),
			)
		}

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    errCode,
				"message": err.Error(),
			},
		})
	}
}
