package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/checkin-service/internal/config"
	"github.com/checkin-service/internal/delivery/http/handler"
	"github.com/checkin-service/internal/delivery/http/middleware"
)

// HealthChecker reports readiness of a backing service.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Server is the Fiber HTTP server.
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	sessionHandler   *handler.SessionHandler
	stationHandler   *handler.StationHandler
	passengerHandler *handler.PassengerHandler

	db    HealthChecker
	redis HealthChecker
}

func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	sessionHandler *handler.SessionHandler,
	stationHandler *handler.StationHandler,
	passengerHandler *handler.PassengerHandler,
	db HealthChecker,
	redis HealthChecker,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Check-in Service",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:              app,
		config:           cfg,
		logger:           logger,
		sessionHandler:   sessionHandler,
		stationHandler:   stationHandler,
		passengerHandler: passengerHandler,
		db:               db,
		redis:            redis,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")

	api.Get("/health", s.health)

	// Session flow
	api.Post("/sessions", s.sessionHandler.Create)
	api.Get("/sessions/:id", s.sessionHandler.Get)
	api.Delete("/sessions/:id", s.sessionHandler.Delete)
	api.Post("/sessions/:id/station", s.sessionHandler.SelectStation)
	api.Post("/sessions/:id/passenger", s.sessionHandler.SelectPassenger)
	api.Post("/sessions/:id/back", s.sessionHandler.Back)
	api.Post("/sessions/:id/change-station", s.sessionHandler.ChangeStation)
	api.Post("/sessions/:id/check-out", s.sessionHandler.CheckOut)
	api.Post("/sessions/:id/ticket/show", s.sessionHandler.ShowTicket)

	// Slider gestures
	api.Post("/sessions/:id/slider/press", s.sessionHandler.SliderPress)
	api.Post("/sessions/:id/slider/move", s.sessionHandler.SliderMove)
	api.Post("/sessions/:id/slider/release", s.sessionHandler.SliderRelease)

	// Debounced per-session search
	api.Post("/sessions/:id/search", s.sessionHandler.SearchInput)
	api.Get("/sessions/:id/search/results", s.sessionHandler.SearchResults)

	// Directory
	api.Get("/stations/search", s.stationHandler.Search)
	api.Get("/stations/nearby", s.stationHandler.Nearby)
	api.Get("/stations/:ext_id/departures", s.stationHandler.Departures)

	// Favorites
	api.Get("/favorites", s.stationHandler.ListFavorites)
	api.Post("/favorites", s.stationHandler.AddFavorite)
	api.Delete("/favorites/:key", s.stationHandler.RemoveFavorite)

	// Passengers
	api.Get("/passengers", s.passengerHandler.List)
	api.Post("/passengers", s.passengerHandler.Create)
	api.Get("/passengers/:id", s.passengerHandler.Get)
	api.Put("/passengers/:id", s.passengerHandler.Update)
	api.Delete("/passengers/:id", s.passengerHandler.Delete)
}

func (s *Server) health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	status := "healthy"
	checks := fiber.Map{}

	if s.db != nil {
		if err := s.db.Health(ctx); err != nil {
			status = "degraded"
			checks["database"] = err.Error()
		} else {
			checks["database"] = "ok"
		}
	}
	if s.redis != nil {
		if err := s.redis.Health(ctx); err != nil {
			status = "degraded"
			checks["redis"] = err.Error()
		} else {
			checks["redis"] = "ok"
		}
	}

	code := fiber.StatusOK
	if status != "healthy" {
		code = fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(fiber.Map{
		"status": status,
		"checks": checks,
		"time":   time.Now(),
	})
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown stops the HTTP server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "INTERNAL_SERVER_ERROR",
				"message": err.Error(),
			},
		})
	}
}
