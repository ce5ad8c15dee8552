package server

import (
	"time"

	"github.com/brospi/gpx-bike-simulator/internal/config"
	"github.com/brospi/gpx-bike-simulator/internal/ride"
	"github.com/brospi/gpx-bike-simulator/internal/route"
	"github.com/brospi/gpx-bike-simulator/internal/stream"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App    *fiber.App
	Cfg    config.Config
	DB     *pgxpool.Pool
	Redis  *redis.Client
	Stream *stream.Hub
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:    app,
		Cfg:    cfg,
		DB:     db,
		Redis:  redisClient,
		Stream: stream.NewHub(redisClient),
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	routeSvc := route.NewService(s.DB)
	cacheTTL := time.Duration(s.Cfg.RideCacheTTLSec) * time.Second
	rideSvc := ride.NewService(s.DB, s.Redis, routeSvc, s.Stream, cacheTTL)

	route.RegisterRoutes(s.App.Group("/routes"), routeSvc)
	ride.RegisterRoutes(s.App.Group("/rides"), rideSvc)
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream)
}
