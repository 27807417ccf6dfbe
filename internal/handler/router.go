package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterConfig struct {
	Inventory *InventoryHandler
	Feed      *FeedHandler // optional
	Gatherer  prometheus.Gatherer
	// AccessLog enables the request logger middleware.
	AccessLog bool
}

// NewApp builds the fiber app with middleware and all routes.
func NewApp(cfg RouterConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "Store Inventory v1.0",
	})

	// Middleware
	if cfg.AccessLog {
		app.Use(logger.New())
	}
	app.Use(recover.New())
	app.Use(cors.New())

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	if cfg.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	// Item routes, served both unversioned and under /api/v1
	for _, prefix := range []string{"/api", "/api/v1"} {
		api := app.Group(prefix)
		api.Get("/items", cfg.Inventory.GetItems)
		api.Post("/items", cfg.Inventory.CreateItem)
	}

	if cfg.Feed != nil {
		app.Get("/ws/items", cfg.Feed.Upgrade, cfg.Feed.Stream())
	}

	return app
}
