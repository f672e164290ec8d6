package server

import (
	"errors"
	"strings"
	"time"

	"rental-backend/internal/audit"
	"rental-backend/internal/config"
	"rental-backend/internal/export"
	"rental-backend/internal/rental"
	"rental-backend/internal/search"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// New: tüm route'ları kurulmuş fiber uygulaması
func New(cfg *config.Config, store *rental.Store, searcher *search.Searcher) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
		ErrorHandler:          errorHandler,
	})

	app.Use(recover.New())
	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.CORSOriginList(), ","),
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET,POST,DELETE,OPTIONS",
	}))

	app.Get("/favicon.ico", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	for _, route := range StaticRoutes(cfg) {
		app.Get(route.Path, serveFile(route))
	}

	api := app.Group("/api")

	api.Get("/properties", rental.ListPropertiesHandler(store))
	api.Post("/add-property", rental.CreatePropertyHandler(store))
	api.Delete("/properties/:id", rental.DeletePropertyHandler(store))

	api.Get("/billing-data", rental.ListBillingHandler(store))
	api.Post("/add-customer", rental.CreateCustomerHandler(store))
	api.Delete("/billing/:id", rental.DeleteCustomerHandler(store))

	api.Get("/search-pdf", search.SearchHandler(searcher))

	api.Get("/export/:file", export.ExportHandler(store))
	api.Get("/audit-logs", audit.ListAuditLogsHandler(store.DB()))

	// eşleşmeyen her istek 404; fiber aksi halde aynı path'te başka method
	// varsa 405 döner
	app.Use(func(c *fiber.Ctx) error {
		return fiber.ErrNotFound
	})

	return app
}

// errorHandler: fiber.Error kodunu korur, diğer hatalar 500. Mesaj istemciye döner.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}
	if code >= fiber.StatusInternalServerError {
		zap.S().Errorf("%s %s -> %d: %v", c.Method(), c.Path(), code, err)
	}
	msg := err.Error()
	if e != nil {
		msg = e.Message
	}
	return c.Status(code).JSON(fiber.Map{"error": msg})
}

func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			var e *fiber.Error
			if errors.As(err, &e) {
				status = e.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		zap.L().Info("http",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
		)
		return err
	}
}
