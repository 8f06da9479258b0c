// Package upstream serves batch records over HTTP in the shape the record
// client expects. batchd uses it to serve the offline dataset during
// development.
package upstream

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	"github.com/five82/batchview/internal/batch"
)

// Lookup finds records by identifier. *fallback.Store implements it.
type Lookup interface {
	Lookup(id string) (batch.Record, bool)
	Len() int
}

type handler struct {
	records Lookup
	log     zerolog.Logger
}

// NewApp builds the fiber app:
//
//	GET /api/batch/:id  200 record JSON, 404 {"error":"batch not found"}
//	GET /healthz        200 {"status":"ok"}
func NewApp(records Lookup, logger zerolog.Logger) *fiber.App {
	h := &handler{
		records: records,
		log:     logger.With().Str("component", "upstream").Logger(),
	}

	app := fiber.New(fiber.Config{
		AppName:               "batchd",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,HEAD,OPTIONS",
	}))
	app.Use(requestLogger(h.log))
	app.Use(compress.New(compress.Config{Level: compress.LevelBestSpeed}))

	app.Get("/healthz", h.health)
	app.Get("/api/batch/:id", h.getBatch)
	return app
}

func (h *handler) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *handler) getBatch(c *fiber.Ctx) error {
	id := c.Params("id")
	rec, ok := h.records.Lookup(id)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "batch not found"})
	}
	return c.JSON(rec)
}

func requestLogger(logger zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		event := logger.Info()
		if status >= fiber.StatusInternalServerError {
			event = logger.Error().Err(err)
		}
		event.
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Str("ip", c.IP()).
			Str("request_id", c.Get("X-Request-ID")).
			Dur("latency", time.Since(start)).
			Msg("request")
		return err
	}
}
