// Package api serves the read-only graph navigation endpoints over HTTP.
package api

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/google/uuid"
	"github.com/meikuraledutech/graphnav"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

const headerRequestID = "X-Request-ID"

type Options struct {
	Store  graphnav.Reader
	Engine *graphnav.Engine // defaults to graphnav.NewEngine(Store)
	Logger *slog.Logger     // defaults to slog.Default()

	// RateLimit caps requests per second under /nodes; zero disables it.
	RateLimit float64
	Burst     int
}

// New builds the fiber app with every route registered.
func New(opts Options) *fiber.App {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Engine == nil {
		opts.Engine = graphnav.NewEngine(opts.Store, graphnav.WithLogger(opts.Logger))
	}
	h := &handler{store: opts.Store, engine: opts.Engine}

	app := fiber.New(fiber.Config{
		AppName:      "graphnav",
		UnescapePath: true,
		ErrorHandler: errorHandler(opts.Logger),
	})
	app.Use(recoverer.New())
	app.Use(requestLogger(opts.Logger))
	if opts.RateLimit > 0 {
		app.Use("/nodes", rateLimiter(rate.NewLimiter(rate.Limit(opts.RateLimit), max(opts.Burst, 1))))
	}

	app.Get("/health", h.health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Static segments go before the :id routes.
	app.Get("/nodes", h.listNodes)
	app.Get("/nodes/graph", h.renderGraph)
	app.Get("/nodes/by-name/:name", h.nodeByName)
	app.Get("/nodes/by-name/:name/connected-cte", h.connected(h.lookupName, h.engine.ReachableViaQuery))
	app.Get("/nodes/by-name/:name/connected-dfs", h.connected(h.lookupName, h.engine.ReachableViaTraversal))
	app.Get("/nodes/:id", h.nodeByID)
	app.Get("/nodes/:id/connected-cte", h.connected(h.lookupID, h.engine.ReachableViaQuery))
	app.Get("/nodes/:id/connected-dfs", h.connected(h.lookupID, h.engine.ReachableViaTraversal))

	return app
}

// errorHandler writes {"error": msg}. Store failures are 503, fiber errors
// keep their code, anything else is 500.
func errorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c fiber.Ctx, err error) error {
		code, msg := fiber.StatusInternalServerError, "internal server error"

		var fe *fiber.Error
		switch {
		case errors.As(err, &fe):
			code, msg = fe.Code, fe.Message
		case errors.Is(err, graphnav.ErrNodeNotFound):
			code, msg = fiber.StatusNotFound, "node not found"
		case errors.Is(err, graphnav.ErrStoreUnavailable):
			code, msg = fiber.StatusServiceUnavailable, "store unavailable"
		}

		if code >= fiber.StatusInternalServerError {
			logger.Error("request failed",
				"request_id", requestID(c),
				"path", c.Path(),
				"error", err,
			)
		}
		return c.Status(code).JSON(fiber.Map{"error": msg})
	}
}

// requestLogger tags every request with an id and logs one line when it
// completes.
func requestLogger(logger *slog.Logger) fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		id := c.Get(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(headerRequestID, id)
		c.Set(headerRequestID, id)

		err := c.Next()
		if err != nil {
			err = c.App().Config().ErrorHandler(c, err)
		}

		logger.Info("request",
			"request_id", id,
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"duration", time.Since(start),
		)
		return err
	}
}

// rateLimiter rejects requests once limiter runs out of tokens.
func rateLimiter(limiter *rate.Limiter) fiber.Handler {
	return func(c fiber.Ctx) error {
		if !limiter.Allow() {
			return fiber.NewError(fiber.StatusTooManyRequests, "rate limit exceeded")
		}
		return c.Next()
	}
}

func requestID(c fiber.Ctx) string {
	id, _ := c.Locals(headerRequestID).(string)
	return id
}
