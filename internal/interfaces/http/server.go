package http

import (
	nethttp "net/http"
	"os"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/roboticsteamraoatech-creator/datacapture-api/pkg/logger"
)

// httpObserver registra la duración de cada request.
type httpObserver interface {
	ObserveHTTP(method, route string, status int, elapsed time.Duration)
}

// ServerOptions configuración de la app Fiber.
type ServerOptions struct {
	Name           string
	CORSOrigins    string
	SwaggerFile    string
	Log            *logger.Logger
	Observer       httpObserver
	MetricsHandler nethttp.Handler
}

// NewApp crea la app con recover, CORS, log de requests, /health, /metrics y Swagger opcional.
func NewApp(opts ServerOptions) *fiber.App {
	if opts.Log == nil {
		opts.Log = logger.Nop()
	}
	if opts.CORSOrigins == "" {
		opts.CORSOrigins = "*"
	}

	app := fiber.New(fiber.Config{
		AppName:      opts.Name,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		BodyLimit:    20 * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return writeError(c, err)
		},
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: opts.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))
	app.Use(requestLogger(opts.Log.Named("http"), opts.Observer))

	if opts.SwaggerFile != "" {
		if _, err := os.Stat(opts.SwaggerFile); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: opts.SwaggerFile,
				Path:     "docs",
				Title:    opts.Name,
			}))
		} else {
			opts.Log.Warn().Str("file", opts.SwaggerFile).Msg("swagger deshabilitado: archivo no encontrado")
		}
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": opts.Name})
	})
	if opts.MetricsHandler != nil {
		app.Get("/metrics", adaptor.HTTPHandler(opts.MetricsHandler))
	}
	return app
}

// requestLogger registra cada request con zerolog y alimenta el histograma HTTP.
func requestLogger(log *logger.Logger, obs httpObserver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// se escribe aquí para registrar el status final
			_ = writeError(c, err)
		}
		status := c.Response().StatusCode()
		elapsed := time.Since(start)

		route := c.Route().Path
		if obs != nil {
			obs.ObserveHTTP(c.Method(), route, status, elapsed)
		}

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Str("route", route).
			Int("status", status).
			Dur("elapsed", elapsed).
			Msg("request")
		return nil
	}
}
