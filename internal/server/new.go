package server

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/nguyentantai21042004/wiki-transcript/internal/config"
	"github.com/nguyentantai21042004/wiki-transcript/internal/logger"
	"github.com/nguyentantai21042004/wiki-transcript/internal/processor"
	"github.com/nguyentantai21042004/wiki-transcript/internal/settings"
)

type implServer struct {
	cfg       *config.Config
	echo      *echo.Echo
	processor processor.Processor
	settings  *settings.Registry
	store     settings.Store
	logger    logger.Logger
}

// New creates the HTTP server and registers its routes.
func New(cfg *config.Config, proc processor.Processor, reg *settings.Registry, store settings.Store, log logger.Logger) Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = newRequestValidator()

	s := &implServer{
		cfg:       cfg,
		echo:      e,
		processor: proc,
		settings:  reg,
		store:     store,
		logger:    log,
	}

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("10M"))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			ctx := logger.WithRunID(c.Request().Context(), v.RequestID)
			s.logger.Info(ctx, "%d | %s %s | %s", v.Status, v.Method, v.URI, v.Latency)
			return nil
		},
	}))

	s.routes()
	return s
}
