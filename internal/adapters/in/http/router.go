package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"climasite/internal/generated/docs"
	"climasite/internal/generated/servers"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RouterConfig holds what NewRouter wires together.
type RouterConfig struct {
	Server      *Server
	AdminSecret []byte

	// Metrics observes requests; MetricsHandler serves the scrape endpoint.
	Metrics        RequestObserver
	MetricsHandler http.Handler

	Logger *slog.Logger
}

// NewRouter builds the echo instance serving the API, health, metrics and
// API documentation endpoints.
func NewRouter(cfg RouterConfig) (*echo.Echo, error) {
	if len(cfg.AdminSecret) == 0 {
		return nil, fmt.Errorf("admin secret is required")
	}

	doc, err := servers.GetSwagger()
	if err != nil {
		return nil, fmt.Errorf("load api document: %w", err)
	}
	validator, err := OpenAPIValidator(doc)
	if err != nil {
		return nil, err
	}
	if err = docs.Register(); err != nil {
		return nil, fmt.Errorf("register api docs: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = HTTPErrorHandler

	e.Use(middleware.Recover())
	if cfg.Metrics != nil {
		e.Use(Metrics(cfg.Metrics))
	}
	e.Use(requestLogger(cfg.Logger))
	e.Use(AdminAuth(cfg.AdminSecret, AdminRoutesOnly))
	e.Use(validator)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	if cfg.MetricsHandler != nil {
		e.GET("/metrics", echo.WrapHandler(cfg.MetricsHandler))
	}
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.InstanceName(docs.InstanceName)))

	servers.RegisterHandlers(e, cfg.Server)

	return e, nil
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	logger = logger.With("component", "http")

	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			logger.LogAttrs(context.Background(), level, "request", attrs...)
			return nil
		},
	})
}
