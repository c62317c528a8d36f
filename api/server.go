package api

import (
	"github.com/brpaz/echozap"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/cardioinsight/riskservice/errors"
	"github.com/cardioinsight/riskservice/metrics"
)

func NewServer(handler *Handler, healthCheck *HealthCheck, collector *metrics.Collector, log *zap.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	renderer, err := NewPageRenderer()
	if err != nil {
		return nil, err
	}
	e.Renderer = renderer

	// Skip request logging and instrumentation for readiness probe and
	// metrics routes
	skipper := RouteSkipper([]string{"/ready", "/metrics"})

	e.Use(middleware.Recover())
	e.Use(skipRoutes(echozap.ZapLogger(log), skipper))
	e.Use(skipRoutes(metrics.Middleware(collector), skipper))

	e.HTTPErrorHandler = errors.NewHTTPErrorHandler(log.Sugar())

	e.GET("/", handler.Dashboard)
	e.GET("/ready", healthCheck.Ready)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	v1 := e.Group("/api/v1")
	v1.POST("/analysis", handler.Analyze)
	v1.POST("/reports", handler.GenerateReport)
	v1.GET("/reports/:id/download", handler.DownloadReport)
	v1.GET("/charts/radar", handler.RadarChart)
	v1.GET("/charts/contributions", handler.ContributionsChart)

	return e, nil
}

// skipRoutes applies a middleware to every route the skipper does not match.
func skipRoutes(mw echo.MiddlewareFunc, skipper middleware.Skipper) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		wrapped := mw(next)
		return func(c echo.Context) error {
			if skipper(c) {
				return next(c)
			}
			return wrapped(c)
		}
	}
}
