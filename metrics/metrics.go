// Package metrics exposes the service's Prometheus instrumentation.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cardioinsight/riskservice/errors"
)

type Collector struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	PredictionsTotal *prometheus.CounterVec
	ReportsTotal     *prometheus.CounterVec
	RenderDuration   *prometheus.HistogramVec
	DownloadsTotal   *prometheus.CounterVec
}

func NewCollector(registerer prometheus.Registerer) *Collector {
	factory := promauto.With(registerer)
	return &Collector{
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cardioinsight",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, path, and status code.",
		}, []string{"method", "path", "status"}),

		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "cardioinsight",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency distribution.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"method", "path", "status"}),

		PredictionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cardioinsight",
			Subsystem: "model",
			Name:      "predictions_total",
			Help:      "Total predictions by predicted label.",
		}, []string{"label"}),

		ReportsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cardioinsight",
			Subsystem: "report",
			Name:      "generated_total",
			Help:      "Total reports generated by renderer and risk tier.",
		}, []string{"renderer", "tier"}),

		RenderDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "cardioinsight",
			Subsystem: "report",
			Name:      "render_duration_seconds",
			Help:      "Report rendering latency distribution.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"renderer"}),

		DownloadsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cardioinsight",
			Subsystem: "report",
			Name:      "downloads_total",
			Help:      "Total report downloads by cache outcome.",
		}, []string{"outcome"}),
	}
}

// NewRegisterer exposes the process wide registry to the provider graph.
func NewRegisterer() prometheus.Registerer {
	return prometheus.DefaultRegisterer
}

func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware records request counts and latencies per route.
func Middleware(collector *Collector) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				status = errors.Code(err)
			}
			labels := []string{c.Request().Method, c.Path(), strconv.Itoa(status)}
			collector.RequestsTotal.WithLabelValues(labels...).Inc()
			collector.RequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
			return err
		}
	}
}
