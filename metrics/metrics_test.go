package metrics_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/labstack/echo/v4"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/cardioinsight/riskservice/errors"
	"github.com/cardioinsight/riskservice/metrics"
)

func counterValue(registry *prometheus.Registry, name string, labels map[string]string) float64 {
	families, err := registry.Gather()
	Expect(err).ToNot(HaveOccurred())

	var total float64
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			matches := true
			for _, pair := range metric.GetLabel() {
				if want, ok := labels[pair.GetName()]; ok && want != pair.GetValue() {
					matches = false
				}
			}
			if matches {
				total += metric.GetCounter().GetValue()
			}
		}
	}
	return total
}

var _ = Describe("Collector", func() {
	var registry *prometheus.Registry
	var collector *metrics.Collector

	BeforeEach(func() {
		registry = prometheus.NewRegistry()
		collector = metrics.NewCollector(registry)
	})

	It("registers counters on the given registry", func() {
		collector.PredictionsTotal.WithLabelValues("1").Inc()
		collector.ReportsTotal.WithLabelValues("raster", "LOW RISK").Inc()

		Expect(counterValue(registry, "cardioinsight_model_predictions_total", map[string]string{"label": "1"})).To(Equal(1.0))
		Expect(counterValue(registry, "cardioinsight_report_generated_total", map[string]string{"renderer": "raster"})).To(Equal(1.0))
	})

	Describe("Middleware", func() {
		var e *echo.Echo

		BeforeEach(func() {
			e = echo.New()
			e.Use(metrics.Middleware(collector))
			e.GET("/ok", func(c echo.Context) error {
				return c.NoContent(http.StatusNoContent)
			})
			e.GET("/bad", func(c echo.Context) error {
				return fmt.Errorf("%w: not valid", errors.BadRequest)
			})
		})

		It("counts successful requests with their status", func() {
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))

			value := counterValue(registry, "cardioinsight_http_requests_total", map[string]string{
				"path":   "/ok",
				"status": "204",
			})
			Expect(value).To(Equal(1.0))
		})

		It("resolves the status of failed requests from the error", func() {
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bad", nil))

			value := counterValue(registry, "cardioinsight_http_requests_total", map[string]string{
				"path":   "/bad",
				"status": "400",
			})
			Expect(value).To(Equal(1.0))
		})
	})
})
