package report_test

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	classifiertest "github.com/cardioinsight/riskservice/classifier/test"
	"github.com/cardioinsight/riskservice/config"
	"github.com/cardioinsight/riskservice/errors"
	"github.com/cardioinsight/riskservice/fonts"
	"github.com/cardioinsight/riskservice/metrics"
	"github.com/cardioinsight/riskservice/patients"
	"github.com/cardioinsight/riskservice/report"
	"github.com/cardioinsight/riskservice/risk"
	"github.com/cardioinsight/riskservice/test"
)

var generatedAt = time.Date(2025, time.March, 14, 9, 30, 0, 0, time.UTC)

func testRecord() patients.Record {
	return patients.Record{
		Age:            52,
		Sex:            1,
		ChestPainType:  0,
		RestingBP:      125,
		Cholesterol:    212,
		FastingBS:      0,
		RestingECG:     1,
		MaxHeartRate:   168,
		ExerciseAngina: 0,
		STDepression:   1.0,
		STSlope:        2,
		VesselCount:    2,
		Thalassemia:    3,
	}
}

func testRequest() report.Request {
	record := testRecord()
	forest := classifiertest.Forest()
	prediction, err := forest.Predict(context.Background(), record)
	Expect(err).ToNot(HaveOccurred())
	return report.Request{
		Record:      record,
		Prediction:  prediction,
		Assessment:  risk.Assess(risk.StandardPolicy(), prediction.Label, prediction.Probability, record),
		Metadata:    forest.Metadata(),
		GeneratedAt: generatedAt,
	}
}

func newLibrary() *fonts.Library {
	return fonts.NewLibrary(config.New(), zap.NewNop().Sugar())
}

func newRenderers(layout report.Layout) map[string]report.Renderer {
	library := newLibrary()
	raster, err := report.NewRasterRenderer(layout, library)
	Expect(err).ToNot(HaveOccurred())
	return report.Renderers(raster, report.NewChartRenderer(layout, library))
}

type panicRenderer struct{}

func (panicRenderer) Name() string { return report.RendererRaster }

func (panicRenderer) Render(report.Request) ([]byte, error) {
	panic("broken glyph table")
}

var _ = Describe("Service", func() {
	var (
		cfg     *config.Config
		service report.Service
		request report.Request
	)

	newService := func(cfg *config.Config, renderers map[string]report.Renderer) report.Service {
		cache, err := report.NewCache(cfg)
		Expect(err).ToNot(HaveOccurred())
		svc, err := report.NewService(cfg, renderers, cache, metrics.NewCollector(prometheus.NewRegistry()), zap.NewNop().Sugar())
		Expect(err).ToNot(HaveOccurred())
		return svc
	}

	BeforeEach(func() {
		cfg = &config.Config{ReportRenderer: report.RendererRaster, ReportCacheSize: 4}
		service = newService(cfg, newRenderers(report.DefaultLayout()))
		request = testRequest()
	})

	Describe("Generate", func() {
		It("renders a full page report", func() {
			result, err := service.Generate(context.Background(), request)
			Expect(err).ToNot(HaveOccurred())
			Expect(result.Renderer).To(Equal(report.RendererRaster))
			Expect(result.Tier).To(Equal(request.Assessment.Tier))
			Expect(result.CreatedAt).To(Equal(generatedAt))
			Expect(result.Data).To(test.HavePNGDimensions(2480, 3508))
		})

		It("assigns a fresh download id to every report", func() {
			first, err := service.Generate(context.Background(), request)
			Expect(err).ToNot(HaveOccurred())
			second, err := service.Generate(context.Background(), request)
			Expect(err).ToNot(HaveOccurred())

			_, err = uuid.Parse(first.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(second.ID).ToNot(Equal(first.ID))
		})

		It("names the download after the generation time", func() {
			result, err := service.Generate(context.Background(), request)
			Expect(err).ToNot(HaveOccurred())
			Expect(result.Filename).To(Equal("CardioInsight_Report_20250314_093000.png"))
		})

		It("honors a per request renderer override", func() {
			request.Renderer = report.RendererChart
			result, err := service.Generate(context.Background(), request)
			Expect(err).ToNot(HaveOccurred())
			Expect(result.Renderer).To(Equal(report.RendererChart))
			Expect(result.Data).To(test.HavePNGDimensions(2480, 3508))
		})

		It("rejects an unknown renderer override", func() {
			request.Renderer = "postscript"
			_, err := service.Generate(context.Background(), request)
			Expect(err).To(HaveOccurred())
			Expect(errors.Code(err)).To(Equal(http.StatusBadRequest))
		})

		It("turns a rendering panic into an internal error", func() {
			service = newService(cfg, map[string]report.Renderer{report.RendererRaster: panicRenderer{}})

			result, err := service.Generate(context.Background(), request)
			Expect(result).To(BeNil())
			Expect(err).To(HaveOccurred())
			Expect(errors.Code(err)).To(Equal(http.StatusInternalServerError))
		})
	})

	Describe("Get", func() {
		It("returns the stored bytes for a generated id", func() {
			result, err := service.Generate(context.Background(), request)
			Expect(err).ToNot(HaveOccurred())

			stored, err := service.Get(context.Background(), result.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(stored.Data).To(Equal(result.Data))
			Expect(stored.Filename).To(Equal(result.Filename))
		})

		It("returns not found for an unknown id", func() {
			_, err := service.Get(context.Background(), uuid.NewString())
			Expect(err).To(HaveOccurred())
			Expect(errors.Code(err)).To(Equal(http.StatusNotFound))
		})

		It("returns not found once a report is evicted", func() {
			cfg.ReportCacheSize = 1
			service = newService(cfg, newRenderers(report.DefaultLayout()))

			first, err := service.Generate(context.Background(), request)
			Expect(err).ToNot(HaveOccurred())
			_, err = service.Generate(context.Background(), request)
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Get(context.Background(), first.ID)
			Expect(err).To(HaveOccurred())
			Expect(errors.Code(err)).To(Equal(http.StatusNotFound))
		})
	})

	Describe("NewService", func() {
		It("rejects an unknown configured renderer", func() {
			cfg.ReportRenderer = "postscript"
			cache, err := report.NewCache(cfg)
			Expect(err).ToNot(HaveOccurred())
			_, err = report.NewService(cfg, newRenderers(report.DefaultLayout()), cache, metrics.NewCollector(prometheus.NewRegistry()), zap.NewNop().Sugar())
			Expect(err).To(HaveOccurred())
		})

		It("defaults to the raster renderer when unset", func() {
			cfg.ReportRenderer = ""
			service = newService(cfg, newRenderers(report.DefaultLayout()))

			result, err := service.Generate(context.Background(), request)
			Expect(err).ToNot(HaveOccurred())
			Expect(result.Renderer).To(Equal(report.RendererRaster))
		})
	})
})

var _ = Describe("Cache", func() {
	It("evicts the oldest report at capacity", func() {
		cache, err := report.NewCache(&config.Config{ReportCacheSize: 2})
		Expect(err).ToNot(HaveOccurred())

		third := &report.Result{ID: "c"}
		cache.Add(&report.Result{ID: "a"})
		cache.Add(&report.Result{ID: "b"})
		cache.Add(third)

		Expect(cache.Len()).To(Equal(2))
		_, ok := cache.Get("a")
		Expect(ok).To(BeFalse())
		got, ok := cache.Get("c")
		Expect(ok).To(BeTrue())
		Expect(got).To(BeIdenticalTo(third))
	})

	It("rejects a non positive size", func() {
		_, err := report.NewCache(&config.Config{})
		Expect(err).To(HaveOccurred())
	})
})
