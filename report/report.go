// Package report turns a scored patient record into the downloadable print
// report. Two interchangeable renderers produce the page: the raster renderer
// draws the full-bleed dashboard layout and the chart renderer composes the
// unit-grid summary with embedded analysis charts. Generated reports are held
// in a bounded in-memory cache keyed by report id so downloads do not have to
// re-render the page.
package report

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cardioinsight/riskservice/classifier"
	"github.com/cardioinsight/riskservice/config"
	"github.com/cardioinsight/riskservice/errors"
	"github.com/cardioinsight/riskservice/metrics"
	"github.com/cardioinsight/riskservice/patients"
	"github.com/cardioinsight/riskservice/risk"
)

const (
	RendererRaster = "raster"
	RendererChart  = "chart"
)

// Request carries everything a renderer needs to lay out one report page.
// Renderer optionally overrides the configured default for this request.
// The charts are optional. A renderer that embeds them draws a placeholder
// when they are missing.
type Request struct {
	Record             patients.Record
	Prediction         classifier.Prediction
	Assessment         risk.Assessment
	Metadata           classifier.Metadata
	GeneratedAt        time.Time
	Renderer           string
	RadarChart         image.Image
	ContributionsChart image.Image
}

// Result is a finished report ready to download.
type Result struct {
	ID        string
	Filename  string
	Data      []byte
	Renderer  string
	Tier      risk.Tier
	CreatedAt time.Time
}

// Renderer produces the encoded page for a request.
type Renderer interface {
	Name() string
	Render(request Request) ([]byte, error)
}

type Service interface {
	Generate(ctx context.Context, request Request) (*Result, error)
	Get(ctx context.Context, id string) (*Result, error)
}

type service struct {
	renderers   map[string]Renderer
	defaultName string
	cache       *Cache
	collector   *metrics.Collector
	logger      *zap.SugaredLogger
}

var _ Service = &service{}

// Renderers indexes the available page renderers by name.
func Renderers(raster *RasterRenderer, chart *ChartRenderer) map[string]Renderer {
	return map[string]Renderer{
		raster.Name(): raster,
		chart.Name():  chart,
	}
}

// NewService resolves the configured default renderer against the registered
// ones. An unrecognized default fails construction.
func NewService(cfg *config.Config, renderers map[string]Renderer, cache *Cache, collector *metrics.Collector, logger *zap.SugaredLogger) (Service, error) {
	defaultName := cfg.ReportRenderer
	if defaultName == "" {
		defaultName = RendererRaster
	}
	if _, ok := renderers[defaultName]; !ok {
		return nil, fmt.Errorf("unknown report renderer %q", defaultName)
	}
	return &service{
		renderers:   renderers,
		defaultName: defaultName,
		cache:       cache,
		collector:   collector,
		logger:      logger,
	}, nil
}

func (s *service) Generate(ctx context.Context, request Request) (result *Result, err error) {
	renderer, err := s.renderer(request.Renderer)
	if err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Errorw("report rendering panicked", "renderer", renderer.Name(), "panic", r)
			result = nil
			err = fmt.Errorf("%w: report generation failed", errors.InternalServerError)
		}
	}()

	start := time.Now()
	data, err := renderer.Render(request)
	if err != nil {
		return nil, fmt.Errorf("rendering report: %w", err)
	}
	duration := time.Since(start)

	result = &Result{
		ID:        uuid.NewString(),
		Filename:  Filename(request.GeneratedAt),
		Data:      data,
		Renderer:  renderer.Name(),
		Tier:      request.Assessment.Tier,
		CreatedAt: request.GeneratedAt,
	}
	s.cache.Add(result)

	s.collector.ReportsTotal.WithLabelValues(result.Renderer, result.Tier.String()).Inc()
	s.collector.RenderDuration.WithLabelValues(result.Renderer).Observe(duration.Seconds())
	s.logger.Infow("generated report",
		"id", result.ID,
		"renderer", result.Renderer,
		"tier", result.Tier.String(),
		"bytes", len(result.Data),
		"duration", duration,
	)
	return result, nil
}

func (s *service) Get(ctx context.Context, id string) (*Result, error) {
	result, ok := s.cache.Get(id)
	if !ok {
		s.collector.DownloadsTotal.WithLabelValues("miss").Inc()
		return nil, fmt.Errorf("%w: report %s", errors.NotFound, id)
	}
	s.collector.DownloadsTotal.WithLabelValues("hit").Inc()
	return result, nil
}

func (s *service) renderer(name string) (Renderer, error) {
	if name == "" {
		name = s.defaultName
	}
	renderer, ok := s.renderers[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown renderer %q", errors.BadRequest, name)
	}
	return renderer, nil
}
