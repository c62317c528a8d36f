package api

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"github.com/cardioinsight/riskservice/charts"
	"github.com/cardioinsight/riskservice/classifier"
	"github.com/cardioinsight/riskservice/config"
	"github.com/cardioinsight/riskservice/fonts"
	"github.com/cardioinsight/riskservice/logger"
	"github.com/cardioinsight/riskservice/metrics"
	"github.com/cardioinsight/riskservice/report"
	"github.com/cardioinsight/riskservice/risk"
)

func Start(e *echo.Echo, cfg *config.Config, lifecycle fx.Lifecycle) {
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := e.Start(fmt.Sprintf(":%d", cfg.HttpPort)); err != nil {
					fmt.Println(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return e.Shutdown(ctx)
		},
	})
}

func SetReady(healthCheck *HealthCheck, model classifier.Model, lifecycle fx.Lifecycle) {
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			// It's important this is set after the model is loaded, which is
			// ensured by taking a dependency on it in the constructor, because
			// lifecycle hooks are executed in topological order
			healthCheck.SetReady(true)
			return nil
		},
		OnStop: nil,
	})
}

// Dependencies is the production provider graph. The CLI reuses it for
// one-shot commands.
func Dependencies() []fx.Option {
	return []fx.Option{
		fx.Provide(
			config.NewFromEnv,
			logger.NewProductionLogger,
			logger.Suggar,
			fonts.NewLibrary,
			charts.NewGenerator,
			classifier.NewForest,
			classifier.NewModel,
			risk.NewPolicy,
			report.LoadLayout,
			report.NewRasterRenderer,
			report.NewChartRenderer,
			report.Renderers,
			report.NewCache,
			report.NewService,
			metrics.NewRegisterer,
			metrics.NewCollector,
			NewHealthCheck,
			NewHandler,
			NewServer,
		),
	}
}

func MainLoop() {
	options := append(
		Dependencies(),
		fx.Invoke(SetReady),
		fx.Invoke(Start),
	)
	fx.New(options...).Run()
}
