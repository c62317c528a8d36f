package api

import (
	"context"
	"strconv"

	"go.uber.org/fx"

	"github.com/cardioinsight/riskservice/charts"
	"github.com/cardioinsight/riskservice/classifier"
	"github.com/cardioinsight/riskservice/metrics"
	"github.com/cardioinsight/riskservice/patients"
	"github.com/cardioinsight/riskservice/report"
	"github.com/cardioinsight/riskservice/risk"
)

type Handler struct {
	model     classifier.Model
	forest    *classifier.Forest
	policy    risk.Policy
	charts    *charts.Generator
	reports   report.Service
	collector *metrics.Collector
}

type Params struct {
	fx.In

	Model     classifier.Model
	Forest    *classifier.Forest
	Policy    risk.Policy
	Charts    *charts.Generator
	Reports   report.Service
	Collector *metrics.Collector
}

func NewHandler(p Params) *Handler {
	return &Handler{
		model:     p.Model,
		forest:    p.Forest,
		policy:    p.Policy,
		charts:    p.Charts,
		reports:   p.Reports,
		collector: p.Collector,
	}
}

func (h *Handler) predict(ctx context.Context, record patients.Record) (classifier.Prediction, error) {
	prediction, err := h.model.Predict(ctx, record)
	if err != nil {
		return classifier.Prediction{}, err
	}
	h.collector.PredictionsTotal.WithLabelValues(strconv.Itoa(prediction.Label)).Inc()
	return prediction, nil
}

// resolvePolicy returns the configured default unless the request names one.
func (h *Handler) resolvePolicy(name string) (risk.Policy, error) {
	if name == "" {
		return h.policy, nil
	}
	return risk.PolicyByName(name)
}
