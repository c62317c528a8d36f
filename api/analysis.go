package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cardioinsight/riskservice/explain"
	"github.com/cardioinsight/riskservice/risk"
)

// Analyze scores a submitted record and returns the analysis shown on the
// dashboard's insights tab.
func (h *Handler) Analyze(ec echo.Context) error {
	ctx := ec.Request().Context()
	request, err := decodeAnalysisRequest(ec)
	if err != nil {
		return err
	}
	policy, err := h.resolvePolicy(request.Policy)
	if err != nil {
		return err
	}

	prediction, err := h.predict(ctx, request.Record)
	if err != nil {
		return err
	}
	assessment := risk.Assess(policy, prediction.Label, prediction.Probability, request.Record)

	attribution, err := explain.Attribute(h.forest, request.Record)
	if err != nil {
		return err
	}

	dto := NewAnalysisDto(request.Record, prediction, assessment, explain.Summarize(attribution), time.Now())
	return ec.JSON(http.StatusOK, dto)
}
