package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cardioinsight/riskservice/explain"
	"github.com/cardioinsight/riskservice/report"
	"github.com/cardioinsight/riskservice/risk"
)

// GenerateReport renders the submitted record into a downloadable report
// and returns it with an inline preview.
func (h *Handler) GenerateReport(ec echo.Context) error {
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

	result, err := h.reports.Generate(ctx, report.Request{
		Record:             request.Record,
		Prediction:         prediction,
		Assessment:         assessment,
		Metadata:           h.model.Metadata(),
		GeneratedAt:        time.Now(),
		Renderer:           request.Renderer,
		RadarChart:         h.charts.Radar(request.Record),
		ContributionsChart: h.charts.Contributions(attribution),
	})
	if err != nil {
		return err
	}

	return ec.JSON(http.StatusOK, NewReportDto(result))
}

// DownloadReport serves a previously generated report as a PNG attachment.
// Evicted reports are gone for good; the client regenerates instead.
func (h *Handler) DownloadReport(ec echo.Context) error {
	ctx := ec.Request().Context()
	result, err := h.reports.Get(ctx, ec.Param("id"))
	if err != nil {
		return err
	}

	ec.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", result.Filename))
	return ec.Blob(http.StatusOK, "image/png", result.Data)
}
