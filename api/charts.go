package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cardioinsight/riskservice/charts"
	"github.com/cardioinsight/riskservice/explain"
)

// RadarChart renders the population comparison radar for the record encoded
// in the query string.
func (h *Handler) RadarChart(ec echo.Context) error {
	request, err := decodeRequestValues(queryValues(ec))
	if err != nil {
		return err
	}

	data, err := charts.EncodePNG(h.charts.Radar(request.Record))
	if err != nil {
		return err
	}
	return ec.Blob(http.StatusOK, "image/png", data)
}

// ContributionsChart renders the feature attribution chart for the record
// encoded in the query string.
func (h *Handler) ContributionsChart(ec echo.Context) error {
	request, err := decodeRequestValues(queryValues(ec))
	if err != nil {
		return err
	}

	attribution, err := explain.Attribute(h.forest, request.Record)
	if err != nil {
		return err
	}
	data, err := charts.EncodePNG(h.charts.Contributions(attribution))
	if err != nil {
		return err
	}
	return ec.Blob(http.StatusOK, "image/png", data)
}
