package api

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/mitchellh/mapstructure"

	"github.com/cardioinsight/riskservice/errors"
	"github.com/cardioinsight/riskservice/patients"
)

// AnalysisRequest is the wire form of a scoring request: the thirteen
// clinical fields plus the optional policy and renderer selections. Values
// arrive as JSON numbers or as form and query strings, so they are decoded
// weakly typed.
type AnalysisRequest struct {
	patients.Record `mapstructure:",squash"`

	Policy   string `mapstructure:"policy"`
	Renderer string `mapstructure:"renderer"`
}

func decodeAnalysisRequest(ec echo.Context) (AnalysisRequest, error) {
	request := ec.Request()
	contentType := request.Header.Get(echo.HeaderContentType)
	if strings.HasPrefix(contentType, echo.MIMEApplicationJSON) {
		values := map[string]interface{}{}
		if err := json.NewDecoder(request.Body).Decode(&values); err != nil {
			return AnalysisRequest{}, fmt.Errorf("%w: malformed request body: %v", errors.BadRequest, err)
		}
		return decodeRequestValues(values)
	}

	form, err := ec.FormParams()
	if err != nil {
		return AnalysisRequest{}, fmt.Errorf("%w: malformed form body: %v", errors.BadRequest, err)
	}
	return decodeRequestValues(flattenParams(form))
}

func queryValues(ec echo.Context) map[string]interface{} {
	return flattenParams(ec.QueryParams())
}

func flattenParams(params url.Values) map[string]interface{} {
	values := make(map[string]interface{}, len(params))
	for name, v := range params {
		if len(v) > 0 {
			values[name] = v[0]
		}
	}
	return values
}

func decodeRequestValues(values map[string]interface{}) (AnalysisRequest, error) {
	request := AnalysisRequest{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &request,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return request, err
	}
	if err := decoder.Decode(values); err != nil {
		return request, fmt.Errorf("%w: %v", errors.BadRequest, err)
	}
	if err := request.Record.Validate(); err != nil {
		return request, err
	}
	return request, nil
}
