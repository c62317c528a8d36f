package errors

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// NewHTTPErrorHandler translates wrapped HttpError values to responses with
// their status code. Server errors are logged with the request path.
func NewHTTPErrorHandler(logger *zap.SugaredLogger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		e := HttpError{}
		if errors.As(err, &e) {
			if e.Code >= 500 {
				logger.Errorw("request failed", "path", c.Path(), "error", err)
			}
			c.Echo().DefaultHTTPErrorHandler(echo.NewHTTPError(e.Code, err.Error()), c)
			return
		}
		c.Echo().DefaultHTTPErrorHandler(err, c)
	}
}

// Code resolves the HTTP status an error is served with. Errors outside the
// taxonomy count as internal server errors.
func Code(err error) int {
	if err == nil {
		return http.StatusOK
	}
	e := HttpError{}
	if errors.As(err, &e) {
		return e.Code
	}
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		return echoErr.Code
	}
	return http.StatusInternalServerError
}
