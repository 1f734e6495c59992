package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

// NewEchoErrorHandler renders every failure with the ErrorResponse envelope.
// Internal detail is included only when withDetail is set (non-production).
func NewEchoErrorHandler(withDetail bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		httpErr := fromEcho(err)
		if httpErr == nil {
			httpErr = MapErrorToHTTP(err)
		}
		if httpErr.StatusCode >= http.StatusInternalServerError {
			log.Errorf("%s %s: %v", c.Request().Method, c.Request().URL.Path, err)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(httpErr.StatusCode)
		} else {
			writeErr = c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse(withDetail))
		}
		if writeErr != nil {
			log.Errorf("write error response: %v", writeErr)
		}
	}
}

// fromEcho converts framework errors (unknown route, bad method, bind
// failures raised by echo itself) to HTTPError.
func fromEcho(err error) *HTTPError {
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		return nil
	}
	if resp, ok := he.Message.(ErrorResponse); ok {
		return &HTTPError{StatusCode: he.Code, Message: resp.Message, Code: resp.Code, Internal: he.Internal}
	}
	msg := fmt.Sprint(he.Message)
	if msg == "" {
		msg = http.StatusText(he.Code)
	}
	code := strings.ToUpper(strings.ReplaceAll(http.StatusText(he.Code), " ", "_"))
	return &HTTPError{StatusCode: he.Code, Message: msg, Code: code, Internal: he.Internal}
}
