package service

import (
	"errors"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
)

// statusByCode maps error codes to the HTTP status they are answered with. Unlisted codes answer 500.
var statusByCode = map[string]int{
	ErrBadParameter:        http.StatusBadRequest,
	ErrUnauthorized:        http.StatusUnauthorized,
	ErrForbidden:           http.StatusForbidden,
	ErrEntityNotFound:      http.StatusNotFound,
	ErrRouteNotFound:       http.StatusNotFound,
	ErrServiceUnavailable:  http.StatusServiceUnavailable,
	ErrTransportFailure:    http.StatusBadGateway,
	ErrRemoteStatus:        http.StatusBadGateway,
	ErrInternalServerError: http.StatusInternalServerError,
}

// StatusForCode returns the HTTP status for an error code.
func StatusForCode(code string) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// codeForStatus names the errors echo raises on its own (unknown route, wrong method, validation).
func codeForStatus(status int) string {
	switch {
	case status == http.StatusUnauthorized:
		return ErrUnauthorized
	case status == http.StatusForbidden:
		return ErrForbidden
	case status == http.StatusNotFound:
		return ErrEntityNotFound
	case status == http.StatusServiceUnavailable:
		return ErrServiceUnavailable
	case status >= 400 && status < 500:
		return ErrBadParameter
	default:
		return ErrInternalServerError
	}
}

// ErrResponse is the body of every error answer: {"error":{"code","message"}}.
type ErrResponse struct {
	Error *MyError `json:"error,omitempty"`
}

// ClassifyError returns the status and the coded error err is answered with. echo.HTTPErrors keep their
// status; a kin-openapi RequestError anywhere in their chain makes them bad_parameter.
func ClassifyError(err error) (int, *MyError) {
	if he, ok := err.(*echo.HTTPError); ok {
		if inner, ok := he.Internal.(*echo.HTTPError); ok {
			he = inner
		}
		message, ok := he.Message.(string)
		if !ok {
			message = http.StatusText(he.Code)
		}
		var requestError *openapi3filter.RequestError
		if errors.As(he.Internal, &requestError) {
			return he.Code, NewBadParameterError(message, err)
		}
		return he.Code, NewMyError(codeForStatus(he.Code), message, err)
	}

	if myErr := ToMyError(err); myErr != nil {
		return StatusForCode(myErr.Code), myErr
	}
	return http.StatusInternalServerError, NewInternalServerError("an internal server error has occurred", err)
}

// RenderError answers the request with err unless a response is already on its way. HEAD requests get
// the status only. It returns what was rendered so callers can log it their own way.
func RenderError(c echo.Context, err error) (int, *MyError) {
	status, myErr := ClassifyError(err)
	if c.Response().Committed {
		return status, myErr
	}
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
	} else {
		_ = c.JSON(status, ErrResponse{Error: myErr})
	}
	return status, myErr
}

// RegisterErrorHandler installs the coded error renderer as e's error handler. Server-side failures are
// logged at error, rejected requests at warn.
func RegisterErrorHandler(e *echo.Echo, logger log.Logger) {
	logger = log.WithPrefix(logger, "component", "HTTPErrorHandler")
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		status, myErr := RenderError(c, err)
		req := c.Request()
		if status >= http.StatusInternalServerError {
			level.Error(logger).Log("msg", "HTTP request failed", "method", req.Method, "path", req.URL.Path, "status", status, "err", err)
			return
		}
		level.Warn(logger).Log("msg", "HTTP request rejected", "method", req.Method, "path", req.URL.Path, "status", status, "code", myErr.Code)
	}
}
