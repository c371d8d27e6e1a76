package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/go-kit/log"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusForCode(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{code: ErrBadParameter, expected: http.StatusBadRequest},
		{code: ErrUnauthorized, expected: http.StatusUnauthorized},
		{code: ErrForbidden, expected: http.StatusForbidden},
		{code: ErrEntityNotFound, expected: http.StatusNotFound},
		{code: ErrRouteNotFound, expected: http.StatusNotFound},
		{code: ErrServiceUnavailable, expected: http.StatusServiceUnavailable},
		{code: ErrTransportFailure, expected: http.StatusBadGateway},
		{code: ErrRemoteStatus, expected: http.StatusBadGateway},
		{code: ErrInternalServerError, expected: http.StatusInternalServerError},
		{code: ErrConfiguration, expected: http.StatusInternalServerError},
		{code: "unknown", expected: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, StatusForCode(tt.code))
		})
	}
}

func TestClassifyError(t *testing.T) {
	validation := echo.NewHTTPError(http.StatusBadRequest, "request body has an error")
	validation.Internal = &openapi3filter.RequestError{Err: assert.AnError}

	wrapped := echo.NewHTTPError(http.StatusInternalServerError)
	wrapped.Internal = echo.NewHTTPError(http.StatusForbidden, "nope")

	tests := []struct {
		name            string
		err             error
		expectedStatus  int
		expectedCode    string
		expectedMessage string
	}{
		{name: "coded error", err: NewUnauthorizedError("Unauthorized"), expectedStatus: http.StatusUnauthorized, expectedCode: ErrUnauthorized, expectedMessage: "Unauthorized"},
		{name: "wrapped coded error", err: errors.Join(assert.AnError, NewRouteNotFoundError("Route Not Found: r on a")), expectedStatus: http.StatusNotFound, expectedCode: ErrRouteNotFound, expectedMessage: "Route Not Found: r on a"},
		{name: "plain error", err: assert.AnError, expectedStatus: http.StatusInternalServerError, expectedCode: ErrInternalServerError, expectedMessage: "an internal server error has occurred"},
		{name: "echo not found", err: echo.ErrNotFound, expectedStatus: http.StatusNotFound, expectedCode: ErrEntityNotFound, expectedMessage: "Not Found"},
		{name: "echo method not allowed", err: echo.ErrMethodNotAllowed, expectedStatus: http.StatusMethodNotAllowed, expectedCode: ErrBadParameter, expectedMessage: "Method Not Allowed"},
		{name: "echo non string message", err: echo.NewHTTPError(http.StatusServiceUnavailable, map[string]string{"a": "b"}), expectedStatus: http.StatusServiceUnavailable, expectedCode: ErrServiceUnavailable, expectedMessage: "Service Unavailable"},
		{name: "openapi validation", err: validation, expectedStatus: http.StatusBadRequest, expectedCode: ErrBadParameter, expectedMessage: "request body has an error"},
		{name: "nested echo error", err: wrapped, expectedStatus: http.StatusForbidden, expectedCode: ErrForbidden, expectedMessage: "nope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, myErr := ClassifyError(tt.err)
			assert.Equal(t, tt.expectedStatus, status)
			require.NotNil(t, myErr)
			assert.Equal(t, tt.expectedCode, myErr.Code)
			assert.Equal(t, tt.expectedMessage, myErr.Message)
		})
	}
}

func TestRenderError(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/relay/a/r", nil)
	rec := httptest.NewRecorder()

	status, myErr := RenderError(e.NewContext(req, rec), NewTransportFailureError("dial", assert.AnError))

	assert.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, ErrTransportFailure, myErr.Code)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	var body ErrResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.NotNil(t, body.Error)
	assert.Equal(t, ErrTransportFailure, body.Error.Code)
	assert.Equal(t, "dial", body.Error.Message)
}

func TestRenderError_Head(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodHead, "/", nil)
	rec := httptest.NewRecorder()

	RenderError(e.NewContext(req, rec), NewForbiddenError("Forbidden"))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestRenderError_Committed(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, c.String(http.StatusOK, "done"))

	RenderError(c, NewBadParameterError("late", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "done", rec.Body.String())
}

func TestRegisterErrorHandler(t *testing.T) {
	var buf bytes.Buffer
	e := echo.New()
	RegisterErrorHandler(e, log.NewLogfmtLogger(&buf))
	e.GET("/fail", func(c echo.Context) error { return NewRemoteStatusError("GET / returned status 500", 500, nil) })
	e.GET("/reject", func(c echo.Context) error { return NewBadParameterError("invalid id", nil) })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fail", nil))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, buf.String(), "level=error")
	assert.Contains(t, buf.String(), `msg="HTTP request failed"`)

	buf.Reset()
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reject", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, buf.String(), "level=warn")
	assert.Contains(t, buf.String(), "code=bad_parameter")

	buf.Reset()
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	var body ErrResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.NotNil(t, body.Error)
	assert.Equal(t, ErrEntityNotFound, body.Error.Code)
	assert.True(t, strings.Contains(buf.String(), "path=/missing"))
}
