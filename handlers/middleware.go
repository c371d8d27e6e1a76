package handlers

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"

	"mymesh/service"

	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
)

// errorBoundary renders errors of the discovery group as coded errors, whatever error handler the host
// installed on its echo instance. Rejected peers are logged with their address.
func errorBoundary(logger log.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err == nil {
				return nil
			}
			status, myErr := service.RenderError(c, err)
			if status >= http.StatusInternalServerError {
				level.Error(logger).Log("msg", "Discovery request failed", "path", c.Request().URL.Path, "err", err)
			} else {
				level.Warn(logger).Log("msg", "Discovery request rejected", "path", c.Request().URL.Path,
					"remote_addr", c.Request().RemoteAddr, "code", myErr.Code, "reason", myErr.Message)
			}
			return nil
		}
	}
}

func authenticate(security *service.SecurityContext) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := security.Authenticate(c.Request()); err != nil {
				return err
			}
			return next(c)
		}
	}
}

// validateRequest checks discovery requests against the embedded OpenAPI document. Paths are matched with
// prefix stripped.
func validateRequest(router routers.Router, prefix string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			probe := req.Clone(req.Context())
			probe.URL.Path = strings.TrimPrefix(req.URL.Path, prefix)
			probe.URL.RawPath = ""

			route, pathParams, err := router.FindRoute(probe)
			if err != nil {
				return echo.NewHTTPError(http.StatusNotFound, "no such discovery operation").SetInternal(err)
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    probe,
				PathParams: pathParams,
				Route:      route,
			}
			err = openapi3filter.ValidateRequest(req.Context(), input)
			// The validator drains the body and leaves a fresh reader on probe.
			req.Body = probe.Body
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "request does not match the discovery schema").SetInternal(err)
			}
			return next(c)
		}
	}
}

// VerifySignature rejects body-carrying requests whose X-Discovery-Signature header is not the HMAC of the
// body under the shared secret. Hosts apply it to routes that expect signed invocations.
func VerifySignature(security *service.SecurityContext) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			switch req.Method {
			case http.MethodGet, http.MethodDelete, http.MethodHead, http.MethodOptions:
				return next(c)
			}

			var body []byte
			if req.Body != nil {
				var err error
				body, err = io.ReadAll(req.Body)
				if err != nil {
					return service.NewBadParameterError("can't read request body", fmt.Errorf("verifySignature failed to read body, err: %w", err))
				}
			}
			req.Body = io.NopCloser(bytes.NewReader(body))

			if !security.Verify(body, req.Header.Get(service.SignatureHeader)) {
				return service.NewUnauthorizedError("Invalid payload signature")
			}
			return next(c)
		}
	}
}
