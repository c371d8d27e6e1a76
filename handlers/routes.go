package handlers

import (
	"fmt"
	"net/http"
	"slices"
	"strings"

	"mymesh/domain"
	"mymesh/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
)

// DefaultPathPrefix is where the discovery endpoints are mounted unless configured otherwise.
const DefaultPathPrefix = "/_discovery"

var routeMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
}

// RegisterHandlers mounts the discovery endpoints of server under prefix. Every endpoint authenticates the
// caller, then validates the request against the embedded OpenAPI document.
func RegisterHandlers(e *echo.Echo, prefix string, server *DiscoveryServer, security *service.SecurityContext, logger log.Logger) error {
	if prefix == "" {
		prefix = DefaultPathPrefix
	}
	prefix = "/" + strings.Trim(prefix, "/")

	router, err := newOpenAPIRouter()
	if err != nil {
		return fmt.Errorf("registerHandlers failed to build request validator, err: %w", err)
	}

	g := e.Group(prefix, errorBoundary(log.WithPrefix(logger, "component", "DiscoveryServer")), authenticate(security), validateRequest(router, prefix))
	g.POST("/register", server.RegisterService)
	g.POST("/ping", server.Ping)
	g.GET("/services", server.ListServices)
	return nil
}

// RoutesFromEcho builds the route table a node publishes from the routes declared on e. Routes under the
// discovery prefix, catch-all not-found routes and non-standard methods are left out. Logical names are the
// echo route names, so hosts name the routes peers call: e.GET("/profile/:id", h).Name = "getProfile".
// Names are unique in the table: when routes share a name (echo names unnamed routes after their handler),
// the first by path then method is kept and the others are logged and left out.
func RoutesFromEcho(e *echo.Echo, prefix string, logger log.Logger) []domain.RouteDescriptor {
	if prefix == "" {
		prefix = DefaultPathPrefix
	}
	prefix = "/" + strings.Trim(prefix, "/")

	var candidates []domain.RouteDescriptor
	for _, r := range e.Routes() {
		if !slices.Contains(routeMethods, r.Method) {
			continue
		}
		if r.Path == prefix || strings.HasPrefix(r.Path, prefix+"/") {
			continue
		}
		candidates = append(candidates, domain.RouteDescriptor{
			Path:   r.Path,
			Method: r.Method,
			Name:   r.Name,
		})
	}

	slices.SortFunc(candidates, func(a, b domain.RouteDescriptor) int {
		if c := strings.Compare(a.Path, b.Path); c != 0 {
			return c
		}
		return strings.Compare(a.Method, b.Method)
	})

	var out []domain.RouteDescriptor
	seen := make(map[string]domain.RouteDescriptor, len(candidates))
	for _, r := range candidates {
		if kept, ok := seen[r.Name]; ok {
			level.Warn(logger).Log("msg", "Skipping route with duplicate name", "name", r.Name,
				"method", r.Method, "path", r.Path, "kept_method", kept.Method, "kept_path", kept.Path)
			continue
		}
		seen[r.Name] = r
		out = append(out, r)
	}
	return out
}
