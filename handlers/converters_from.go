package handlers

import (
	"fmt"
	"net/url"
	"strings"

	"mymesh/domain"
	"mymesh/service"
)

// fromRegisterRequest converts RegisterRequest to domain.ServiceDescriptor.
// Returns service.BadParameterError on validation failure.
func fromRegisterRequest(req RegisterRequest) (domain.ServiceDescriptor, error) {
	if req.Name == "" {
		return domain.ServiceDescriptor{}, service.NewBadParameterError("name is required", nil)
	}
	if req.Url == "" {
		return domain.ServiceDescriptor{}, service.NewBadParameterError("url is required", nil)
	}
	u, err := url.Parse(req.Url)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return domain.ServiceDescriptor{}, service.NewBadParameterError("url must be an absolute http(s) URL", err)
	}

	routes := make([]domain.RouteDescriptor, 0, len(req.Routes))
	for i, r := range req.Routes {
		if r.Path == "" || r.Method == "" || r.Name == "" {
			return domain.ServiceDescriptor{}, service.NewBadParameterError(fmt.Sprintf("routes[%d]: path, method and name are required", i), nil)
		}
		routes = append(routes, domain.RouteDescriptor{
			Path:   r.Path,
			Method: strings.ToUpper(r.Method),
			Name:   r.Name,
		})
	}

	return domain.ServiceDescriptor{
		Name:    req.Name,
		BaseURL: req.Url,
		Routes:  routes,
	}, nil
}
