package handlers

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
)

//go:embed api/discovery.openapi.yaml
var discoveryOpenAPI []byte

// GetSwagger returns the parsed and validated OpenAPI document of the discovery endpoints.
func GetSwagger() (*openapi3.T, error) {
	doc, err := openapi3.NewLoader().LoadFromData(discoveryOpenAPI)
	if err != nil {
		return nil, fmt.Errorf("loading discovery openapi document, err: %w", err)
	}
	if err := doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("validating discovery openapi document, err: %w", err)
	}
	return doc, nil
}

func newOpenAPIRouter() (routers.Router, error) {
	doc, err := GetSwagger()
	if err != nil {
		return nil, err
	}
	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("building discovery openapi router, err: %w", err)
	}
	return router, nil
}
