// Package handlers contains the discovery http handlers a host mounts on its echo server.
package handlers

import (
	"fmt"
	"net/http"

	"mymesh/helpers"
	"mymesh/interfaces"
	"mymesh/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
)

// DiscoveryServer serves register, ping and services for the local registry.
type DiscoveryServer struct {
	registry interfaces.PeerRegistry
	logger   log.Logger
}

// NewDiscoveryServer creates a new DiscoveryServer.
func NewDiscoveryServer(registry interfaces.PeerRegistry, logger log.Logger) *DiscoveryServer {
	logger = log.WithPrefix(helpers.NilPanic(logger, "handlers.http.go: logger is required"), "component", "DiscoveryServer")
	return &DiscoveryServer{
		registry: helpers.NilPanic(registry, "handlers.http.go: registry is required"),
		logger:   logger,
	}
}

// RegisterService (POST {prefix}/register) records the caller as a peer and answers with the local descriptor.
// Returns 400 on parse/validation error.
func (h *DiscoveryServer) RegisterService(ectx echo.Context) error {
	var req RegisterRequest
	if err := ectx.Bind(&req); err != nil {
		return service.NewBadParameterError("invalid request body", err)
	}

	incoming, err := fromRegisterRequest(req)
	if err != nil {
		return fmt.Errorf("registerService failed to convert request to descriptor, err: %w", err)
	}

	self, err := h.registry.Register(incoming)
	if err != nil {
		return fmt.Errorf("registerService failed to register %q, err: %w", incoming.Name, err)
	}
	level.Debug(h.logger).Log("msg", "Registration accepted", "service", incoming.Name, "url", incoming.BaseURL)

	return ectx.JSON(http.StatusOK, toServiceInfo(self))
}

// Ping (POST {prefix}/ping) proves liveness.
func (h *DiscoveryServer) Ping(ectx echo.Context) error {
	return ectx.JSON(http.StatusOK, PingResponse{Status: "OK"})
}

// ListServices (GET {prefix}/services) returns the local descriptor and a snapshot of every peer.
func (h *DiscoveryServer) ListServices(ectx echo.Context) error {
	return ectx.JSON(http.StatusOK, toServicesResponse(h.registry.Self(), h.registry.List()))
}
