// Package discovery assembles a mesh node: the registry, the discovery endpoints, the outbound peer transport
// and the invocation client, started in two phases. Mount the endpoints on the host's echo server first so
// peers can reach this node right away, then Activate with the host's route table once it is final.
package discovery

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"mymesh/adapters"
	"mymesh/domain"
	"mymesh/handlers"
	"mymesh/helpers"
	"mymesh/interfaces"
	"mymesh/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
)

// DefaultServiceName is used when Config.ServiceName is empty.
const DefaultServiceName = "unnamed-service"

// Config configures a Node.
type Config struct {
	ServiceName string
	// Host defaults to the first non-loopback IPv4 address, else 127.0.0.1.
	Host string
	Port int
	// AdvertiseURL overrides the base URL built from Host and Port.
	AdvertiseURL string
	// Peers are the seed base URLs registered against on Activate.
	Peers        []string
	PingInterval time.Duration
	ProbeTimeout time.Duration
	CallTimeout  time.Duration
	// IPWhitelist restricts discovery callers. Empty means any address.
	IPWhitelist          []string
	EnablePayloadSigning bool
	PathPrefix           string
	OnServiceUp          service.UpHook
	OnServiceDown        service.DownHook
}

// Node is one participant of the mesh.
type Node struct {
	prefix   string
	peers    []string
	security *service.SecurityContext
	registry *service.Registry
	client   *service.InvocationClient
	server   *handlers.DiscoveryServer
	ready    chan struct{}
	logger   log.Logger
}

// New assembles a Node around the shared secret (see service.LoadSecret). httpClient carries every outbound
// call; nil means a fresh http.Client.
// Returns configuration_error when neither Port nor AdvertiseURL is set, on an empty secret or on an
// invalid IPWhitelist entry.
func New(cfg Config, secret string, httpClient *http.Client, logger log.Logger) (*Node, error) {
	logger = helpers.NilPanic(logger, "discovery.node.go: logger is required")

	if cfg.Port == 0 && cfg.AdvertiseURL == "" {
		return nil, service.NewConfigurationError("port is required", nil)
	}
	if cfg.Port < 0 || cfg.Port > 65535 {
		return nil, service.NewConfigurationError(fmt.Sprintf("port %d is out of range", cfg.Port), nil)
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = DefaultServiceName
	}
	if cfg.PathPrefix == "" {
		cfg.PathPrefix = handlers.DefaultPathPrefix
	}
	prefix := "/" + strings.Trim(cfg.PathPrefix, "/")

	security, err := service.NewSecurityContext(secret, cfg.IPWhitelist, logger)
	if err != nil {
		return nil, err
	}

	baseURL := strings.TrimRight(cfg.AdvertiseURL, "/")
	if baseURL == "" {
		host := cfg.Host
		if host == "" {
			if host = helpers.LocalIPv4(); host == "" {
				host = "127.0.0.1"
			}
		}
		baseURL = "http://" + net.JoinHostPort(host, strconv.Itoa(cfg.Port))
	}

	if httpClient == nil {
		httpClient = &http.Client{}
	}

	self := domain.ServiceDescriptor{Name: cfg.ServiceName, BaseURL: baseURL}
	registry := service.NewRegistry(self, adapters.PeerHTTP(httpClient, security, prefix), service.RegistryConfig{
		PingInterval:  cfg.PingInterval,
		ProbeTimeout:  cfg.ProbeTimeout,
		OnServiceUp:   cfg.OnServiceUp,
		OnServiceDown: cfg.OnServiceDown,
	}, logger)

	var signer interfaces.Signer
	if cfg.EnablePayloadSigning {
		signer = security
	}

	return &Node{
		prefix:   prefix,
		peers:    append([]string(nil), cfg.Peers...),
		security: security,
		registry: registry,
		client:   service.NewInvocationClient(registry, httpClient, signer, cfg.CallTimeout, logger),
		server:   handlers.NewDiscoveryServer(registry, logger),
		ready:    make(chan struct{}),
		logger:   log.WithPrefix(logger, "component", "Node", "service", cfg.ServiceName),
	}, nil
}

// Mount registers the discovery endpoints on e. The node answers register and ping from here on, before
// Activate.
func (n *Node) Mount(e *echo.Echo) error {
	if err := handlers.RegisterHandlers(e, n.prefix, n.server, n.security, n.logger); err != nil {
		return fmt.Errorf("mount failed to register discovery handlers, err: %w", err)
	}
	level.Info(n.logger).Log("msg", "Discovery endpoints mounted", "prefix", n.prefix)
	return nil
}

// Activate publishes routes as the local route table, then registers against the seed peers and starts the
// health checks in the background until ctx is done. Ready is closed once seed registration has finished.
// Returns bad_parameter when called more than once.
func (n *Node) Activate(ctx context.Context, routes []domain.RouteDescriptor) error {
	if err := n.registry.PublishRoutes(routes); err != nil {
		return fmt.Errorf("activate failed to publish routes, err: %w", err)
	}
	self := n.registry.Self()
	level.Info(n.logger).Log("msg", "Node activated", "url", self.BaseURL, "routes", len(self.Routes), "seeds", len(n.peers))

	go func() {
		n.registry.DiscoverPeers(ctx, n.peers)
		close(n.ready)
		n.registry.StartHealthChecks(ctx)
	}()
	return nil
}

// Ready is closed once the initial seed registration has completed.
func (n *Node) Ready() <-chan struct{} {
	return n.ready
}

// Services returns the invocation client, usable right away; peers become callable as they come UP.
func (n *Node) Services() *service.InvocationClient {
	return n.client
}

// Security returns the node's security context, for hosts that verify signed invocations with
// handlers.VerifySignature.
func (n *Node) Security() *service.SecurityContext {
	return n.security
}

// Registry exposes the local peer view.
func (n *Node) Registry() *service.Registry {
	return n.registry
}
