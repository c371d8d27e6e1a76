package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mymesh/adapters"
	"mymesh/adapters/myredis"
	"mymesh/discovery"
	"mymesh/domain"
	"mymesh/handlers"
	"mymesh/interfaces"
	"mymesh/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
)

func main() {
	// Initialize logger
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.WithPrefix(logger, "ts", log.DefaultTimestampUTC)
	logger = log.WithPrefix(logger, "caller", log.DefaultCaller)

	level.Info(logger).Log("msg", "Starting MyMesh node")

	// Load configuration
	config, err := LoadConfig()
	if err != nil {
		level.Error(logger).Log("msg", "Failed to load configuration", "err", err)
		os.Exit(1)
	}
	level.Info(logger).Log(
		"msg", "Configuration loaded",
		"service_name", config.Discovery.ServiceName,
		"service_port_http", config.HTTPPort,
		"peers", len(config.Discovery.Peers),
		"payload_signing", config.Discovery.EnablePayloadSigning,
		"redis_addr", config.Redis.Addr,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Resolve the shared secret
	var secret string
	{
		var store interfaces.SecretStore
		if config.Redis.Addr != "" {
			redisClient, err := myredis.NewRedisUniversalClient(config.Redis.Addr)
			if err != nil {
				level.Error(logger).Log("msg", "Failed to create Redis client", "err", err)
				os.Exit(1)
			}
			defer redisClient.Close()

			pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
			err = redisClient.Ping(pingCtx).Err()
			pingCancel()
			if err != nil {
				level.Error(logger).Log("msg", "Failed to connect to Redis", "err", err)
				os.Exit(1)
			}
			level.Info(logger).Log("msg", "Connected to Redis")
			store = myredis.NewSecretStore(redisClient, myredis.DefaultSecretKey)
		} else {
			store = adapters.SecretFile(config.SecretFile)
		}

		secret, err = service.LoadSecret(ctx, config.Secret, store, logger)
		if err != nil {
			level.Error(logger).Log("msg", "Failed to resolve discovery secret", "err", err)
			os.Exit(1)
		}
	}

	// Create discovery node
	var node *discovery.Node
	{
		config.Discovery.OnServiceUp = func(name string, record domain.PeerRecord) {
			level.Info(logger).Log("msg", "Peer is UP", "service", name, "url", record.BaseURL, "routes", len(record.Routes))
		}
		config.Discovery.OnServiceDown = func(name string, record domain.PeerRecord, reason string) {
			level.Warn(logger).Log("msg", "Peer is DOWN", "service", name, "url", record.BaseURL, "reason", reason)
		}

		node, err = discovery.New(config.Discovery, secret, &http.Client{}, logger)
		if err != nil {
			level.Error(logger).Log("msg", "Failed to create discovery node", "err", err)
			os.Exit(1)
		}
	}

	// Create HTTP server (Echo)
	var e *echo.Echo
	{
		e = echo.New()
		e.HideBanner = true
		service.RegisterErrorHandler(e, logger)
		if err := node.Mount(e); err != nil {
			level.Error(logger).Log("msg", "Failed to mount discovery endpoints", "err", err)
			os.Exit(1)
		}

		var verify *service.SecurityContext
		if config.Discovery.EnablePayloadSigning {
			verify = node.Security()
		}
		registerDemoRoutes(e, &demoServer{name: node.Registry().Self().Name, services: node.Services()}, verify)
	}

	// Setup graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%d", config.HTTPPort)
		level.Info(logger).Log("msg", "Starting HTTP server", "addr", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			level.Error(logger).Log("msg", "HTTP server error", "err", err)
		}
	}()

	// Routes are final: publish them, discover seeds and start health checks
	if err := node.Activate(ctx, handlers.RoutesFromEcho(e, config.Discovery.PathPrefix, logger)); err != nil {
		level.Error(logger).Log("msg", "Failed to activate discovery node", "err", err)
		os.Exit(1)
	}

	// Wait for interrupt signal
	<-quit
	level.Info(logger).Log("msg", "Shutting down server...")
	cancel()

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		level.Error(logger).Log("msg", "Error during server shutdown", "err", err)
	}

	level.Info(logger).Log("msg", "Server stopped")
}
