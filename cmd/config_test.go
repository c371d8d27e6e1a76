package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"mymesh/adapters"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv isolates a test from the caller's environment.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, env := range []string{
		envConfigPath, envServiceName, envServiceHost, envHTTPPort, envAdvertiseURL, envPeers, envPingIntervalMs,
		envIPWhitelist, envPayloadSigning, envSecret, envSecretFile, envRedisAddr,
	} {
		t.Setenv(env, "")
	}
}

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "mymesh.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o644))
	return cfgPath
}

func TestLoadConfig_ServicePortRequired(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "SERVICE_PORT_HTTP is required")
}

func TestLoadConfig_InvalidSERVICE_PORT_HTTP(t *testing.T) {
	clearEnv(t)
	t.Setenv(envHTTPPort, "not-a-number")

	cfg, err := LoadConfig()
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "SERVICE_PORT_HTTP")
}

func TestLoadConfig_PortOutOfRange(t *testing.T) {
	clearEnv(t)
	t.Setenv(envHTTPPort, "70000")

	cfg, err := LoadConfig()
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "1-65535")
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv(envHTTPPort, "8080")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, 8080, cfg.Discovery.Port)
	assert.Empty(t, cfg.Discovery.ServiceName)
	assert.Empty(t, cfg.Discovery.Peers)
	assert.Zero(t, cfg.Discovery.PingInterval)
	assert.False(t, cfg.Discovery.EnablePayloadSigning)
	assert.Empty(t, cfg.Secret)
	assert.Equal(t, adapters.DefaultSecretPath(), cfg.SecretFile)
	assert.Empty(t, cfg.Redis.Addr)
}

func TestLoadConfig_Env(t *testing.T) {
	clearEnv(t)
	t.Setenv(envHTTPPort, "3001")
	t.Setenv(envServiceName, "profiles")
	t.Setenv(envServiceHost, "10.0.0.1")
	t.Setenv(envPeers, "http://10.0.0.2:3000, http://10.0.0.3:3000,,")
	t.Setenv(envPingIntervalMs, "2500")
	t.Setenv(envIPWhitelist, "10.0.0.2,10.0.0.3")
	t.Setenv(envPayloadSigning, "true")
	t.Setenv(envSecret, "s3cret")
	t.Setenv(envSecretFile, "/run/mymesh/key")
	t.Setenv(envRedisAddr, "redis://localhost:6379")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "profiles", cfg.Discovery.ServiceName)
	assert.Equal(t, "10.0.0.1", cfg.Discovery.Host)
	assert.Equal(t, []string{"http://10.0.0.2:3000", "http://10.0.0.3:3000"}, cfg.Discovery.Peers)
	assert.Equal(t, 2500*time.Millisecond, cfg.Discovery.PingInterval)
	assert.Equal(t, []string{"10.0.0.2", "10.0.0.3"}, cfg.Discovery.IPWhitelist)
	assert.True(t, cfg.Discovery.EnablePayloadSigning)
	assert.Equal(t, "s3cret", cfg.Secret)
	assert.Equal(t, "/run/mymesh/key", cfg.SecretFile)
	assert.Equal(t, "redis://localhost:6379", cfg.Redis.Addr)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name     string
		env      string
		value    string
		contains string
	}{
		{name: "ping interval not a number", env: envPingIntervalMs, value: "soon", contains: envPingIntervalMs},
		{name: "ping interval negative", env: envPingIntervalMs, value: "-1", contains: envPingIntervalMs},
		{name: "signing not a bool", env: envPayloadSigning, value: "maybe", contains: envPayloadSigning},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(envHTTPPort, "3000")
			t.Setenv(tt.env, tt.value)

			cfg, err := LoadConfig()
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestLoadConfig_YAML(t *testing.T) {
	clearEnv(t)
	t.Setenv(envConfigPath, writeYAML(t, `
service_name: billing
port: 4000
advertise_url: https://billing.internal
peers:
  - http://profiles:3000
ping_interval_ms: 1000
ip_whitelist: [10.0.0.7]
payload_signing: true
secret_file: /var/lib/mymesh/key
redis_addr: redis://redis:6379
`))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "billing", cfg.Discovery.ServiceName)
	assert.Equal(t, 4000, cfg.HTTPPort)
	assert.Equal(t, "https://billing.internal", cfg.Discovery.AdvertiseURL)
	assert.Equal(t, []string{"http://profiles:3000"}, cfg.Discovery.Peers)
	assert.Equal(t, time.Second, cfg.Discovery.PingInterval)
	assert.Equal(t, []string{"10.0.0.7"}, cfg.Discovery.IPWhitelist)
	assert.True(t, cfg.Discovery.EnablePayloadSigning)
	assert.Equal(t, "/var/lib/mymesh/key", cfg.SecretFile)
	assert.Equal(t, "redis://redis:6379", cfg.Redis.Addr)
}

func TestLoadConfig_EnvOverridesYAML(t *testing.T) {
	clearEnv(t)
	t.Setenv(envConfigPath, writeYAML(t, `
service_name: billing
port: 4000
payload_signing: true
peers: [http://profiles:3000]
`))
	t.Setenv(envServiceName, "billing-canary")
	t.Setenv(envHTTPPort, "4001")
	t.Setenv(envPayloadSigning, "false")
	t.Setenv(envPeers, "http://profiles-canary:3000")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "billing-canary", cfg.Discovery.ServiceName)
	assert.Equal(t, 4001, cfg.HTTPPort)
	assert.False(t, cfg.Discovery.EnablePayloadSigning)
	assert.Equal(t, []string{"http://profiles-canary:3000"}, cfg.Discovery.Peers)
}

func TestLoadConfig_YAMLErrors(t *testing.T) {
	clearEnv(t)
	t.Setenv(envHTTPPort, "3000")

	t.Setenv(envConfigPath, filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")

	t.Setenv(envConfigPath, writeYAML(t, "port: [not, an, int]"))
	_, err = LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
}
