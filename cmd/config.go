package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"mymesh/adapters"
	"mymesh/adapters/myredis"
	"mymesh/discovery"
	"mymesh/helpers"

	"gopkg.in/yaml.v3"
)

// Env variable names.
const (
	envConfigPath     = "CONFIG_PATH"
	envServiceName    = "SERVICE_NAME"
	envServiceHost    = "SERVICE_HOST"
	envHTTPPort       = "SERVICE_PORT_HTTP"
	envAdvertiseURL   = "SERVICE_ADVERTISE_URL"
	envPeers          = "DISCOVERY_PEERS"
	envPingIntervalMs = "DISCOVERY_PING_INTERVAL_MS"
	envIPWhitelist    = "DISCOVERY_IP_WHITELIST"
	envPayloadSigning = "DISCOVERY_PAYLOAD_SIGNING"
	envSecret         = "DISCOVERY_SECRET"
	envSecretFile     = "DISCOVERY_KEY_FILE"
	envRedisAddr      = "REDIS_ADDR"
)

// MyMeshConfig is the demo node configuration. Discovery hooks are set by main.
// Secret is the explicit shared secret; when empty it is resolved through service.LoadSecret, from Redis when
// Redis.Addr is set, else from SecretFile.
type MyMeshConfig struct {
	Discovery  discovery.Config
	HTTPPort   int
	Secret     string
	SecretFile string
	Redis      myredis.RedisConfig
}

// yamlConfig is the optional file at CONFIG_PATH. Unset fields keep their defaults; environment variables win.
type yamlConfig struct {
	ServiceName    *string  `yaml:"service_name"`
	Host           *string  `yaml:"host"`
	Port           *int     `yaml:"port"`
	AdvertiseURL   *string  `yaml:"advertise_url"`
	Peers          []string `yaml:"peers"`
	PingIntervalMs *int     `yaml:"ping_interval_ms"`
	IPWhitelist    []string `yaml:"ip_whitelist"`
	PayloadSigning *bool    `yaml:"payload_signing"`
	Secret         *string  `yaml:"secret"`
	SecretFile     *string  `yaml:"secret_file"`
	RedisAddr      *string  `yaml:"redis_addr"`
}

func loadYAMLConfig(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out yamlConfig
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LoadConfig builds the node configuration from the YAML file at CONFIG_PATH (optional) and environment
// variables. SERVICE_PORT_HTTP (or port in YAML) is required, 1-65535.
func LoadConfig() (*MyMeshConfig, error) {
	raw := &yamlConfig{}
	if configPath := strings.TrimSpace(os.Getenv(envConfigPath)); configPath != "" {
		if !filepath.IsAbs(configPath) {
			abs, err := filepath.Abs(configPath)
			if err != nil {
				return nil, err
			}
			configPath = abs
		}
		var err error
		raw, err = loadYAMLConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("load config %s: %w", configPath, err)
		}
	}

	httpPort := helpers.Deref(raw.Port, 0)
	if v := strings.TrimSpace(os.Getenv(envHTTPPort)); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", envHTTPPort, err)
		}
		httpPort = p
	}
	if httpPort == 0 {
		return nil, fmt.Errorf("%s is required", envHTTPPort)
	}
	if httpPort < 0 || httpPort > 65535 {
		return nil, fmt.Errorf("%s must be 1-65535, got %d", envHTTPPort, httpPort)
	}

	pingIntervalMs := helpers.Deref(raw.PingIntervalMs, 0)
	if v := strings.TrimSpace(os.Getenv(envPingIntervalMs)); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", envPingIntervalMs, err)
		}
		pingIntervalMs = ms
	}
	if pingIntervalMs < 0 {
		return nil, fmt.Errorf("%s must not be negative, got %d", envPingIntervalMs, pingIntervalMs)
	}

	payloadSigning := helpers.Deref(raw.PayloadSigning, false)
	if v := strings.TrimSpace(os.Getenv(envPayloadSigning)); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", envPayloadSigning, err)
		}
		payloadSigning = b
	}

	secretFile := stringSetting(envSecretFile, raw.SecretFile)
	if secretFile == "" {
		secretFile = adapters.DefaultSecretPath()
	}

	return &MyMeshConfig{
		Discovery: discovery.Config{
			ServiceName:          stringSetting(envServiceName, raw.ServiceName),
			Host:                 stringSetting(envServiceHost, raw.Host),
			Port:                 httpPort,
			AdvertiseURL:         stringSetting(envAdvertiseURL, raw.AdvertiseURL),
			Peers:                listSetting(envPeers, raw.Peers),
			PingInterval:         time.Duration(pingIntervalMs) * time.Millisecond,
			IPWhitelist:          listSetting(envIPWhitelist, raw.IPWhitelist),
			EnablePayloadSigning: payloadSigning,
		},
		HTTPPort:   httpPort,
		Secret:     stringSetting(envSecret, raw.Secret),
		SecretFile: secretFile,
		Redis: myredis.RedisConfig{
			Addr: stringSetting(envRedisAddr, raw.RedisAddr),
		},
	}, nil
}

// stringSetting returns the env variable when set, else the YAML value.
func stringSetting(env string, fromFile *string) string {
	if v := strings.TrimSpace(os.Getenv(env)); v != "" {
		return v
	}
	return strings.TrimSpace(helpers.Deref(fromFile, ""))
}

// listSetting returns the comma-separated env variable when set, else the YAML list.
func listSetting(env string, fromFile []string) []string {
	src := fromFile
	if v := strings.TrimSpace(os.Getenv(env)); v != "" {
		src = strings.Split(v, ",")
	}
	var out []string
	for _, s := range src {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
