// In file: internal/config/config.go

// Package config loads the gateway's settings from a .env file, an optional
// YAML file and the process environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/dileep-u-k/aegis-gateway/internal/adapter"
	"github.com/dileep-u-k/aegis-gateway/internal/tools"
)

const (
	defaultServiceName      = "Aegis Logistics Backend"
	defaultPort             = "8080"
	defaultLogLevel         = "info"
	defaultLogFormat        = "console"
	defaultGinMode          = "release"
	defaultMaxRequestBytes  = 1 << 20
	defaultMaxResponseBytes = 6 << 20
	defaultToolTimeout      = 10 * time.Second
)

// Config holds every setting the gateway reads at startup.
type Config struct {
	ServiceName       string        `yaml:"service_name"`
	Runtime           string        `yaml:"runtime"`
	Port              string        `yaml:"port"`
	LogLevel          string        `yaml:"log_level"`
	LogFormat         string        `yaml:"log_format"`
	GinMode           string        `yaml:"gin_mode"`
	MaxRequestBytes   int64         `yaml:"max_request_bytes"`
	MaxResponseBytes  int           `yaml:"max_response_bytes"`
	DataVaultTopK     int           `yaml:"datavault_top_k"`
	DataVaultFixtures string        `yaml:"datavault_fixtures"`
	ToolTimeout       time.Duration `yaml:"tool_timeout"`

	warnings []string
}

// LookupFunc reads one setting; it has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Default returns the settings used when nothing overrides them.
func Default() *Config {
	return &Config{
		ServiceName:      defaultServiceName,
		Runtime:          adapter.ShapeHTTP,
		Port:             defaultPort,
		LogLevel:         defaultLogLevel,
		LogFormat:        defaultLogFormat,
		GinMode:          defaultGinMode,
		MaxRequestBytes:  defaultMaxRequestBytes,
		MaxResponseBytes: defaultMaxResponseBytes,
		DataVaultTopK:    tools.DefaultTopK,
		ToolTimeout:      defaultToolTimeout,
	}
}

// Load reads the configuration from the process environment. A .env file
// that exists but cannot be read is not fatal; it is reported by Warnings
// so the caller can log it once its logger is built.
func Load() (*Config, error) {
	var warnings []string
	// Deployed environments provide variables directly; .env is for local runs.
	if os.Getenv("GIN_MODE") != "release" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			warnings = append(warnings, fmt.Sprintf("could not read .env file: %v", err))
		}
	}
	cfg, err := FromLookup(os.LookupEnv)
	if err != nil {
		return nil, err
	}
	cfg.warnings = warnings
	return cfg, nil
}

// Warnings returns the non-fatal problems met while loading.
func (c *Config) Warnings() []string {
	return append([]string(nil), c.warnings...)
}

// FromLookup builds a Config from defaults, then the YAML file named by
// GATEWAY_CONFIG (if any), then individual variables.
func FromLookup(lookup LookupFunc) (*Config, error) {
	cfg := Default()
	if _, ok := lookup("AWS_LAMBDA_RUNTIME_API"); ok {
		cfg.Runtime = adapter.ShapeAPIGatewayV2
	}

	if path, ok := lookup("GATEWAY_CONFIG"); ok && path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.mergeEnv(lookup); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) mergeEnv(lookup LookupFunc) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	str("SERVICE_NAME", &c.ServiceName)
	str("GATEWAY_RUNTIME", &c.Runtime)
	str("PORT", &c.Port)
	str("LOG_LEVEL", &c.LogLevel)
	str("LOG_FORMAT", &c.LogFormat)
	str("GIN_MODE", &c.GinMode)
	str("DATAVAULT_FIXTURES", &c.DataVaultFixtures)

	if v, ok := lookup("MAX_REQUEST_BYTES"); ok && v != "" {
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("MAX_REQUEST_BYTES: %w", err)
		}
		c.MaxRequestBytes = n
	}
	if v, ok := lookup("MAX_RESPONSE_BYTES"); ok && v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("MAX_RESPONSE_BYTES: %w", err)
		}
		c.MaxResponseBytes = n
	}
	if v, ok := lookup("DATAVAULT_TOP_K"); ok && v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("DATAVAULT_TOP_K: %w", err)
		}
		c.DataVaultTopK = n
	}
	if v, ok := lookup("TOOL_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("TOOL_TIMEOUT: %w", err)
		}
		c.ToolTimeout = d
	}
	return nil
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.ServiceName) == "" {
		return errors.New("SERVICE_NAME must not be empty")
	}
	switch c.Runtime {
	case adapter.ShapeHTTP, adapter.ShapeVercel, adapter.ShapeAPIGatewayV1, adapter.ShapeAPIGatewayV2:
	default:
		return fmt.Errorf("GATEWAY_RUNTIME %q is not one of http, vercel, apigw-v1, apigw-v2", c.Runtime)
	}
	if port, err := strconv.Atoi(c.Port); err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("PORT %q is not a valid port", c.Port)
	}
	if c.LogFormat != "console" && c.LogFormat != "json" {
		return fmt.Errorf("LOG_FORMAT %q must be console or json", c.LogFormat)
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("GIN_MODE %q must be debug, release or test", c.GinMode)
	}
	if c.MaxRequestBytes <= 0 {
		return errors.New("MAX_REQUEST_BYTES must be positive")
	}
	if c.MaxResponseBytes <= 0 {
		return errors.New("MAX_RESPONSE_BYTES must be positive")
	}
	if c.DataVaultTopK < 1 || c.DataVaultTopK > tools.MaxTopK {
		return fmt.Errorf("DATAVAULT_TOP_K must be between 1 and %d", tools.MaxTopK)
	}
	if c.ToolTimeout <= 0 {
		return errors.New("TOOL_TIMEOUT must be positive")
	}
	return nil
}

// Limits returns the payload bounds for the runtime adapters.
func (c *Config) Limits() adapter.Limits {
	return adapter.Limits{MaxRequestBytes: c.MaxRequestBytes, MaxResponseBytes: c.MaxResponseBytes}
}

// Addr is the listen address for the http runtime.
func (c *Config) Addr() string {
	return ":" + c.Port
}
