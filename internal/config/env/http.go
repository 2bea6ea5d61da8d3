package env

import (
	"fmt"
	"os"
	"strings"
	"time"

	"rabbits_den/internal/config"
)

const (
	httpAddressEnvName      = "HTTP_ADDRESS"
	httpReadTimeoutEnvName  = "HTTP_READ_TIMEOUT"
	httpWriteTimeoutEnvName = "HTTP_WRITE_TIMEOUT"
	corsOriginsEnvName      = "CORS_ALLOWED_ORIGINS"

	defaultHTTPAddress  = ":8080"
	defaultReadTimeout  = 10 * time.Second
	defaultWriteTimeout = 10 * time.Second
)

type httpConfig struct {
	address      string
	readTimeout  time.Duration
	writeTimeout time.Duration
	origins      []string
}

func NewHTTPConfig() (config.HTTPConfig, error) {
	cfg := &httpConfig{
		address:      os.Getenv(httpAddressEnvName),
		readTimeout:  defaultReadTimeout,
		writeTimeout: defaultWriteTimeout,
		origins:      []string{"http://localhost:3000"},
	}
	if cfg.address == "" {
		cfg.address = defaultHTTPAddress
	}

	var err error
	if v := os.Getenv(httpReadTimeoutEnvName); v != "" {
		if cfg.readTimeout, err = time.ParseDuration(v); err != nil {
			return nil, fmt.Errorf("invalid http read timeout: %w", err)
		}
	}
	if v := os.Getenv(httpWriteTimeoutEnvName); v != "" {
		if cfg.writeTimeout, err = time.ParseDuration(v); err != nil {
			return nil, fmt.Errorf("invalid http write timeout: %w", err)
		}
	}
	if v := os.Getenv(corsOriginsEnvName); v != "" {
		cfg.origins = strings.Split(v, ",")
	}

	return cfg, nil
}

func (c *httpConfig) Address() string { return c.address }

func (c *httpConfig) ReadTimeout() time.Duration { return c.readTimeout }

func (c *httpConfig) WriteTimeout() time.Duration { return c.writeTimeout }

func (c *httpConfig) AllowedOrigins() []string { return c.origins }
