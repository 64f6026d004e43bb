package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/example/resy-client/internal/resy"
)

const envPrefix = "RESY"

// Config is read from RESY_* environment variables, e.g. RESY_API_KEY.
type Config struct {
	APIKey    string `envconfig:"API_KEY"`
	AuthToken string `envconfig:"AUTH_TOKEN"`

	BaseURL   string        `envconfig:"BASE_URL" default:"https://api.resy.com"`
	Location  string        `envconfig:"LOCATION" default:"new-york-ny"`
	Latitude  float64       `envconfig:"LATITUDE" default:"0"`
	Longitude float64       `envconfig:"LONGITUDE" default:"0"`
	Timeout   time.Duration `envconfig:"TIMEOUT" default:"3s"`

	// profile store; only needed by --profile and the profile commands
	DatabaseURL string `envconfig:"DATABASE_URL"`
	CredEncKey  B64Key `envconfig:"CRED_ENC_KEY"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogPretty bool   `envconfig:"LOG_PRETTY" default:"false"`
	Debug     bool   `envconfig:"DEBUG" default:"false"`
}

func FromEnv() (Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if cfg.Timeout <= 0 {
		return Config{}, fmt.Errorf("invalid %s_TIMEOUT", envPrefix)
	}
	if len(cfg.CredEncKey) != 0 && len(cfg.CredEncKey) != 32 {
		return Config{}, fmt.Errorf("%s_CRED_ENC_KEY must decode to 32 bytes (got %d)", envPrefix, len(cfg.CredEncKey))
	}
	return cfg, nil
}

func (c Config) Credentials() resy.Credentials {
	return resy.Credentials{APIKey: c.APIKey, AuthToken: c.AuthToken}
}

func (c Config) HasCredentials() bool {
	return c.APIKey != "" && c.AuthToken != ""
}

// GatewayOptions maps the config onto resy.New options.
func (c Config) GatewayOptions() []resy.Option {
	return []resy.Option{
		resy.WithBaseURL(c.BaseURL),
		resy.WithLocation(c.Location),
		resy.WithCoordinates(c.Latitude, c.Longitude),
		resy.WithTimeout(c.Timeout),
		resy.WithDebugLogging(c.Debug),
	}
}

// B64Key is a base64 value, or a path to a file holding one (k8s secret mounts).
type B64Key []byte

func (k *B64Key) Decode(value string) error {
	b, err := decodeB64(value)
	if err != nil {
		return err
	}
	*k = b
	return nil
}

func decodeB64(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if b, err := os.ReadFile(s); err == nil {
		s = strings.TrimSpace(string(b))
	}
	if b, err := base64.StdEncoding.DecodeString(s); err == nil {
		return b, nil
	}
	b, err := base64.RawStdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("not valid base64: %w", err)
	}
	return b, nil
}
