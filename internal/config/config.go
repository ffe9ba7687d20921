// Package config handles configuration loading for the eudrctl CLI.
//
// Configuration is loaded from a YAML file with support for environment
// variable expansion (${VAR} or $VAR syntax), so credentials can be
// injected at runtime, or entirely from EUDR_* environment variables
// (with an optional .env file for development).
//
// # Example Configuration
//
//	client:
//	  webServiceClientId: eudr-test
//	  username: ${EUDR_USERNAME}
//	  password: ${EUDR_PASSWORD}
//	  versions:
//	    submission: v2
//
//	transport:
//	  timeout: 30s
//	  retry:
//	    maxRetries: 3
//	    initialBackoff: 500ms
//
//	logging:
//	  level: info
//
// See [Load] for file loading and [FromEnv] for the environment path.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/mfrntic/eudr-api-client-sub001/pkg/endpoint"
)

// Config is the root configuration structure.
type Config struct {
	Client    ClientConfig    `yaml:"client"`
	Transport TransportConfig `yaml:"transport"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ClientConfig holds credentials and endpoint selection.
type ClientConfig struct {
	WebServiceClientID string `yaml:"webServiceClientId"`
	Username           string `yaml:"username"`
	Password           string `yaml:"password"`

	// Endpoints are explicit per-service URLs for custom deployments;
	// when set they override generation from webServiceClientId.
	Endpoints EndpointOverrides `yaml:"endpoints"`

	// Versions selects the API version per service.
	Versions VersionSelection `yaml:"versions"`
}

// EndpointOverrides holds per-service endpoint URLs.
type EndpointOverrides struct {
	Echo       string `yaml:"echo"`
	Retrieval  string `yaml:"retrieval"`
	Submission string `yaml:"submission"`
}

// VersionSelection holds per-service API versions.
type VersionSelection struct {
	Echo       string `yaml:"echo"`
	Retrieval  string `yaml:"retrieval"`
	Submission string `yaml:"submission"`
}

// TransportConfig holds HTTP transport settings.
type TransportConfig struct {
	Timeout time.Duration `yaml:"timeout"`
	Retry   RetryConfig   `yaml:"retry"`
}

// RetryConfig holds retry tuning.
type RetryConfig struct {
	MaxRetries     int           `yaml:"maxRetries"`
	InitialBackoff time.Duration `yaml:"initialBackoff"`
	MaxBackoff     time.Duration `yaml:"maxBackoff"`
	Multiplier     float64       `yaml:"multiplier"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// envConfig is the flat environment variable surface.
type envConfig struct {
	WebServiceClientID string        `env:"EUDR_WEB_SERVICE_CLIENT_ID"`
	Username           string        `env:"EUDR_USERNAME"`
	Password           string        `env:"EUDR_PASSWORD"`
	EchoEndpoint       string        `env:"EUDR_ECHO_ENDPOINT"`
	RetrievalEndpoint  string        `env:"EUDR_RETRIEVAL_ENDPOINT"`
	SubmissionEndpoint string        `env:"EUDR_SUBMISSION_ENDPOINT"`
	SubmissionVersion  string        `env:"EUDR_SUBMISSION_VERSION"`
	Timeout            time.Duration `env:"EUDR_TIMEOUT" envDefault:"30s"`
	LogLevel           string        `env:"EUDR_LOG_LEVEL" envDefault:"warn"`
}

// Load reads configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// FromEnv builds configuration from EUDR_* environment variables. A .env
// file in the working directory is loaded first when present.
func FromEnv() (*Config, error) {
	// Missing .env is fine; the explicit environment still applies.
	_ = godotenv.Load()

	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	cfg := &Config{
		Client: ClientConfig{
			WebServiceClientID: ec.WebServiceClientID,
			Username:           ec.Username,
			Password:           ec.Password,
			Endpoints: EndpointOverrides{
				Echo:       ec.EchoEndpoint,
				Retrieval:  ec.RetrievalEndpoint,
				Submission: ec.SubmissionEndpoint,
			},
			Versions: VersionSelection{
				Submission: ec.SubmissionVersion,
			},
		},
		Transport: TransportConfig{Timeout: ec.Timeout},
		Logging:   LoggingConfig{Level: ec.LogLevel},
	}
	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Transport.Timeout == 0 {
		c.Transport.Timeout = 30 * time.Second
	}
	if c.Transport.Retry.MaxRetries == 0 {
		c.Transport.Retry.MaxRetries = 3
	}
	if c.Transport.Retry.InitialBackoff == 0 {
		c.Transport.Retry.InitialBackoff = 500 * time.Millisecond
	}
	if c.Transport.Retry.MaxBackoff == 0 {
		c.Transport.Retry.MaxBackoff = 10 * time.Second
	}
	if c.Transport.Retry.Multiplier == 0 {
		c.Transport.Retry.Multiplier = 2.0
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "warn"
	}
	if c.Client.Versions.Submission == "" {
		c.Client.Versions.Submission = endpoint.VersionV2
	}
}

func (c *Config) validate() error {
	if c.Client.Username == "" {
		return fmt.Errorf("client.username is required")
	}
	if c.Client.Password == "" {
		return fmt.Errorf("client.password is required")
	}

	hasAllEndpoints := c.Client.Endpoints.Echo != "" &&
		c.Client.Endpoints.Retrieval != "" &&
		c.Client.Endpoints.Submission != ""
	if c.Client.WebServiceClientID == "" && !hasAllEndpoints {
		return fmt.Errorf("client.webServiceClientId is required unless every service endpoint is set explicitly")
	}

	return nil
}
