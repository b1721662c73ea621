package config

import (
	"encoding/json"
	"net/url"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"
)

const (
	// DefaultServiceURL is the address of the resume-builder backend.
	DefaultServiceURL = "https://core.tapmytalent.com/resumeBuilder-Dev"
	// DefaultRequestTimeout applies to every backend call except document
	// generation, which uses twice this value.
	DefaultRequestTimeout = 15 * time.Second
	// DefaultPollMaxAttempts bounds how many times a task status is sampled
	// before the poll gives up.
	DefaultPollMaxAttempts = 15
	// DefaultPollInterval is the fixed wait between two status samples.
	// Backend jobs finish within seconds, so no backoff is applied.
	DefaultPollInterval = 2 * time.Second
)

type Config struct {
	Service Service `json:"service"`
	Poll    Poll    `json:"poll,omitempty"`

	// LogLevel can be "debug", "info", "warn", "error". Anything else is
	// treated as "info".
	LogLevel string `json:"log-level,omitempty" envconfig:"RESUME_OPTIMIZER_LOG_LEVEL"`
}

// Service describes how to reach and authenticate against the backend.
type Service struct {
	Server  string   `json:"server" envconfig:"RESUME_OPTIMIZER_SERVER"`
	Token   string   `json:"token,omitempty" envconfig:"RESUME_OPTIMIZER_TOKEN"`
	Timeout Duration `json:"timeout,omitempty" envconfig:"RESUME_OPTIMIZER_TIMEOUT"`
}

type Poll struct {
	MaxAttempts int      `json:"max-attempts,omitempty" envconfig:"RESUME_OPTIMIZER_POLL_MAX_ATTEMPTS"`
	Interval    Duration `json:"interval,omitempty" envconfig:"RESUME_OPTIMIZER_POLL_INTERVAL"`
}

func NewDefault() *Config {
	return &Config{
		Service: Service{
			Server:  DefaultServiceURL,
			Timeout: Duration{DefaultRequestTimeout},
		},
		Poll: Poll{
			MaxAttempts: DefaultPollMaxAttempts,
			Interval:    Duration{DefaultPollInterval},
		},
		LogLevel: "info",
	}
}

// Load builds the effective configuration: defaults, then the optional yaml
// config file, then environment overrides.
func Load(cfgFile string) (*Config, error) {
	cfg := NewDefault()
	if cfgFile != "" {
		if err := cfg.ParseConfigFile(cfgFile); err != nil {
			return nil, err
		}
	}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, errors.Wrap(err, "processing environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseConfigFile reads the config file and unmarshals it into the Config struct.
func (cfg *Config) ParseConfigFile(cfgFile string) error {
	contents, err := os.ReadFile(cfgFile)
	if err != nil {
		return errors.Wrap(err, "failed to read config file")
	}
	if err := yaml.Unmarshal(contents, cfg); err != nil {
		return errors.Wrap(err, "failed to unmarshal config file")
	}
	return nil
}

func (cfg *Config) Validate() error {
	if cfg.Service.Server == "" {
		return errors.New("service.server is required")
	}
	if _, err := url.Parse(cfg.Service.Server); err != nil {
		return errors.Wrap(err, "service.server")
	}
	if cfg.Service.Timeout.Duration <= 0 {
		return errors.New("service.timeout must be positive")
	}
	if cfg.Poll.MaxAttempts <= 0 {
		return errors.New("poll.max-attempts must be positive")
	}
	if cfg.Poll.Interval.Duration <= 0 {
		return errors.New("poll.interval must be positive")
	}
	return nil
}

func (cfg *Config) String() string {
	redacted := *cfg
	if redacted.Service.Token != "" {
		redacted.Service.Token = "<redacted>"
	}
	contents, err := json.Marshal(&redacted)
	if err != nil {
		return "<error>"
	}
	return string(contents)
}
