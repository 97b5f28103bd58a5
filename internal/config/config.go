package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/speedwagon-io/ecomonitor/internal/generator"
	"github.com/speedwagon-io/ecomonitor/internal/threshold"
)

const (
	AdapterLog  = "log"
	AdapterNATS = "nats"

	defaultPath = "config/config.yaml"
)

type Config struct {
	Env        string          `yaml:"env" env:"ENV" env-default:"prod"`
	Log        LogConfig       `yaml:"log"`
	HTTP       HTTPConfig      `yaml:"http"`
	Health     HealthConfig    `yaml:"health"`
	Monitor    MonitorConfig   `yaml:"monitor"`
	Dashboard  DashboardConfig `yaml:"dashboard"`
	Thresholds threshold.Rule  `yaml:"thresholds"`
	Publisher  PublisherConfig `yaml:"publisher"`
	Stream     StreamConfig    `yaml:"stream"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

type HTTPConfig struct {
	Address         string        `yaml:"address" env:"HTTP_ADDRESS" env-default:":8081"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env-default:"5s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"10s"`
}

type HealthConfig struct {
	Address string `yaml:"address" env:"HEALTH_ADDRESS" env-default:":8080"`
}

type MonitorConfig struct {
	Source          string                `yaml:"source" env-default:"mock"`
	RefreshInterval time.Duration         `yaml:"refresh_interval" env:"REFRESH_INTERVAL" env-default:"5s"`
	StaleAfter      time.Duration         `yaml:"stale_after" env-default:"30s"`
	Parameters      []generator.Parameter `yaml:"parameters"`
}

type DashboardConfig struct {
	ClockInterval    time.Duration `yaml:"clock_interval" env-default:"1s"`
	ProgressInterval time.Duration `yaml:"progress_interval" env-default:"30ms"`
	StatusInterval   time.Duration `yaml:"status_interval" env-default:"800ms"`
}

type PublisherConfig struct {
	Adapter string     `yaml:"adapter" env:"PUBLISHER_ADAPTER" env-default:"log"`
	NATS    NATSConfig `yaml:"nats"`
}

type NATSConfig struct {
	URL     string        `yaml:"url" env:"NATS_URL" env-default:"nats://127.0.0.1:4222"`
	Subject string        `yaml:"subject" env:"NATS_SUBJECT" env-default:"ecomonitor.snapshots"`
	Timeout time.Duration `yaml:"timeout" env-default:"5s"`
	Retry   RetryConfig   `yaml:"retry"`
}

type RetryConfig struct {
	MaxAttempts  int           `yaml:"max_attempts" env-default:"3"`
	InitialDelay time.Duration `yaml:"initial_delay" env-default:"200ms"`
	MaxDelay     time.Duration `yaml:"max_delay" env-default:"2s"`
}

type StreamConfig struct {
	Buffer int `yaml:"buffer" env-default:"8"`
}

func MustLoad(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(err.Error())
	}
	return cfg
}

// Load reads the YAML file at configPath (falling back to CONFIG_PATH and
// then config/config.yaml), applies env overrides and defaults, and validates.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = os.Getenv("CONFIG_PATH")
	}

	if configPath == "" {
		configPath = defaultPath
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if len(cfg.Monitor.Parameters) == 0 {
		cfg.Monitor.Parameters = generator.DefaultParameters()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	for _, p := range c.Monitor.Parameters {
		if err := p.Validate(); err != nil {
			errs = append(errs, err)
		}
	}

	if err := c.Thresholds.Validate(); err != nil {
		errs = append(errs, err)
	}

	intervals := map[string]time.Duration{
		"monitor.refresh_interval":    c.Monitor.RefreshInterval,
		"dashboard.clock_interval":    c.Dashboard.ClockInterval,
		"dashboard.progress_interval": c.Dashboard.ProgressInterval,
		"dashboard.status_interval":   c.Dashboard.StatusInterval,
	}
	for name, d := range intervals {
		if d <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive", name))
		}
	}

	if c.Monitor.Source != "mock" {
		errs = append(errs, fmt.Errorf("unknown monitor source %q", c.Monitor.Source))
	}

	switch c.Publisher.Adapter {
	case AdapterLog:
	case AdapterNATS:
		if c.Publisher.NATS.URL == "" || c.Publisher.NATS.Subject == "" {
			errs = append(errs, fmt.Errorf("publisher.nats.url and publisher.nats.subject are required"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown publisher adapter %q", c.Publisher.Adapter))
	}

	return errors.Join(errs...)
}
