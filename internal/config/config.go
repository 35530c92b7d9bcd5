package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPath        = "config/config.yaml"
	DefaultUser        = "Lead Broker (Admin)"
	DefaultPort        = 8080
	DefaultNotifyTTL   = 3 * time.Second
	defaultEnvFilename = ".env"
)

type ServerConfig struct {
	Port int `yaml:"port"`
}

type DashboardConfig struct {
	DefaultUser  string `yaml:"default_user"`
	SeedDemoData bool   `yaml:"seed_demo_data"`
}

type WorkflowConfig struct {
	// EnforceTransitions rejects triggers fired from an unexpected status.
	EnforceTransitions bool          `yaml:"enforce_transitions"`
	SimulatedLatency   time.Duration `yaml:"simulated_latency"`
}

type NotificationsConfig struct {
	TTL time.Duration `yaml:"ttl"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Dashboard     DashboardConfig     `yaml:"dashboard"`
	Workflow      WorkflowConfig      `yaml:"workflow"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Log           LogConfig           `yaml:"log"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads the YAML file at path, then applies .env and environment
// overrides. A missing file is not an error: defaults are used instead.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(defaultEnvFilename); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", defaultEnvFilename, err)
	}

	cfg := &Config{}
	if path == "" {
		path = DefaultPath
	}
	f, err := os.Open(path)
	switch {
	case err == nil:
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// MustLoad is Load that panics on error.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if strings.TrimSpace(c.Dashboard.DefaultUser) == "" {
		c.Dashboard.DefaultUser = DefaultUser
	}
	if c.Notifications.TTL <= 0 {
		c.Notifications.TTL = DefaultNotifyTTL
	}
	if c.Workflow.SimulatedLatency < 0 {
		c.Workflow.SimulatedLatency = 0
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("LEADFLOW_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("LEADFLOW_PORT: %w", err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("LEADFLOW_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("LEADFLOW_DEFAULT_USER"); v != "" {
		c.Dashboard.DefaultUser = v
	}
	if v := os.Getenv("LEADFLOW_ENFORCE_TRANSITIONS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("LEADFLOW_ENFORCE_TRANSITIONS: %w", err)
		}
		c.Workflow.EnforceTransitions = b
	}
	if v := os.Getenv("LEADFLOW_SIMULATED_LATENCY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("LEADFLOW_SIMULATED_LATENCY: %w", err)
		}
		c.Workflow.SimulatedLatency = d
	}
	return nil
}
