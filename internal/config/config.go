package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Supported store backends
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Supported notification channels
const (
	ChannelLog   = "log"
	ChannelGmail = "gmail"
)

const configFileBase = "volunteer_config"

// ErrNotFound is returned when a config file exists in no search location
var ErrNotFound = errors.New("not found in current directory or home directory")

// StoreConfig selects and configures the key-value backend
type StoreConfig struct {
	Backend     string `yaml:"backend" validate:"required,oneof=memory file sqlite postgres redis"`
	FilePath    string `yaml:"filePath,omitempty" validate:"required_if=Backend file"`
	SQLitePath  string `yaml:"sqlitePath,omitempty" validate:"required_if=Backend sqlite"`
	PostgresURL string `yaml:"postgresURL,omitempty" validate:"required_if=Backend postgres"`
	RedisURL    string `yaml:"redisURL,omitempty" validate:"required_if=Backend redis"`
	RedisPrefix string `yaml:"redisPrefix,omitempty"`
}

// SeedConfig controls the default manager and sample events written at startup
type SeedConfig struct {
	Enabled         bool   `yaml:"enabled"`
	ManagerPassword string `yaml:"managerPassword,omitempty" validate:"required_if=Enabled true"`
}

// NotificationsConfig selects how applicants hear about status changes
type NotificationsConfig struct {
	Channel     string `yaml:"channel" validate:"required,oneof=log gmail"`
	GmailSender string `yaml:"gmailSender,omitempty" validate:"required_if=Channel gmail,omitempty,email"`
	GmailUserID string `yaml:"gmailUserID,omitempty"`
}

// Config represents the application configuration
type Config struct {
	Store         StoreConfig         `yaml:"store"`
	Timezone      string              `yaml:"timezone,omitempty"`
	Seed          SeedConfig          `yaml:"seed"`
	Notifications NotificationsConfig `yaml:"notifications"`
	LogsDir       string              `yaml:"logsDir,omitempty" validate:"required"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Default returns the configuration used for any field a config file leaves out
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Backend:  BackendFile,
			FilePath: "volunteer_data.json",
		},
		Seed: SeedConfig{
			Enabled:         true,
			ManagerPassword: "123456",
		},
		Notifications: NotificationsConfig{
			Channel:     ChannelLog,
			GmailUserID: "me",
		},
		LogsDir: "logs",
	}
}

// Location returns the configured timezone, the machine's local zone when unset
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Load loads and validates the configuration from volunteer_config.yaml
func Load() (*Config, error) {
	return LoadWithEnv("")
}

// LoadWithEnv loads and validates the configuration for an environment
// For example, env="test" looks for "volunteer_config.test.yaml" before "volunteer_config.yaml"
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
// Fields missing from the file keep their Default values
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration struct and checks the timezone name
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if _, err := cfg.Location(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// candidateFileNames lists the config file names to try, most specific first
func candidateFileNames(env string) []string {
	names := []string{}
	if env != "" {
		names = append(names, configFileBase+"."+env+".yaml")
	}
	return append(names, configFileBase+".yaml")
}

// findConfigFile searches for the config file in current directory and home directory
func findConfigFile(env string) (string, error) {
	return findInSearchPath(candidateFileNames(env)...)
}

// findInSearchPath returns the first of names found in the current directory,
// then the home directory, trying each name in order
func findInSearchPath(names ...string) (string, error) {
	homeDir, homeErr := os.UserHomeDir()

	for _, name := range names {
		if _, err := os.Stat(name); err == nil {
			return name, nil
		}

		if homeErr != nil {
			continue
		}
		homePath := filepath.Join(homeDir, name)
		if _, err := os.Stat(homePath); err == nil {
			return homePath, nil
		}
	}

	if homeErr != nil {
		return "", fmt.Errorf("failed to get home directory: %w", homeErr)
	}
	return "", ErrNotFound
}
