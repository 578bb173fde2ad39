package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	v *viper.Viper
}

// New creates a new configuration instance
func New() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/mail-topology/")
	v.AddConfigPath("$HOME/.mail-topology")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	// Set defaults
	setDefaults(v)

	// Environment variables
	v.AutomaticEnv()
	v.SetEnvPrefix("MAIL_TOPOLOGY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, using defaults
	}

	return &Config{v: v}, nil
}

// NewFromFile creates a configuration instance from an explicit config file path
func NewFromFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Set defaults
	setDefaults(v)

	// Environment variables
	v.AutomaticEnv()
	v.SetEnvPrefix("MAIL_TOPOLOGY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// An explicitly named file must exist
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return &Config{v: v}, nil
}

// NewFromViper creates a new configuration instance from an existing Viper instance
func NewFromViper(v *viper.Viper) *Config {
	return &Config{v: v}
}

// NewEmptyViper creates a new Viper instance with defaults
func NewEmptyViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// Message source defaults
	v.SetDefault("source.type", "mbox")
	v.SetDefault("source.mbox_path", "mail.mbox")

	// Extractor defaults
	v.SetDefault("extractor.threshold", 1)
	v.SetDefault("extractor.ignored_domains", []string{})
	v.SetDefault("extractor.ignored_addresses", []string{})

	// Feature defaults
	v.SetDefault("features.weekday_mode", "average")

	// Persistence engine defaults
	v.SetDefault("engine.type", "native")
	v.SetDefault("engine.max_dimension", 0)

	// Clustering defaults
	v.SetDefault("cluster.epsilon", 0.6)

	// Report defaults
	v.SetDefault("report.output_dir", ".")

	// Feature store defaults
	v.SetDefault("store.type", "memory")
	v.SetDefault("store.enabled", false)
	v.SetDefault("store.sqlite_path", "/data/sender_features.db")
	v.SetDefault("store.mysql_dsn", "user:password@tcp(localhost:3306)/mail_topology")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// GetString gets a string value from the configuration
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// GetInt gets an integer value from the configuration
func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

// GetFloat64 gets a float value from the configuration
func (c *Config) GetFloat64(key string) float64 {
	return c.v.GetFloat64(key)
}

// GetBool gets a boolean value from the configuration
func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

// GetStringSlice gets a string slice value from the configuration
func (c *Config) GetStringSlice(key string) []string {
	return c.v.GetStringSlice(key)
}

// GetViper returns the underlying viper instance
func (c *Config) GetViper() *viper.Viper {
	return c.v
}
