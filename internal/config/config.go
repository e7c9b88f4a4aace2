// Package config loads runtime configuration from YAML files and
// environment variables using viper. Files are optional; every setting
// has a default or an environment override so the CLI works out of the
// box with nothing but GOOGLE_API_KEY set.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the root configuration for the roofline CLI and server.
type Config struct {
	Google  GoogleConfig  `mapstructure:"google"`
	Server  ServerConfig  `mapstructure:"server"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Log     LogConfig     `mapstructure:"log"`
	Output  OutputConfig  `mapstructure:"output"`
}

// GoogleConfig holds credentials and timeouts for the Google Solar and
// Maps APIs. MapsKey falls back to APIKey when empty.
type GoogleConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	MapsKey string        `mapstructure:"maps_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// ServerConfig holds HTTP server settings for the serve command.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// RedisConfig holds the optional response cache settings. When Enabled
// is false the engine runs with an in-process no-op cache.
type RedisConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Host     string        `mapstructure:"host"`
	Port     int           `mapstructure:"port"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	PoolSize int           `mapstructure:"pool_size"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// CatalogConfig points at the price and yield catalog file. An empty
// Path means the per-user default under ~/.roofline.
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig controls log verbosity and encoding.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// OutputConfig controls where generated reports are written.
type OutputConfig struct {
	Dir string `mapstructure:"dir"`
}

// Addr returns the listen address for the HTTP server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

// Addr returns the host:port pair for the Redis connection.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// Load reads config.yaml from ./configs or the working directory,
// applies environment overrides and returns the merged configuration.
// A missing config file is not an error.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	bindEnvVariables(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.Google.MapsKey == "" {
		cfg.Google.MapsKey = cfg.Google.APIKey
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("google.timeout", 30*time.Second)

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.ttl", 24*time.Hour)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("output.dir", "reports")
}

func bindEnvVariables(v *viper.Viper) {
	// Google APIs
	v.BindEnv("google.api_key", "GOOGLE_API_KEY")
	v.BindEnv("google.maps_key", "GOOGLE_MAPS_KEY")

	// Server
	v.BindEnv("server.port", "SERVER_PORT")
	v.BindEnv("server.mode", "SERVER_MODE")

	// Redis
	v.BindEnv("redis.enabled", "REDIS_ENABLED")
	v.BindEnv("redis.host", "REDIS_HOST")
	v.BindEnv("redis.port", "REDIS_PORT")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("redis.db", "REDIS_DB")

	// Misc
	v.BindEnv("catalog.path", "CATALOG_PATH")
	v.BindEnv("log.level", "LOG_LEVEL")
	v.BindEnv("log.format", "LOG_FORMAT")
	v.BindEnv("output.dir", "OUTPUT_DIR")
}
