package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Geocoder GeocoderConfig `mapstructure:"geocoder"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
}

// DatabaseConfig holds Postgres connection configuration.
type DatabaseConfig struct {
	URL             string        `mapstructure:"url"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// GeocoderConfig holds outbound geocoding provider configuration.
// The API key is opaque credential material and must never be logged.
type GeocoderConfig struct {
	BaseURL           string        `mapstructure:"base_url"`
	APIKey            string        `mapstructure:"api_key"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
}

// CacheConfig selects the coordinate cache backend and its persist policy.
type CacheConfig struct {
	// Backend is "postgres" or "redis".
	Backend   string `mapstructure:"backend"`
	RedisAddr string `mapstructure:"redis_addr"`
	RedisDB   int    `mapstructure:"redis_db"`
	// Policy is "keep" (entries immutable once created) or "replace"
	// (re-resolution may upgrade a failed entry).
	Policy string `mapstructure:"policy"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from an optional yaml file and environment
// variables (prefix ORDER_SERVICE). Callers load .env themselves.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// Nested keys flatten to underscores so ORDER_SERVICE_SERVER_PORT etc.
	// are settable from a shell.
	v.SetEnvPrefix("ORDER_SERVICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvVars(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		// No config file: defaults and env vars only.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.conn_max_lifetime", 30*time.Minute)

	v.SetDefault("geocoder.base_url", "https://geocode-maps.yandex.ru/1.x")
	v.SetDefault("geocoder.timeout", 5*time.Second)
	v.SetDefault("geocoder.requests_per_second", 5.0)

	v.SetDefault("cache.backend", "postgres")
	v.SetDefault("cache.redis_addr", "localhost:6379")
	v.SetDefault("cache.redis_db", 0)
	v.SetDefault("cache.policy", "keep")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// bindEnvVars maps nested keys to flat environment variables so that
// ORDER_SERVICE_DATABASE_URL etc. override the file values.
func bindEnvVars(v *viper.Viper) {
	keys := []string{
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		"server.allowed_origins",
		"database.url",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"geocoder.base_url",
		"geocoder.api_key",
		"geocoder.timeout",
		"geocoder.requests_per_second",
		"cache.backend",
		"cache.redis_addr",
		"cache.redis_db",
		"cache.policy",
		"logging.level",
		"logging.format",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}

	// Conventional names used in deployment environments.
	_ = v.BindEnv("database.url", "DATABASE_URL")
	_ = v.BindEnv("geocoder.api_key", "GEOCODER_API_KEY")
}
