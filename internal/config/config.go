package config

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	go_ora "github.com/sijms/go-ora/v2"
	"github.com/spf13/viper"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
	DriverOracle   = "oracle"
)

type Config struct {
	DB      DBConfig
	Server  ServerConfig
	Redis   RedisConfig
	Logger  LoggerConfig
	Catalog CatalogConfig
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

// DBConfig describes one of the supported SQL backends. Path is only used by sqlite3.
type DBConfig struct {
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	Path     string
	SSLMode  string
}

type ServerConfig struct {
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Env   string
	Level string
}

type CatalogConfig struct {
	PageSize         int
	CategoryCacheTTL time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "10s")
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("db.driver", DriverSQLite)
	v.SetDefault("db.path", "trivia.db")
	v.SetDefault("db.sslmode", "disable")

	v.SetDefault("redis.address", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("logger.env", "development")
	v.SetDefault("logger.level", "info")

	v.SetDefault("catalog.page_size", 10)
	v.SetDefault("catalog.category_cache_ttl", "5m")
}

// LoadConfig reads config.yaml from the given search paths (or . and ./configs)
// and applies TRIVIA_* environment overrides, e.g. TRIVIA_DB_DRIVER.
func LoadConfig(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if len(paths) == 0 {
		paths = []string{".", "./configs"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix("TRIVIA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		DB: DBConfig{
			Driver:   v.GetString("db.driver"),
			Host:     v.GetString("db.host"),
			Port:     v.GetInt("db.port"),
			User:     v.GetString("db.user"),
			Password: v.GetString("db.password"),
			DBName:   v.GetString("db.name"),
			Path:     v.GetString("db.path"),
			SSLMode:  v.GetString("db.sslmode"),
		},
		Server: ServerConfig{
			Port:            v.GetInt("server.port"),
			ReadTimeout:     v.GetDuration("server.read_timeout"),
			WriteTimeout:    v.GetDuration("server.write_timeout"),
			ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		},
		Redis: RedisConfig{
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Logger: LoggerConfig{
			Env:   v.GetString("logger.env"),
			Level: v.GetString("logger.level"),
		},
		Catalog: CatalogConfig{
			PageSize:         v.GetInt("catalog.page_size"),
			CategoryCacheTTL: v.GetDuration("catalog.category_cache_ttl"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the service cannot start with.
func (c *Config) Validate() error {
	switch c.DB.Driver {
	case DriverSQLite:
		if c.DB.Path == "" {
			return fmt.Errorf("db.path is required for driver %q", c.DB.Driver)
		}
	case DriverPostgres, DriverOracle:
		if c.DB.Host == "" || c.DB.DBName == "" {
			return fmt.Errorf("db.host and db.name are required for driver %q", c.DB.Driver)
		}
	default:
		return fmt.Errorf("unsupported db.driver %q", c.DB.Driver)
	}
	if c.Catalog.PageSize < 1 {
		return fmt.Errorf("catalog.page_size must be positive, got %d", c.Catalog.PageSize)
	}
	return nil
}

// GetDSN builds the data source name for the configured driver.
func (c *Config) GetDSN() string {
	switch c.DB.Driver {
	case DriverPostgres:
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(c.DB.User, c.DB.Password),
			Host:     fmt.Sprintf("%s:%d", c.DB.Host, c.portOr(5432)),
			Path:     c.DB.DBName,
			RawQuery: "sslmode=" + c.DB.SSLMode,
		}
		return u.String()
	case DriverOracle:
		return go_ora.BuildUrl(c.DB.Host, c.portOr(1521), c.DB.DBName, c.DB.User, c.DB.Password, nil)
	default:
		return c.DB.Path
	}
}

// MigrationURL is the golang-migrate database URL for drivers that golang-migrate supports.
func (c *Config) MigrationURL() (string, error) {
	switch c.DB.Driver {
	case DriverSQLite:
		return "sqlite3://" + filepath.ToSlash(c.DB.Path), nil
	case DriverPostgres:
		return strings.Replace(c.GetDSN(), "postgres://", "pgx5://", 1), nil
	default:
		return "", fmt.Errorf("driver %q has no golang-migrate url", c.DB.Driver)
	}
}

func (c *Config) portOr(def int) int {
	if c.DB.Port == 0 {
		return def
	}
	return c.DB.Port
}
