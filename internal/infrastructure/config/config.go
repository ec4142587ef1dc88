package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/remaimber-it/quizbank/internal/domain/exam"
)

type Config struct {
	ServerAddress   string        `mapstructure:"server_address"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	Database  DatabaseConfig  `mapstructure:"database"`
	Exam      ExamConfig      `mapstructure:"exam"`
	Log       LogConfig       `mapstructure:"log"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"` // "sqlite" or "mysql"
	Path   string `mapstructure:"path"`   // sqlite file
	DSN    string `mapstructure:"dsn"`    // mysql dsn
}

// ExamConfig is the exam generation policy. It is the only section that
// is hot reloaded.
type ExamConfig struct {
	DefaultCount  int               `mapstructure:"default_count"`
	PoolSize      int               `mapstructure:"pool_size"`
	Distribution  exam.Distribution `mapstructure:"distribution"`
	HistoryLimit  int               `mapstructure:"history_limit"`
	LookupWorkers int               `mapstructure:"lookup_workers"`
	PendingTTL    time.Duration     `mapstructure:"pending_ttl"`
}

func (c ExamConfig) Policy() exam.Config {
	return exam.Config{
		DefaultCount: c.DefaultCount,
		PoolSize:     c.PoolSize,
		Distribution: c.Distribution,
	}
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"` // empty disables the rotated file output
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	ServiceName       string `mapstructure:"service_name"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"` // 0 disables limiting
	Burst             int     `mapstructure:"burst"`
	// proxies whose X-Forwarded-For is honored, as CIDRs or addresses
	TrustedProxies []string `mapstructure:"trusted_proxies"`
}

// Loader reads the configuration from .env, an optional config.yaml in
// dir and QUIZ_* environment variables, in increasing precedence.
type Loader struct {
	v *viper.Viper
}

func NewLoader(dir string) *Loader {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if dir != "" {
		v.AddConfigPath(dir)
	}

	v.SetEnvPrefix("QUIZ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// unprefixed names from the .env layout
	_ = v.BindEnv("server_address", "QUIZ_SERVER_ADDRESS", "SERVER_ADDRESS")
	_ = v.BindEnv("shutdown_timeout", "QUIZ_SHUTDOWN_TIMEOUT", "SHUTDOWN_TIMEOUT")

	return &Loader{v: v}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server_address", ":8080")
	v.SetDefault("shutdown_timeout", 10*time.Second)

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "quizbank.db")
	v.SetDefault("database.dsn", "")

	d := exam.DefaultDistribution()
	v.SetDefault("exam.default_count", exam.DefaultQuestionCount)
	v.SetDefault("exam.pool_size", exam.DefaultPoolSize)
	v.SetDefault("exam.distribution.easy", d.Easy)
	v.SetDefault("exam.distribution.medium", d.Medium)
	v.SetDefault("exam.distribution.hard", d.Hard)
	v.SetDefault("exam.history_limit", 20)
	v.SetDefault("exam.lookup_workers", 4)
	v.SetDefault("exam.pending_ttl", 2*time.Hour)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "logs/quizbank.log")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 30)
	v.SetDefault("log.compress", true)

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.service_name", "quizbank")
	v.SetDefault("tracing.collector_endpoint", "http://localhost:14268/api/traces")

	v.SetDefault("cors.allowed_origins", []string{"*"})

	v.SetDefault("rate_limit.requests_per_second", 20.0)
	v.SetDefault("rate_limit.burst", 40)
	v.SetDefault("rate_limit.trusted_proxies", []string{})
}

// Load reads and validates the configuration. A missing config.yaml is not
// an error.
func (l *Loader) Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}
	return l.decode()
}

func (l *Loader) decode() (*Config, error) {
	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Watch calls onChange with the new configuration every time the config
// file changes, and onError when the changed file is invalid. It returns
// false when no config file was loaded.
func (l *Loader) Watch(onChange func(*Config), onError func(error)) bool {
	if l.v.ConfigFileUsed() == "" {
		return false
	}
	l.v.OnConfigChange(func(fsnotify.Event) {
		cfg, err := l.decode()
		if err != nil {
			onError(err)
			return
		}
		onChange(cfg)
	})
	l.v.WatchConfig()
	return true
}

func (c *Config) Validate() error {
	var errs []error
	if c.ServerAddress == "" {
		errs = append(errs, errors.New("server_address is required"))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("shutdown_timeout must be positive, got %s", c.ShutdownTimeout))
	}
	switch c.Database.Driver {
	case "sqlite":
		if c.Database.Path == "" {
			errs = append(errs, errors.New("database.path is required for sqlite"))
		}
	case "mysql":
		if c.Database.DSN == "" {
			errs = append(errs, errors.New("database.dsn is required for mysql"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown database.driver %q", c.Database.Driver))
	}
	if err := c.Exam.Policy().Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Exam.HistoryLimit <= 0 {
		errs = append(errs, fmt.Errorf("exam.history_limit must be positive, got %d", c.Exam.HistoryLimit))
	}
	if c.RateLimit.RequestsPerSecond < 0 {
		errs = append(errs, errors.New("rate_limit.requests_per_second must not be negative"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
