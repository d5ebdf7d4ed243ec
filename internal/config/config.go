package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	CacheSQLite = "sqlite"
	CacheMemory = "memory"
	CacheRedis  = "redis"

	SourceStatic = "static"
	SourceRemote = "remote"
)

type Config struct {
	Remote   RemoteConfig   `yaml:"remote"`
	Cache    CacheConfig    `yaml:"cache"`
	Server   ServerConfig   `yaml:"server"`
	Redis    RedisConfig    `yaml:"redis"`
	Postgres PostgresConfig `yaml:"postgres"`
	Quiz     QuizConfig     `yaml:"quiz"`
}

type RemoteConfig struct {
	BaseURL string `yaml:"base_url" env:"QUIZ_SERVER_URL"`
	Timeout string `yaml:"timeout" env:"QUIZ_REMOTE_TIMEOUT"`
	Retries int    `yaml:"retries" env:"QUIZ_REMOTE_RETRIES"`
}

// CacheConfig selects the LocalCache backend: sqlite (default), memory or redis.
type CacheConfig struct {
	Driver string `yaml:"driver" env:"QUIZ_CACHE_DRIVER"`
	Path   string `yaml:"path" env:"QUIZ_CACHE_PATH"`
}

type ServerConfig struct {
	Port string `yaml:"port" env:"PORT"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB"`
}

type PostgresConfig struct {
	URL string `yaml:"url" env:"POSTGRES_URL"`
}

type QuizConfig struct {
	TotalQuestions int    `yaml:"total_questions" env:"QUIZ_TOTAL_QUESTIONS"`
	Source         string `yaml:"source" env:"QUIZ_SOURCE"`
	Set            string `yaml:"set" env:"QUIZ_SET"`
	TTL            string `yaml:"ttl" env:"QUIZ_TTL"`
}

// Default is used for anything neither the file nor the environment sets.
func Default() Config {
	return Config{
		Remote: RemoteConfig{
			BaseURL: "http://127.0.0.1:8080",
			Timeout: "5s",
			Retries: 2,
		},
		Cache: CacheConfig{
			Driver: CacheSQLite,
			Path:   "quizapp.db",
		},
		Server: ServerConfig{Port: "8080"},
		Quiz: QuizConfig{
			TotalQuestions: 3,
			Source:         SourceStatic,
			Set:            "demo",
			TTL:            "10m",
		},
	}
}

// Load reads YAML config from path and then applies environment overrides.
// A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, err
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Cache.Driver {
	case CacheSQLite, CacheMemory, CacheRedis:
	default:
		return fmt.Errorf("unknown cache driver %q", c.Cache.Driver)
	}
	if c.Cache.Driver == CacheRedis && c.Redis.Addr == "" {
		return fmt.Errorf("cache driver redis needs redis.addr")
	}
	switch c.Quiz.Source {
	case SourceStatic, SourceRemote:
	default:
		return fmt.Errorf("unknown question source %q", c.Quiz.Source)
	}
	if c.Quiz.TotalQuestions <= 0 {
		return fmt.Errorf("quiz.total_questions must be positive")
	}
	return nil
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
