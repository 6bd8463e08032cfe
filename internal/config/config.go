package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr               string        `yaml:"addr"`
	JWTSecret          string        `yaml:"jwt_secret"`
	APITimeout         time.Duration `yaml:"timeout"`
	DatabasePath       string        `yaml:"database_path"`
	TokenDuration      time.Duration `yaml:"token_duration"`
	WorkerCount        int           `yaml:"worker_count"`
	WebhookVerifyToken string        `yaml:"webhook_verify_token"`
}

func LoadConfig(path string) (*Config, error) {
	apiTimeout := 15 * time.Second
	tokenDuration := 1 * time.Hour

	cfg := &Config{
		Addr:               getEnv("HIRELOOP_ADDR", ":8080"),
		JWTSecret:          getEnv("HIRELOOP_JWT_SECRET", "supersecretkey"),
		APITimeout:         apiTimeout,
		DatabasePath:       getEnv("HIRELOOP_DATABASE_PATH", "hireloop.db"),
		TokenDuration:      tokenDuration,
		WorkerCount:        getEnvInt("HIRELOOP_WORKER_COUNT", 4),
		WebhookVerifyToken: getEnv("HIRELOOP_WEBHOOK_VERIFY_TOKEN", "changeme"),
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Validate rejects configurations that are unsafe to run outside development.
func (c *Config) Validate() error {
	env := getEnv("HIRELOOP_ENV", "")
	if c.JWTSecret == "" || (c.JWTSecret == "supersecretkey" && env != "development") {
		return errors.New("jwt_secret must be set to a non-default value outside development")
	}
	if c.Addr == "" {
		return errors.New("addr must not be empty")
	}
	if c.DatabasePath == "" {
		return errors.New("database_path must not be empty")
	}
	if c.TokenDuration <= 0 {
		return errors.New("token_duration must be positive")
	}
	if c.WorkerCount <= 0 {
		c.WorkerCount = 4
	}

	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}

	return def
}
