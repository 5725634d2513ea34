package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Port      int           `mapstructure:"PORT" validate:"required,gt=0,lt=65536"`
	DBPath    string        `mapstructure:"DB_PATH" validate:"required"`
	SecretKey string        `mapstructure:"SECRET_KEY" validate:"required,min=32"`
	TZ        string        `mapstructure:"TZ" validate:"required"`
	LogLevel  string        `mapstructure:"LOG_LEVEL" validate:"required,oneof=debug info warn error"`
	TokenTTL  time.Duration `mapstructure:"TOKEN_TTL" validate:"gt=0"`
}

var configKeys = []string{"PORT", "DB_PATH", "SECRET_KEY", "TZ", "LOG_LEVEL", "TOKEN_TTL"}

// Placeholders shipped in example env files.
var insecureSecretKeys = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
}

// Load reads configuration from the environment and an optional .env file in
// the working directory. Environment variables win over the file.
func Load() (*Config, error) {
	return LoadFile(".env")
}

func LoadFile(envFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(envFile)
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("PORT", 8080)
	v.SetDefault("DB_PATH", "data/gravida.db")
	v.SetDefault("TZ", "UTC")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("TOKEN_TTL", "720h")
	for _, key := range configKeys {
		_ = v.BindEnv(key)
	}

	// A missing .env file is fine.
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	if _, insecure := insecureSecretKeys[strings.ToLower(cfg.SecretKey)]; insecure {
		return nil, fmt.Errorf("validate config: SECRET_KEY uses a placeholder value")
	}
	if _, err := cfg.Location(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func (c *Config) Location() (*time.Location, error) {
	location, err := time.LoadLocation(strings.TrimSpace(c.TZ))
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.TZ, err)
	}
	return location, nil
}

func (c *Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}
