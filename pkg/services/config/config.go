package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	JWTSecret       string        `mapstructure:"jwt_secret"`
	TokenTTL        time.Duration `mapstructure:"token_ttl"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	// CredentialSeedFile optionally points at an ini file of key pairs to
	// pre-connect at startup (development convenience).
	CredentialSeedFile string `mapstructure:"credential_seed_file"`
}

// Load reads settings from an optional config file plus CLOUDOPS_* env vars;
// env wins. Pass an empty path to skip the file.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", "3000")
	v.SetDefault("token_ttl", 7*24*time.Hour)
	v.SetDefault("shutdown_timeout", 10*time.Second)

	v.SetEnvPrefix("CLOUDOPS")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt_secret is required (set CLOUDOPS_JWT_SECRET)")
	}

	return &cfg, nil
}
