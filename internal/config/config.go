package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all process-wide settings. It is built once in main and passed
// by reference into the components that need it; nothing mutates it afterwards.
type Config struct {
	Port    string        `mapstructure:"port"`
	DB      DBConfig      `mapstructure:"db"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Friends FriendsConfig `mapstructure:"friends"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type AuthConfig struct {
	Secret        string `mapstructure:"secret"`
	TokenTimeoutS int    `mapstructure:"token_timeout_s"`
}

// TokenTimeout returns the session token lifetime as a duration.
func (a AuthConfig) TokenTimeout() time.Duration {
	return time.Duration(a.TokenTimeoutS) * time.Second
}

type FriendsConfig struct {
	InviteTTLS int `mapstructure:"invite_ttl_s"`
}

// InviteTTL returns the friend-invite token lifetime as a duration.
func (f FriendsConfig) InviteTTL() time.Duration {
	return time.Duration(f.InviteTTLS) * time.Second
}

const (
	defaultPort          = "8080"
	defaultDBPath        = "wishlink.db"
	defaultRedisAddr     = "localhost:6379"
	defaultTokenTimeoutS = 3600
	defaultInviteTTLS    = 600
)

// Load reads configs/config.yml and returns the populated Config.
// The signing secret may be supplied via WISHLINK_AUTH_SECRET instead of the
// file, so it can stay out of version control.
func Load() (*Config, error) {
	v := viper.New()
	v.AddConfigPath("configs") // configs/config.yml
	v.SetConfigName("config")

	v.SetDefault("port", defaultPort)
	v.SetDefault("db.path", defaultDBPath)
	v.SetDefault("redis.addr", defaultRedisAddr)
	v.SetDefault("auth.token_timeout_s", defaultTokenTimeoutS)
	v.SetDefault("friends.invite_ttl_s", defaultInviteTTLS)

	if err := v.BindEnv("auth.secret", "WISHLINK_AUTH_SECRET"); err != nil {
		return nil, fmt.Errorf("bind auth secret env: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.Auth.Secret == "" {
		return nil, fmt.Errorf("auth.secret is required (or set WISHLINK_AUTH_SECRET)")
	}
	if cfg.Auth.TokenTimeoutS <= 0 {
		return nil, fmt.Errorf("auth.token_timeout_s must be positive, got %d", cfg.Auth.TokenTimeoutS)
	}
	if cfg.Friends.InviteTTLS <= 0 {
		return nil, fmt.Errorf("friends.invite_ttl_s must be positive, got %d", cfg.Friends.InviteTTLS)
	}

	return &cfg, nil
}
