package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Addr                string   `mapstructure:"addr"`
		Port                string   `mapstructure:"port"`
		Mode                string   `mapstructure:"mode"` // gin mode: debug, release, test
		AllowedOrigins      []string `mapstructure:"allowed_origins"`
		RequireSubscription bool     `mapstructure:"require_subscription"`
	} `mapstructure:"server"`

	Search struct {
		TargetCount   int    `mapstructure:"target_count"`
		PageSize      int    `mapstructure:"page_size"`
		DefaultListID string `mapstructure:"default_list_id"`
		ResultType    string `mapstructure:"result_type"`
	} `mapstructure:"search"`

	Twitter struct {
		BaseURL     string        `mapstructure:"base_url"`
		QueryID     string        `mapstructure:"query_id"`
		BearerToken string        `mapstructure:"bearer_token"`
		Timeout     time.Duration `mapstructure:"timeout"`
		RetryCount  int           `mapstructure:"retry_count"`
	} `mapstructure:"twitter"`

	Kit struct {
		BaseURL string        `mapstructure:"base_url"`
		Timeout time.Duration `mapstructure:"timeout"`
	} `mapstructure:"kit"`

	Syndication struct {
		BaseURL  string        `mapstructure:"base_url"`
		Timeout  time.Duration `mapstructure:"timeout"`
		CacheTTL time.Duration `mapstructure:"cache_ttl"`
	} `mapstructure:"syndication"`

	History struct {
		Driver string `mapstructure:"driver"` // none, sqlite, postgres
		DSN    string `mapstructure:"dsn"`
		Async  bool   `mapstructure:"async"`
	} `mapstructure:"history"`

	Redis struct {
		Address  string
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	}

	Worker struct {
		Concurrency int            `mapstructure:"concurrency"`
		Queues      map[string]int `mapstructure:"queues"`
	}

	Log struct {
		Level      string `mapstructure:"level"`
		Format     string `mapstructure:"format"` // text or json
		File       string `mapstructure:"file"`
		MaxSizeMB  int    `mapstructure:"max_size_mb"`
		MaxBackups int    `mapstructure:"max_backups"`
		MaxAgeDays int    `mapstructure:"max_age_days"`
	} `mapstructure:"log"`
}

const (
	keyTwitterAPIKey = "twitter.api_key"
	keyKitAPIKey     = "kit.api_key"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", "localhost")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("search.target_count", 50)
	v.SetDefault("search.page_size", 20)
	v.SetDefault("search.result_type", "top")

	v.SetDefault("twitter.base_url", "https://x.com/i/api/graphql")
	v.SetDefault("twitter.query_id", "nK1dw4oV3k4w5TdtcAdSww")
	v.SetDefault("twitter.bearer_token", "AAAAAAAAAAAAAAAAAAAAANRILgAAAAAAnNwIzUejRCOuH5E6I8xnZz4puTs%3D1Zv7ttfk8LF81IUq16cHjhLTvJu4FA33AGWWjCpTnA")
	v.SetDefault("twitter.timeout", 15*time.Second)
	v.SetDefault("twitter.retry_count", 2)

	v.SetDefault("kit.base_url", "https://api.kit.com")
	v.SetDefault("kit.timeout", 10*time.Second)

	v.SetDefault("syndication.base_url", "https://cdn.syndication.twimg.com")
	v.SetDefault("syndication.timeout", 10*time.Second)
	v.SetDefault("syndication.cache_ttl", 10*time.Minute)

	v.SetDefault("history.driver", "none")

	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("worker.concurrency", 2)
	v.SetDefault("worker.queues", map[string]int{"history": 1})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.max_size_mb", 50)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 14)
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("HOOKHUNTER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Secrets keep their conventional names and are read at call time, see TwitterAPIKey.
	viper.BindEnv(keyTwitterAPIKey, "TWITTER_API_KEY")
	viper.BindEnv(keyKitAPIKey, "KIT_API_KEY")

	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		// A missing config file is fine, defaults and env vars still apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

// TwitterAPIKey returns the upstream search credential as currently configured.
func TwitterAPIKey() string {
	return strings.TrimSpace(viper.GetString(keyTwitterAPIKey))
}

// KitAPIKey returns the newsletter credential as currently configured.
func KitAPIKey() string {
	return strings.TrimSpace(viper.GetString(keyKitAPIKey))
}

// ListenAddr joins the server address and port.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Addr, c.Server.Port)
}
