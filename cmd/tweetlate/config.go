package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ZaguanLabs/tweetlate"
	"github.com/ZaguanLabs/tweetlate/feed"
	"github.com/ZaguanLabs/tweetlate/store"
	"github.com/ZaguanLabs/tweetlate/translate"
)

type config struct {
	Listen         string        `mapstructure:"listen"`
	StaleThreshold time.Duration `mapstructure:"stale_threshold"`
	MaxAttempts    int           `mapstructure:"max_attempts"`

	Redis struct {
		URL       string `mapstructure:"url"`
		KeyPrefix string `mapstructure:"key_prefix"`
	} `mapstructure:"redis"`

	Feed struct {
		BaseURL     string `mapstructure:"base_url"`
		BearerToken string `mapstructure:"bearer_token"`
		PageLimit   int    `mapstructure:"page_limit"`
	} `mapstructure:"feed"`

	Translator struct {
		Provider          string `mapstructure:"provider"` // "openai" or "rest"
		APIKey            string `mapstructure:"api_key"`
		Model             string `mapstructure:"model"`
		BaseURL           string `mapstructure:"base_url"`
		RequestsPerMinute int    `mapstructure:"requests_per_minute"`
	} `mapstructure:"translator"`
}

func loadConfig(cmd *cobra.Command) (*config, error) {
	v := viper.New()

	v.SetDefault("listen", ":8080")
	v.SetDefault("stale_threshold", tweetlate.DefaultStaleThreshold)
	v.SetDefault("max_attempts", tweetlate.DefaultMaxAttempts)
	v.SetDefault("redis.url", "redis://localhost:6379")
	v.SetDefault("translator.provider", "openai")

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("tweetlate")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/tweetlate")
	}

	v.SetEnvPrefix("TWEETLATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// No config file is fine; env and defaults carry it.
	}

	var cfg config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// newRefresher builds the full pipeline from config.
func newRefresher(cmd *cobra.Command, cfg *config, logger *zap.Logger) (*tweetlate.Refresher, error) {
	st, err := newStore(cmd, cfg)
	if err != nil {
		return nil, err
	}

	translator, err := newTranslator(cfg)
	if err != nil {
		return nil, err
	}

	feedClient := feed.NewHTTPFeed(feed.HTTPFeedConfig{
		BaseURL:     cfg.Feed.BaseURL,
		BearerToken: cfg.Feed.BearerToken,
		PageLimit:   cfg.Feed.PageLimit,
	})

	return tweetlate.NewRefresher(st, feedClient, translator,
		tweetlate.WithStaleThreshold(cfg.StaleThreshold),
		tweetlate.WithMaxAttempts(cfg.MaxAttempts),
		tweetlate.WithLogger(logger),
	), nil
}

func newStore(cmd *cobra.Command, cfg *config) (tweetlate.CacheStore, error) {
	if useMemory, _ := cmd.Flags().GetBool("memory"); useMemory {
		return store.NewMemoryStore(), nil
	}

	st, err := store.NewRedisStore(store.RedisConfig{
		URL:       cfg.Redis.URL,
		KeyPrefix: cfg.Redis.KeyPrefix,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	return st, nil
}

func newTranslator(cfg *config) (tweetlate.TranslationClient, error) {
	switch cfg.Translator.Provider {
	case "openai":
		return translate.NewOpenAIClient(translate.OpenAIConfig{
			APIKey:            cfg.Translator.APIKey,
			Model:             cfg.Translator.Model,
			BaseURL:           cfg.Translator.BaseURL,
			RequestsPerMinute: cfg.Translator.RequestsPerMinute,
		}), nil
	case "rest":
		return translate.NewRESTClient(translate.RESTConfig{
			BaseURL: cfg.Translator.BaseURL,
			APIKey:  cfg.Translator.APIKey,
		}), nil
	default:
		return nil, fmt.Errorf("unknown translator provider %q", cfg.Translator.Provider)
	}
}

func newLogger() (*zap.Logger, error) {
	return zap.NewProduction()
}
