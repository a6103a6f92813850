package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from an optional YAML file and MEDENRICH_*
// environment variables, with environment taking precedence over the
// file. Pass an empty path to rely on defaults and environment only.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigType("yaml")
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configPath, err)
		}
	}

	v.SetEnvPrefix("MEDENRICH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")

	v.SetDefault("store.path", "medenrich.db")

	v.SetDefault("ai.summary_host", "http://localhost:11434/v1")
	v.SetDefault("ai.keyword_host", "http://localhost:11434/v1")
	v.SetDefault("ai.summary_model", "qwen2.5:3b")
	v.SetDefault("ai.keyword_model", "qwen2.5:3b")
	v.SetDefault("ai.max_summary_length", 200)
	v.SetDefault("ai.min_keywords", 3)
	v.SetDefault("ai.max_keywords", 10)
	v.SetDefault("ai.call_timeout", "30s")

	v.SetDefault("enrichment.workers", 4)
	v.SetDefault("enrichment.queue_capacity", 256)
	v.SetDefault("enrichment.max_retries", 3)
	v.SetDefault("enrichment.history_size", 256)
	v.SetDefault("enrichment.monitor_interval", "30s")
	v.SetDefault("enrichment.stuck_threshold", "5m")
	v.SetDefault("enrichment.store_retry_attempts", 3)
	v.SetDefault("enrichment.store_retry_base_delay", "500ms")

	v.SetDefault("ingestion.fragment_size", 1000)
}
