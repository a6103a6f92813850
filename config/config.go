// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package config

import "time"

// Config holds all application configuration, grouped by subsystem.
type Config struct {
	Store      StoreConfig      `mapstructure:"store"`
	AI         AIConfig         `mapstructure:"ai"`
	Enrichment EnrichmentConfig `mapstructure:"enrichment"`
	Ingestion  IngestionConfig  `mapstructure:"ingestion"`
	LogLevel   string           `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// StoreConfig contains fragment store settings.
type StoreConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// AIConfig contains settings for the external enrichment services.
type AIConfig struct {
	SummaryHost      string        `mapstructure:"summary_host" validate:"required"`
	KeywordHost      string        `mapstructure:"keyword_host" validate:"required"`
	SummaryModel     string        `mapstructure:"summary_model" validate:"required"`
	KeywordModel     string        `mapstructure:"keyword_model" validate:"required"`
	MaxSummaryLength int           `mapstructure:"max_summary_length" validate:"gt=0"`
	MinKeywords      int           `mapstructure:"min_keywords" validate:"gt=0"`
	MaxKeywords      int           `mapstructure:"max_keywords" validate:"gtefield=MinKeywords"`
	CallTimeout      time.Duration `mapstructure:"call_timeout" validate:"gt=0"`
}

// EnrichmentConfig contains processor settings.
type EnrichmentConfig struct {
	Workers             int           `mapstructure:"workers" validate:"gt=0"`
	QueueCapacity       int           `mapstructure:"queue_capacity" validate:"gt=0"`
	MaxRetries          int           `mapstructure:"max_retries" validate:"gte=0"`
	HistorySize         int           `mapstructure:"history_size" validate:"gt=0"`
	MonitorInterval     time.Duration `mapstructure:"monitor_interval" validate:"gt=0"`
	StuckThreshold      time.Duration `mapstructure:"stuck_threshold" validate:"gt=0"`
	StoreRetryAttempts  int           `mapstructure:"store_retry_attempts" validate:"gt=0"`
	StoreRetryBaseDelay time.Duration `mapstructure:"store_retry_base_delay" validate:"gt=0"`
}

// IngestionConfig contains document splitting settings.
type IngestionConfig struct {
	FragmentSize int `mapstructure:"fragment_size" validate:"gt=0"`
}
