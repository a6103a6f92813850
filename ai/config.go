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


package ai

import (
	"errors"
	"strings"
	"time"
)

// Config holds configuration for AI service providers.
type Config struct {
	// SummaryHost is the base URL for the summarization service API.
	// Example: "http://localhost:11434/v1" for local OpenAI-compatible server
	SummaryHost string

	// KeywordHost is the base URL for the keyword extraction service API.
	// Example: "http://localhost:11434/v1" for local OpenAI-compatible server
	KeywordHost string

	// SummaryModel is the model identifier to use for summarization.
	// Example: "qwen2.5:3b", "gpt-4o-mini"
	SummaryModel string

	// KeywordModel is the model identifier to use for keyword extraction.
	// Example: "qwen2.5:3b", "gpt-4o-mini"
	KeywordModel string

	// MaxSummaryLength is the maximum summary length in characters.
	// Default: 200
	MaxSummaryLength int

	// MinKeywords and MaxKeywords bound the keyword count requested from
	// the extractor. Defaults: 3 and 10.
	MinKeywords int
	MaxKeywords int

	// CallTimeout bounds each service call. A slow collaborator can never
	// hold a worker longer than this. Default: 30s.
	CallTimeout time.Duration
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithSummaryHost sets the summarization service host URL.
func WithSummaryHost(host string) ConfigOption {
	return func(c *Config) {
		c.SummaryHost = host
	}
}

// WithKeywordHost sets the keyword extraction service host URL.
func WithKeywordHost(host string) ConfigOption {
	return func(c *Config) {
		c.KeywordHost = host
	}
}

// WithHost sets both summary and keyword hosts to the same URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.SummaryHost = host
		c.KeywordHost = host
	}
}

// WithSummaryModel sets the summarization model identifier.
func WithSummaryModel(model string) ConfigOption {
	return func(c *Config) {
		c.SummaryModel = model
	}
}

// WithKeywordModel sets the keyword extraction model identifier.
func WithKeywordModel(model string) ConfigOption {
	return func(c *Config) {
		c.KeywordModel = model
	}
}

// WithMaxSummaryLength sets the maximum summary length in characters.
func WithMaxSummaryLength(length int) ConfigOption {
	return func(c *Config) {
		c.MaxSummaryLength = length
	}
}

// WithKeywordBounds sets the minimum and maximum keyword counts.
func WithKeywordBounds(min, max int) ConfigOption {
	return func(c *Config) {
		c.MinKeywords = min
		c.MaxKeywords = max
	}
}

// WithCallTimeout sets the per-call timeout for service requests.
func WithCallTimeout(timeout time.Duration) ConfigOption {
	return func(c *Config) {
		c.CallTimeout = timeout
	}
}

// DefaultConfig returns a Config with sensible defaults for local
// OpenAI-compatible services. By default both services use the same host.
func DefaultConfig() *Config {
	defaultHost := "http://localhost:11434/v1"
	return &Config{
		SummaryHost:      defaultHost,
		KeywordHost:      defaultHost,
		SummaryModel:     "qwen2.5:3b",
		KeywordModel:     "qwen2.5:3b",
		MaxSummaryLength: 200,
		MinKeywords:      3,
		MaxKeywords:      10,
		CallTimeout:      30 * time.Second,
	}
}

// NewConfig creates a Config with the default values and applies the
// provided options. This is the recommended way to create a Config.
//
// Example:
//
//	cfg := NewConfig(
//	    WithHost("http://localhost:11434/v1"),
//	    WithSummaryModel("gpt-4o-mini"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// It automatically adds the /v1 suffix to hosts if missing, which is required
// by most OpenAI-compatible APIs (Ollama, LocalAI, vLLM, etc).
func (c *Config) Normalize() {
	if c.SummaryHost != "" && !strings.HasSuffix(c.SummaryHost, "/v1") {
		c.SummaryHost = strings.TrimSuffix(c.SummaryHost, "/")
		c.SummaryHost = c.SummaryHost + "/v1"
	}
	if c.KeywordHost != "" && !strings.HasSuffix(c.KeywordHost, "/v1") {
		c.KeywordHost = strings.TrimSuffix(c.KeywordHost, "/")
		c.KeywordHost = c.KeywordHost + "/v1"
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.SummaryHost == "" {
		return errors.New("ai config: SummaryHost is required")
	}
	if c.KeywordHost == "" {
		return errors.New("ai config: KeywordHost is required")
	}
	if c.SummaryModel == "" {
		return errors.New("ai config: SummaryModel is required")
	}
	if c.KeywordModel == "" {
		return errors.New("ai config: KeywordModel is required")
	}
	if c.MaxSummaryLength < 1 {
		return errors.New("ai config: MaxSummaryLength must be positive")
	}
	if c.MinKeywords < 1 || c.MaxKeywords < c.MinKeywords {
		return errors.New("ai config: keyword bounds must satisfy 1 <= min <= max")
	}
	if c.CallTimeout <= 0 {
		return errors.New("ai config: CallTimeout must be positive")
	}
	return nil
}
