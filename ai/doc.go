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


// Package ai provides abstractions for the AI services used by Medenrich.
//
// This package defines interfaces for summary generation and keyword
// extraction. It follows the dependency inversion principle, allowing the
// enrichment pipeline to depend on abstractions rather than concrete
// implementations.
//
// # Design Principles
//
// The package is designed around three key interfaces:
//
//   - Summarizer: Generates summaries from fragment text
//   - KeywordExtractor: Extracts weighted keywords from fragment text
//   - AIProvider: Aggregates AI services for convenient initialization
//
// # Implementation Packages
//
// The ai package includes two implementation sub-packages:
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// # Error Classification
//
// Implementations wrap the sentinel errors defined in this package
// (ErrTimeout, ErrRateLimited, ErrMalformedResponse, ErrEmptyResponse) so
// the enrichment pipeline can decide between retrying a task and falling
// back to a local heuristic without knowing anything about the transport.
//
// # Usage Example
//
//	config := ai.DefaultConfig()
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	summary, err := provider.Summarizer().Summarize(ctx, text, 200)
//	keywords, err := provider.KeywordExtractor().ExtractKeywords(ctx, text)
package ai
