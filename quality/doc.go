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


// Package quality scores enrichment outputs against their source text.
//
// The evaluator is deliberately pure: scoring is a function of the inputs
// and the read-only dictionaries (medical terms, stop words) loaded at
// construction. Scores are recomputed on each evaluation and are never
// persisted independently of the result that produced them.
package quality
