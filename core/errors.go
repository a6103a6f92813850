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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidTask indicates a Task failed validation.
	ErrInvalidTask = errors.New("invalid task")

	// ErrInvalidFragment indicates a Fragment failed validation.
	ErrInvalidFragment = errors.New("invalid fragment")

	// ErrInvalidResult indicates an EnrichmentResult failed validation.
	ErrInvalidResult = errors.New("invalid enrichment result")

	// ErrEmptyContent indicates the Contents field is empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrEmptyFragmentID indicates the fragment identifier is empty.
	ErrEmptyFragmentID = errors.New("fragment id cannot be empty")

	// ErrInvalidPriority indicates an invalid Priority value.
	ErrInvalidPriority = errors.New("invalid priority")

	// ErrInvalidStatus indicates an invalid TaskStatus value.
	ErrInvalidStatus = errors.New("invalid task status")

	// ErrKeywordScoreMismatch indicates keywords and scores differ in length.
	ErrKeywordScoreMismatch = errors.New("keywords and keyword scores must have equal length")
)
