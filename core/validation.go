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

import "fmt"

// ValidateTask validates a Task according to domain rules.
//
// Validation rules:
//   - FragmentID must not be empty
//   - Text must not be empty
//   - Priority must be one of the defined bands
//
// NOT validated (populated by the scheduler and workers):
//   - Status, timestamps, RetryCount, Result
func ValidateTask(task *Task) error {
	if task == nil {
		return fmt.Errorf("%w: task is nil", ErrInvalidTask)
	}

	if task.FragmentID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidTask, ErrEmptyFragmentID)
	}

	if task.Text == "" {
		return fmt.Errorf("%w: %w", ErrInvalidTask, ErrEmptyContent)
	}

	if err := ValidatePriority(task.Priority); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTask, err)
	}

	return nil
}

// ValidateFragment validates a Fragment according to domain rules.
//
// Validation rules:
//   - Id must not be empty
//   - Contents must not be empty
//
// NOT validated (populated by the store updater):
//   - Summary, Keywords, quality fields (empty until enrichment completes)
func ValidateFragment(fragment *Fragment) error {
	if fragment == nil {
		return fmt.Errorf("%w: fragment is nil", ErrInvalidFragment)
	}

	if fragment.Id == "" {
		return fmt.Errorf("%w: %w", ErrInvalidFragment, ErrEmptyFragmentID)
	}

	if fragment.Contents == "" {
		return fmt.Errorf("%w: %w", ErrInvalidFragment, ErrEmptyContent)
	}

	return nil
}

// ValidateResult validates an EnrichmentResult according to domain rules.
func ValidateResult(result *EnrichmentResult) error {
	if result == nil {
		return fmt.Errorf("%w: result is nil", ErrInvalidResult)
	}

	if result.FragmentID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidResult, ErrEmptyFragmentID)
	}

	if len(result.Keywords) != len(result.KeywordScores) {
		return fmt.Errorf("%w: %w (%d keywords, %d scores)",
			ErrInvalidResult, ErrKeywordScoreMismatch,
			len(result.Keywords), len(result.KeywordScores))
	}

	return nil
}

// ValidatePriority validates that a Priority has a valid value.
func ValidatePriority(p Priority) error {
	if p < PriorityLow || p > PriorityUrgent {
		return fmt.Errorf("%w: value %d", ErrInvalidPriority, p)
	}
	return nil
}

// ValidateStatus validates that a TaskStatus has a valid value.
func ValidateStatus(s TaskStatus) error {
	if s < TaskPending || s > TaskCancelled {
		return fmt.Errorf("%w: value %d", ErrInvalidStatus, s)
	}
	return nil
}
