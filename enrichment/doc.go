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

// Package enrichment implements the asynchronous fragment enrichment
// pipeline.
//
// Callers submit (fragment ID, text, priority) tasks to a Processor,
// which queues them in a bounded priority queue and drains them with a
// fixed pool of workers. Each worker runs the per-task pipeline: summary
// generation and keyword extraction in parallel, each falling back to a
// local heuristic when its service is unavailable, followed by quality
// scoring of both outputs. Completed results are merged into the
// fragment store as idempotent partial updates; the fragments were
// persisted at ingestion time, so retrieval is never blocked on
// enrichment.
//
// Error routing follows a three-way taxonomy. Transient service errors
// re-queue the task at the same priority until its retry budget is
// spent, then mark it FAILED. A collaborator that is outright
// unavailable triggers the local fallback and the task completes with a
// degraded method tag. Store-update failures are retried independently
// of the pipeline so a computed result survives a store outage.
//
// Task status is queryable while a task is pending or processing and for
// a bounded window after it finishes; old finished tasks are evicted
// oldest-first. A monitor loop logs periodic stats snapshots and flags
// tasks stuck in processing.
package enrichment
