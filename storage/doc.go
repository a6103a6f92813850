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


// Package storage defines the persistence abstractions for Medenrich.
//
// The package contains repository interfaces, storage-level sentinel errors
// and serialization wrappers. Concrete backends live in sub-packages; the
// storage/badger package implements the interfaces on BadgerDB.
//
// The FragmentRepository enforces the store-first, update-later protocol:
// fragments are persisted immediately with placeholder metadata so retrieval
// never waits on enrichment, and the enrichment metadata is merged in later
// through an idempotent partial update.
package storage
