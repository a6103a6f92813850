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

// Package badger provides a BadgerDB implementation of the storage
// interfaces.
//
// Fragments are stored under the "frarec" key prefix, serialized with the
// MUS binary format. A secondary "frapend" index tracks fragments whose
// enrichment has not yet landed; InsertFragments adds an index entry and
// ApplyEnrichment removes it, so backfill scans never walk the full
// fragment keyspace.
//
// All operations run inside BadgerDB transactions. Write transactions are
// committed explicitly by the repository methods; read transactions are
// discarded after use.
package badger
