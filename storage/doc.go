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


// Package storage provides the storage abstraction layer for distill.
//
// This package defines repository interfaces that decouple storage
// implementation from extraction logic. Semantic records live in an
// embedded relational store; the extraction ledger lives in an embedded
// key/value store. Both sit behind interfaces so backends can be swapped
// or mocked.
//
// # Constructor Return Type Pattern
//
// This package follows a strict "return interface" pattern for all public
// constructors to enforce abstraction and enable multiple storage backend
// implementations:
//
//	repo, err := sqlite.NewRepository(path)  // returns storage.SemanticRepository
//	ledger, err := badger.NewLedger(path)    // returns storage.LedgerRepository
//
// Internal package constructors (newStore, newBackend, etc.) may return
// concrete types since they're only used within the implementation package.
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
//
// # Context Support
//
// All repository methods accept context.Context for cancellation
// and timeout support. Pass context.Background() for operations
// without specific timeout requirements.
package storage
