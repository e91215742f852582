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


package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/poiesic/distill/core"
	"github.com/poiesic/distill/storage"
)

// Ledger implements storage.LedgerRepository for BadgerDB.
type Ledger struct {
	backend *Backend
}

var _ storage.LedgerRepository = (*Ledger)(nil)

// NewLedger opens or creates an extraction ledger at the given path.
func NewLedger(path string) (storage.LedgerRepository, error) {
	backend, err := OpenBackend(path, false)
	if err != nil {
		return nil, err
	}
	return &Ledger{backend: backend}, nil
}

// NewMemoryLedger creates an in-memory extraction ledger for testing.
func NewMemoryLedger() (storage.LedgerRepository, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, err
	}
	return &Ledger{backend: backend}, nil
}

// MarkProcessed persists a ledger entry for an item fingerprint.
func (l *Ledger) MarkProcessed(ctx context.Context, entry core.LedgerEntry) error {
	if entry.ProcessedAt.IsZero() {
		entry.ProcessedAt = time.Now().UTC()
	}
	return l.backend.WithTx(func(tx *badger.Txn) error {
		key := makeLedgerKey(entry.Fingerprint)
		value := storage.MarshalLedgerEntry(&entry)
		if err := tx.Set(key, value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// LookupProcessed retrieves the ledger entry for a fingerprint.
// Returns nil, nil if the item has not been processed.
func (l *Ledger) LookupProcessed(ctx context.Context, fingerprint core.ID) (*core.LedgerEntry, error) {
	var entry *core.LedgerEntry
	err := l.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeLedgerKey(fingerprint))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return nil
			}
			return err
		}

		return item.Value(func(val []byte) error {
			var unmarshalErr error
			entry, unmarshalErr = storage.UnmarshalLedgerEntry(val)
			return unmarshalErr
		})
	}, false)

	return entry, err
}

// Close closes the underlying database. Safe to call more than once.
func (l *Ledger) Close() error {
	return l.backend.Close()
}
