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


package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/poiesic/distill/core"
	"github.com/poiesic/distill/storage"
)

// Store implements storage.SemanticRepository on an embedded SQLite file.
type Store struct {
	db          *sql.DB
	mu          sync.Mutex
	lastCreated time.Time
	closeOnce   sync.Once
	closed      bool
}

// NewRepository opens or creates the record database at the given path.
func NewRepository(path string) (storage.SemanticRepository, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return newStore(db)
}

// NewMemoryRepository creates an in-memory record database for testing.
func NewMemoryRepository() (storage.SemanticRepository, error) {
	db, err := sql.Open("sqlite", ":memory:?_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// The in-memory database lives in a single connection.
	db.SetMaxOpenConns(1)
	return newStore(db)
}

func newStore(db *sql.DB) (*Store, error) {
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS semantic_records (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		kind       TEXT NOT NULL,
		origin     TEXT NOT NULL,
		payload    TEXT NOT NULL,
		source     TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_records_kind ON semantic_records(kind);
	CREATE INDEX IF NOT EXISTS idx_records_origin ON semantic_records(origin);
	CREATE INDEX IF NOT EXISTS idx_records_created ON semantic_records(created_at DESC);

	CREATE TABLE IF NOT EXISTS keyword_index (
		keyword   TEXT NOT NULL,
		record_id INTEGER NOT NULL REFERENCES semantic_records(id),
		PRIMARY KEY (keyword, record_id)
	);
	CREATE INDEX IF NOT EXISTS idx_keyword_record ON keyword_index(record_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// timeLayout is fixed-width so the created_at column sorts and compares
// lexicographically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// recordPayload is the JSON shape of the kind-specific record fields.
type recordPayload struct {
	Question               string   `json:"question,omitempty"`
	Answer                 string   `json:"answer,omitempty"`
	Content                string   `json:"content,omitempty"`
	ReferenceKind          string   `json:"reference_kind,omitempty"`
	Term                   string   `json:"term,omitempty"`
	Definition             string   `json:"definition,omitempty"`
	TermCategory           string   `json:"term_category,omitempty"`
	Confidence             string   `json:"confidence,omitempty"`
	NeedsReview            bool     `json:"needs_review,omitempty"`
	AlternativeDefinitions []string `json:"alternative_definitions,omitempty"`
	DomainHints            []string `json:"domain_hints,omitempty"`
	Keywords               []string `json:"keywords,omitempty"`
}

// StoreRecords implements storage.SemanticRepository. The whole batch is
// written in one transaction; a failure on any record leaves nothing
// persisted.
func (s *Store) StoreRecords(ctx context.Context, records ...core.SemanticRecord) ([]core.SemanticRecord, error) {
	if len(records) == 0 {
		return nil, nil
	}
	if s.isClosed() {
		return nil, storage.ErrStorageClosed
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrStore, err)
	}
	defer tx.Rollback()

	stored := make([]core.SemanticRecord, 0, len(records))
	for _, record := range records {
		record.Normalize()
		if err := core.ValidateRecord(&record); err != nil {
			return nil, fmt.Errorf("%w: %v", storage.ErrStore, err)
		}

		record.CreatedAt = s.nextTimestamp()

		payload, err := json.Marshal(payloadOf(&record))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", storage.ErrSerializationFailed, err)
		}
		source, err := json.Marshal(record.Source)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", storage.ErrSerializationFailed, err)
		}

		result, err := tx.ExecContext(ctx,
			`INSERT INTO semantic_records (kind, origin, payload, source, created_at) VALUES (?, ?, ?, ?, ?)`,
			record.Kind.String(),
			record.Source.Origin.String(),
			string(payload),
			string(source),
			record.CreatedAt.Format(timeLayout),
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", storage.ErrStore, err)
		}
		rowID, err := result.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", storage.ErrStore, err)
		}
		record.Id = core.ID(rowID)

		for _, keyword := range record.Keywords {
			keyword = strings.ToLower(strings.TrimSpace(keyword))
			if keyword == "" {
				continue
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT OR IGNORE INTO keyword_index (keyword, record_id) VALUES (?, ?)`,
				keyword, rowID,
			); err != nil {
				return nil, fmt.Errorf("%w: %v", storage.ErrStore, err)
			}
		}

		stored = append(stored, record)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrTransactionFailed, err)
	}
	return stored, nil
}

// Retrieve implements storage.SemanticRepository. Results come back
// newest first.
func (s *Store) Retrieve(ctx context.Context, query storage.Query) ([]core.SemanticRecord, error) {
	if s.isClosed() {
		return nil, storage.ErrStorageClosed
	}

	var where []string
	var args []any

	if query.Kind != 0 {
		where = append(where, "kind = ?")
		args = append(args, query.Kind.String())
	}
	if query.Origin != 0 {
		where = append(where, "origin = ?")
		args = append(args, query.Origin.String())
	}
	if !query.CreatedFrom.IsZero() {
		where = append(where, "created_at >= ?")
		args = append(args, query.CreatedFrom.UTC().Format(timeLayout))
	}
	if !query.CreatedTo.IsZero() {
		where = append(where, "created_at <= ?")
		args = append(args, query.CreatedTo.UTC().Format(timeLayout))
	}
	if len(query.Keywords) > 0 {
		placeholders := make([]string, 0, len(query.Keywords))
		for _, keyword := range query.Keywords {
			placeholders = append(placeholders, "?")
			args = append(args, strings.ToLower(strings.TrimSpace(keyword)))
		}
		where = append(where,
			"id IN (SELECT record_id FROM keyword_index WHERE keyword IN ("+strings.Join(placeholders, ", ")+"))")
	}

	sqlQuery := "SELECT id, kind, payload, source, created_at FROM semantic_records"
	if len(where) > 0 {
		sqlQuery += " WHERE " + strings.Join(where, " AND ")
	}
	sqlQuery += " ORDER BY created_at DESC, id DESC"

	rows, err := s.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrStore, err)
	}
	defer rows.Close()

	var records []core.SemanticRecord
	for rows.Next() {
		var (
			rowID      int64
			kindText   string
			payloadRaw string
			sourceRaw  string
			createdRaw string
		)
		if err := rows.Scan(&rowID, &kindText, &payloadRaw, &sourceRaw, &createdRaw); err != nil {
			return nil, fmt.Errorf("%w: %v", storage.ErrStore, err)
		}

		record, err := rowRecord(rowID, kindText, payloadRaw, sourceRaw, createdRaw)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrStore, err)
	}
	return records, nil
}

// Close implements storage.SemanticRepository.
func (s *Store) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()
		err = s.db.Close()
	})
	return err
}

func (s *Store) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// nextTimestamp returns the current time, clamped so creation timestamps
// never move backwards within this instance.
func (s *Store) nextTimestamp() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if !now.After(s.lastCreated) {
		now = s.lastCreated.Add(time.Nanosecond)
	}
	s.lastCreated = now
	return now
}

func payloadOf(record *core.SemanticRecord) recordPayload {
	payload := recordPayload{
		Question:               record.Question,
		Answer:                 record.Answer,
		Content:                record.Content,
		ReferenceKind:          record.ReferenceKind,
		Term:                   record.Term,
		Definition:             record.Definition,
		TermCategory:           record.TermCategory,
		NeedsReview:            record.NeedsReview,
		AlternativeDefinitions: record.AlternativeDefinitions,
		DomainHints:            record.DomainHints,
		Keywords:               record.Keywords,
	}
	if record.Confidence != 0 {
		payload.Confidence = record.Confidence.String()
	}
	return payload
}

func rowRecord(rowID int64, kindText, payloadRaw, sourceRaw, createdRaw string) (core.SemanticRecord, error) {
	var record core.SemanticRecord

	kind, err := core.ParseKind(kindText)
	if err != nil {
		return record, fmt.Errorf("%w: %v", storage.ErrSerializationFailed, err)
	}

	var payload recordPayload
	if err := json.Unmarshal([]byte(payloadRaw), &payload); err != nil {
		return record, fmt.Errorf("%w: %v", storage.ErrSerializationFailed, err)
	}
	if err := json.Unmarshal([]byte(sourceRaw), &record.Source); err != nil {
		return record, fmt.Errorf("%w: %v", storage.ErrSerializationFailed, err)
	}

	createdAt, err := time.Parse(timeLayout, createdRaw)
	if err != nil {
		return record, fmt.Errorf("%w: %v", storage.ErrSerializationFailed, err)
	}

	record.Id = core.ID(rowID)
	record.Kind = kind
	record.Question = payload.Question
	record.Answer = payload.Answer
	record.Content = payload.Content
	record.ReferenceKind = payload.ReferenceKind
	record.Term = payload.Term
	record.Definition = payload.Definition
	record.TermCategory = payload.TermCategory
	record.NeedsReview = payload.NeedsReview
	record.AlternativeDefinitions = payload.AlternativeDefinitions
	record.DomainHints = payload.DomainHints
	record.Keywords = payload.Keywords
	record.CreatedAt = createdAt

	if payload.Confidence != "" {
		confidence, err := core.ParseConfidence(payload.Confidence)
		if err != nil {
			return record, fmt.Errorf("%w: %v", storage.ErrSerializationFailed, err)
		}
		record.Confidence = confidence
	}

	return record, nil
}
