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

import (
	"time"

	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the types persisted in the extraction ledger.
var (
	IDMUS          = idMUS{}
	LedgerEntryMUS = ledgerEntryMUS{}
)

type idMUS struct{}

func (idMUS) Marshal(id ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (ID, int, error) {
	num, n, err := varint.Uint64.Unmarshal(bs)
	return ID(num), n, err
}

func (idMUS) Size(id ID) int {
	return varint.Uint64.Size(uint64(id))
}

func (idMUS) Skip(bs []byte) (int, error) {
	return varint.Uint64.Skip(bs)
}

type ledgerEntryMUS struct{}

func (ledgerEntryMUS) Marshal(entry LedgerEntry, bs []byte) (n int) {
	n = IDMUS.Marshal(entry.Fingerprint, bs)
	n += varint.Int64.Marshal(int64(entry.Origin), bs[n:])
	n += varint.Int64.Marshal(int64(entry.RecordCount), bs[n:])
	n += varint.Int64.Marshal(entry.ProcessedAt.UnixNano(), bs[n:])
	return
}

func (ledgerEntryMUS) Unmarshal(bs []byte) (entry LedgerEntry, n int, err error) {
	var n1 int
	entry.Fingerprint, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}

	var origin int64
	origin, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	entry.Origin = Origin(origin)

	var count int64
	count, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	entry.RecordCount = int(count)

	var nanos int64
	nanos, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	entry.ProcessedAt = time.Unix(0, nanos).UTC()
	return
}

func (ledgerEntryMUS) Size(entry LedgerEntry) int {
	return IDMUS.Size(entry.Fingerprint) +
		varint.Int64.Size(int64(entry.Origin)) +
		varint.Int64.Size(int64(entry.RecordCount)) +
		varint.Int64.Size(entry.ProcessedAt.UnixNano())
}

func (ledgerEntryMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return
	}
	for range 3 {
		n1, err = varint.Int64.Skip(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	return
}
