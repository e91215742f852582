package badger

import (
	"github.com/poiesic/distill/core"
	"github.com/poiesic/distill/storage"
)

const ledgerPrefix = "ledger:"

// makeLedgerKey builds the key for a ledger entry from its item
// fingerprint, using the varint encoding shared with the entry values.
func makeLedgerKey(fingerprint core.ID) []byte {
	return append([]byte(ledgerPrefix), storage.MarshalID(fingerprint)...)
}
