// Package journal is the append-only audit log written through by every
// successful mutating ledger operation. Events are ordered, synchronously
// appended records, never fire-and-forget callbacks. Two stores share the
// interface: an in-memory journal for embedding and tests, and a SQLite
// journal for durable audit trails.
package journal

import (
	"github.com/google/uuid"

	"github.com/pflow-xyz/go-mintgate/identity"
)

// Type names an audit event.
type Type string

const (
	// TokenMinted records a single-token or single-class mint.
	TokenMinted Type = "TokenMinted"
	// TokensMinted records a batch mint across classes.
	TokensMinted Type = "TokensMinted"
	// TokenBurned records a single-token or single-class burn.
	TokenBurned Type = "TokenBurned"
	// TokensBurned records a batch burn across classes.
	TokensBurned Type = "TokensBurned"
)

// Event is one audit record. Seq is assigned by the journal on append and is
// the event's identity; event content carries no wall-clock or random data,
// so a replay of the same operations yields the same log.
type Event struct {
	Seq   uint64
	Type  Type
	Actor identity.Address
	// Owner is the recipient on mints and the previous holder on burns.
	Owner identity.Address

	// Single-token / single-class payload.
	TokenID  uint64
	ClassID  uint64
	Quantity uint64

	// Batch payload.
	ClassIDs []uint64
	Amounts  []uint64
}

// Journal records and replays audit events for one collection pair.
type Journal interface {
	// Append assigns the next sequence number to ev and stores it.
	Append(ev *Event) error

	// Events returns all stored events in append order.
	Events() ([]Event, error)

	// Stream returns the journal instance identifier.
	Stream() string

	// Close releases the underlying store.
	Close() error
}

// newStreamID labels a journal instance. Sequence numbers, not the stream
// id, identify events, so replays stay deterministic.
func newStreamID() string {
	return uuid.New().String()
}
