// Package exit implements the trade outbox. Trades produced by a match
// are written here in the same critical section that produced them and
// drained to the broker asynchronously, so a crash between match and
// publish never loses a trade. Delivery is at-least-once; consumers
// deduplicate on the trade sequence.
package exit

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/cockroachdb/pebble"
)

// -------------------- State --------------------

type State uint8

const (
	StateNew State = iota
	StateSent
	StateAcked
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "NEW"
	case StateSent:
		return "SENT"
	case StateAcked:
		return "ACKED"
	default:
		return "UNKNOWN"
	}
}

// -------------------- Record --------------------

const recHeaderLen = 1 + 4 + 8

// Record is one outbox entry. Payload is the encoded trade exactly as
// it will be handed to the broker.
type Record struct {
	State       State
	Retries     uint32
	LastAttempt int64
	Payload     []byte
}

// value encoding: [state:1][retries:4][lastAttempt:8][payload]
func encodeRecord(r Record) []byte {
	buf := make([]byte, recHeaderLen+len(r.Payload))
	buf[0] = byte(r.State)
	binary.BigEndian.PutUint32(buf[1:5], r.Retries)
	binary.BigEndian.PutUint64(buf[5:13], uint64(r.LastAttempt))
	copy(buf[recHeaderLen:], r.Payload)
	return buf
}

func decodeRecord(b []byte) (Record, error) {
	if len(b) < recHeaderLen {
		return Record{}, errors.New("outbox record too short")
	}
	payload := make([]byte, len(b)-recHeaderLen)
	copy(payload, b[recHeaderLen:])
	return Record{
		State:       State(b[0]),
		Retries:     binary.BigEndian.Uint32(b[1:5]),
		LastAttempt: int64(binary.BigEndian.Uint64(b[5:13])),
		Payload:     payload,
	}, nil
}

// -------------------- Outbox --------------------

type Outbox struct {
	db *pebble.DB
}

func Open(dir string) (*Outbox, error) {
	db, err := pebble.Open(dir, &pebble.Options{
		DisableWAL: false, // we WANT durability
	})
	if err != nil {
		return nil, err
	}
	return &Outbox{db: db}, nil
}

func (o *Outbox) Close() error {
	return o.db.Close()
}

// -------------------- API --------------------

// PutNew inserts a freshly matched trade, keyed by its sequence.
func (o *Outbox) PutNew(seq uint64, payload []byte) error {
	rec := Record{State: StateNew, Payload: payload}
	return o.db.Set(keyFor(seq), encodeRecord(rec), pebble.Sync)
}

// MarkSent records a delivery attempt before the broker call. The
// record is updated in place so the caller sees the new retry count.
func (o *Outbox) MarkSent(seq uint64, rec *Record) error {
	rec.State = StateSent
	rec.Retries++
	rec.LastAttempt = time.Now().UnixNano()
	return o.db.Set(keyFor(seq), encodeRecord(*rec), pebble.Sync)
}

// MarkAcked records broker acknowledgement.
func (o *Outbox) MarkAcked(seq uint64, rec *Record) error {
	rec.State = StateAcked
	return o.db.Set(keyFor(seq), encodeRecord(*rec), pebble.Sync)
}

// Get returns the record for a trade sequence.
func (o *Outbox) Get(seq uint64) (Record, error) {
	val, closer, err := o.db.Get(keyFor(seq))
	if err != nil {
		return Record{}, err
	}
	defer closer.Close()

	return decodeRecord(val)
}

// -------------------- Scan --------------------

// ScanPending iterates every NEW or SENT record in sequence order.
// SENT records are included because a crash between send and ack
// leaves them in limbo; resending is the at-least-once tradeoff.
func (o *Outbox) ScanPending(fn func(seq uint64, rec Record) error) error {
	iter, err := o.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte(keyPrefix),
		UpperBound: []byte(keyPrefix + "~"),
	})
	if err != nil {
		return err
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		rec, err := decodeRecord(iter.Value())
		if err != nil {
			return err
		}
		if rec.State == StateAcked {
			continue
		}

		seq, err := parseKey(iter.Key())
		if err != nil {
			return err
		}

		if err := fn(seq, rec); err != nil {
			return err
		}
	}
	return iter.Error()
}

// TruncateAckedUpTo deletes ACKED records with sequence <= seq.
// Called by the snapshot job so the outbox does not grow unbounded.
func (o *Outbox) TruncateAckedUpTo(seq uint64) error {
	iter, err := o.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte(keyPrefix),
		UpperBound: append(keyFor(seq), '~'),
	})
	if err != nil {
		return err
	}
	defer iter.Close()

	batch := o.db.NewBatch()
	for iter.First(); iter.Valid(); iter.Next() {
		rec, err := decodeRecord(iter.Value())
		if err != nil {
			return err
		}
		if rec.State != StateAcked {
			continue
		}
		if err := batch.Delete(iter.Key(), nil); err != nil {
			return err
		}
	}
	if err := iter.Error(); err != nil {
		return err
	}
	return o.db.Apply(batch, pebble.Sync)
}

// -------------------- Helpers --------------------

const keyPrefix = "trade/"

func keyFor(seq uint64) []byte {
	return []byte(fmt.Sprintf("%s%020d", keyPrefix, seq))
}

func parseKey(b []byte) (uint64, error) {
	var seq uint64
	_, err := fmt.Sscanf(string(bytes.TrimPrefix(b, []byte(keyPrefix))), "%d", &seq)
	return seq, err
}
