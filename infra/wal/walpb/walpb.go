// Package walpb defines the protobuf wire encoding of WAL and outbox
// payloads. The messages are maintained by hand on top of
// protowire rather than generated, so the module carries no protoc
// output; field numbers are part of the on-disk format and must never
// be reused.
package walpb

import (
	"errors"

	"google.golang.org/protobuf/encoding/protowire"
)

var ErrMalformed = errors.New("walpb: malformed payload")

// PlaceOrder is the entry-WAL intent for an order submission.
type PlaceOrder struct {
	OrderID uint64 // 1
	Side    uint64 // 2
	Type    uint64 // 3
	Price   int64  // 4
	Qty     int64  // 5
}

func (m *PlaceOrder) MarshalBinary() ([]byte, error) {
	var b []byte
	b = appendVarintField(b, 1, m.OrderID)
	b = appendVarintField(b, 2, m.Side)
	b = appendVarintField(b, 3, m.Type)
	b = appendVarintField(b, 4, uint64(m.Price))
	b = appendVarintField(b, 5, uint64(m.Qty))
	return b, nil
}

func (m *PlaceOrder) UnmarshalBinary(b []byte) error {
	*m = PlaceOrder{}
	return walk(b, func(num protowire.Number, v uint64) {
		switch num {
		case 1:
			m.OrderID = v
		case 2:
			m.Side = v
		case 3:
			m.Type = v
		case 4:
			m.Price = int64(v)
		case 5:
			m.Qty = int64(v)
		}
	}, nil)
}

// CancelOrder is the entry-WAL intent for a cancellation.
type CancelOrder struct {
	OrderID uint64 // 1
}

func (m *CancelOrder) MarshalBinary() ([]byte, error) {
	var b []byte
	b = appendVarintField(b, 1, m.OrderID)
	return b, nil
}

func (m *CancelOrder) UnmarshalBinary(b []byte) error {
	*m = CancelOrder{}
	return walk(b, func(num protowire.Number, v uint64) {
		if num == 1 {
			m.OrderID = v
		}
	}, nil)
}

// Trade is the outbox/broadcast form of a match.
type Trade struct {
	Seq     uint64 // 1
	MakerID uint64 // 2
	TakerID uint64 // 3
	Price   int64  // 4
	Qty     int64  // 5
	Symbol  string // 6
}

func (m *Trade) MarshalBinary() ([]byte, error) {
	var b []byte
	b = appendVarintField(b, 1, m.Seq)
	b = appendVarintField(b, 2, m.MakerID)
	b = appendVarintField(b, 3, m.TakerID)
	b = appendVarintField(b, 4, uint64(m.Price))
	b = appendVarintField(b, 5, uint64(m.Qty))
	if m.Symbol != "" {
		b = protowire.AppendTag(b, 6, protowire.BytesType)
		b = protowire.AppendString(b, m.Symbol)
	}
	return b, nil
}

func (m *Trade) UnmarshalBinary(b []byte) error {
	*m = Trade{}
	return walk(b, func(num protowire.Number, v uint64) {
		switch num {
		case 1:
			m.Seq = v
		case 2:
			m.MakerID = v
		case 3:
			m.TakerID = v
		case 4:
			m.Price = int64(v)
		case 5:
			m.Qty = int64(v)
		}
	}, func(num protowire.Number, v []byte) {
		if num == 6 {
			m.Symbol = string(v)
		}
	})
}

// ---- wire helpers ----

func appendVarintField(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

// walk decodes a flat message, dispatching varint and bytes fields and
// skipping anything unknown (forward compatibility).
func walk(b []byte, onVarint func(protowire.Number, uint64), onBytes func(protowire.Number, []byte)) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return ErrMalformed
		}
		b = b[n:]

		switch typ {
		case protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return ErrMalformed
			}
			if onVarint != nil {
				onVarint(num, v)
			}
			b = b[n:]
		case protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return ErrMalformed
			}
			if onBytes != nil {
				onBytes(num, v)
			}
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return ErrMalformed
			}
			b = b[n:]
		}
	}
	return nil
}
