// Package enginepb holds the gRPC wire types for the engine service.
// The messages are hand-maintained on protowire against engine.proto
// instead of being generated, which keeps the module free of protoc
// output while staying byte-compatible with any proto3 client built
// from the same file.
package enginepb

import (
	"errors"

	"google.golang.org/protobuf/encoding/protowire"
)

var ErrMalformed = errors.New("enginepb: malformed message")

type Side int32

const (
	Side_SIDE_BID Side = 0
	Side_SIDE_ASK Side = 1
)

type OrderType int32

const (
	OrderType_ORDER_TYPE_LIMIT  OrderType = 0
	OrderType_ORDER_TYPE_MARKET OrderType = 1
	OrderType_ORDER_TYPE_IOC    OrderType = 2
)

type Status int32

const (
	Status_STATUS_OPEN             Status = 0
	Status_STATUS_PARTIALLY_FILLED Status = 1
	Status_STATUS_FILLED           Status = 2
	Status_STATUS_CANCELLED        Status = 3
)

type SubmitOrderRequest struct {
	OrderId uint64
	Side    Side
	Type    OrderType
	Price   int64
	Qty     int64
}

func (m *SubmitOrderRequest) MarshalBinary() ([]byte, error) {
	var b []byte
	b = appendVarint(b, 1, m.OrderId)
	b = appendVarint(b, 2, uint64(m.Side))
	b = appendVarint(b, 3, uint64(m.Type))
	b = appendVarint(b, 4, uint64(m.Price))
	b = appendVarint(b, 5, uint64(m.Qty))
	return b, nil
}

func (m *SubmitOrderRequest) UnmarshalBinary(b []byte) error {
	*m = SubmitOrderRequest{}
	return walk(b, func(num protowire.Number, v uint64) {
		switch num {
		case 1:
			m.OrderId = v
		case 2:
			m.Side = Side(v)
		case 3:
			m.Type = OrderType(v)
		case 4:
			m.Price = int64(v)
		case 5:
			m.Qty = int64(v)
		}
	}, nil)
}

type Trade struct {
	Seq     uint64
	MakerId uint64
	TakerId uint64
	Price   int64
	Qty     int64
}

func (m *Trade) MarshalBinary() ([]byte, error) {
	var b []byte
	b = appendVarint(b, 1, m.Seq)
	b = appendVarint(b, 2, m.MakerId)
	b = appendVarint(b, 3, m.TakerId)
	b = appendVarint(b, 4, uint64(m.Price))
	b = appendVarint(b, 5, uint64(m.Qty))
	return b, nil
}

func (m *Trade) UnmarshalBinary(b []byte) error {
	*m = Trade{}
	return walk(b, func(num protowire.Number, v uint64) {
		switch num {
		case 1:
			m.Seq = v
		case 2:
			m.MakerId = v
		case 3:
			m.TakerId = v
		case 4:
			m.Price = int64(v)
		case 5:
			m.Qty = int64(v)
		}
	}, nil)
}

type SubmitOrderResponse struct {
	Status Status
	Filled int64
	Trades []*Trade
}

func (m *SubmitOrderResponse) MarshalBinary() ([]byte, error) {
	var b []byte
	b = appendVarint(b, 1, uint64(m.Status))
	b = appendVarint(b, 2, uint64(m.Filled))
	for _, t := range m.Trades {
		sub, err := t.MarshalBinary()
		if err != nil {
			return nil, err
		}
		b = appendBytes(b, 3, sub)
	}
	return b, nil
}

func (m *SubmitOrderResponse) UnmarshalBinary(b []byte) error {
	*m = SubmitOrderResponse{}
	var inner error
	err := walk(b, func(num protowire.Number, v uint64) {
		switch num {
		case 1:
			m.Status = Status(v)
		case 2:
			m.Filled = int64(v)
		}
	}, func(num protowire.Number, v []byte) {
		if num != 3 {
			return
		}
		t := new(Trade)
		if err := t.UnmarshalBinary(v); err != nil {
			inner = err
			return
		}
		m.Trades = append(m.Trades, t)
	})
	if err != nil {
		return err
	}
	return inner
}

type CancelOrderRequest struct {
	OrderId uint64
}

func (m *CancelOrderRequest) MarshalBinary() ([]byte, error) {
	var b []byte
	b = appendVarint(b, 1, m.OrderId)
	return b, nil
}

func (m *CancelOrderRequest) UnmarshalBinary(b []byte) error {
	*m = CancelOrderRequest{}
	return walk(b, func(num protowire.Number, v uint64) {
		if num == 1 {
			m.OrderId = v
		}
	}, nil)
}

type CancelOrderResponse struct {
	Cancelled bool
	Remaining int64
}

func (m *CancelOrderResponse) MarshalBinary() ([]byte, error) {
	var b []byte
	if m.Cancelled {
		b = appendVarint(b, 1, 1)
	}
	b = appendVarint(b, 2, uint64(m.Remaining))
	return b, nil
}

func (m *CancelOrderResponse) UnmarshalBinary(b []byte) error {
	*m = CancelOrderResponse{}
	return walk(b, func(num protowire.Number, v uint64) {
		switch num {
		case 1:
			m.Cancelled = v != 0
		case 2:
			m.Remaining = int64(v)
		}
	}, nil)
}

type GetTopOfBookRequest struct{}

func (m *GetTopOfBookRequest) MarshalBinary() ([]byte, error) { return nil, nil }

func (m *GetTopOfBookRequest) UnmarshalBinary(b []byte) error {
	*m = GetTopOfBookRequest{}
	return walk(b, nil, nil)
}

type GetTopOfBookResponse struct {
	HasBid   bool
	BidPrice int64
	BidQty   int64
	HasAsk   bool
	AskPrice int64
	AskQty   int64
}

func (m *GetTopOfBookResponse) MarshalBinary() ([]byte, error) {
	var b []byte
	if m.HasBid {
		b = appendVarint(b, 1, 1)
	}
	b = appendVarint(b, 2, uint64(m.BidPrice))
	b = appendVarint(b, 3, uint64(m.BidQty))
	if m.HasAsk {
		b = appendVarint(b, 4, 1)
	}
	b = appendVarint(b, 5, uint64(m.AskPrice))
	b = appendVarint(b, 6, uint64(m.AskQty))
	return b, nil
}

func (m *GetTopOfBookResponse) UnmarshalBinary(b []byte) error {
	*m = GetTopOfBookResponse{}
	return walk(b, func(num protowire.Number, v uint64) {
		switch num {
		case 1:
			m.HasBid = v != 0
		case 2:
			m.BidPrice = int64(v)
		case 3:
			m.BidQty = int64(v)
		case 4:
			m.HasAsk = v != 0
		case 5:
			m.AskPrice = int64(v)
		case 6:
			m.AskQty = int64(v)
		}
	}, nil)
}

type GetDepthRequest struct {
	Levels uint32
}

func (m *GetDepthRequest) MarshalBinary() ([]byte, error) {
	var b []byte
	b = appendVarint(b, 1, uint64(m.Levels))
	return b, nil
}

func (m *GetDepthRequest) UnmarshalBinary(b []byte) error {
	*m = GetDepthRequest{}
	return walk(b, func(num protowire.Number, v uint64) {
		if num == 1 {
			m.Levels = uint32(v)
		}
	}, nil)
}

type DepthLevel struct {
	Price  int64
	Qty    int64
	Orders uint32
}

func (m *DepthLevel) MarshalBinary() ([]byte, error) {
	var b []byte
	b = appendVarint(b, 1, uint64(m.Price))
	b = appendVarint(b, 2, uint64(m.Qty))
	b = appendVarint(b, 3, uint64(m.Orders))
	return b, nil
}

func (m *DepthLevel) UnmarshalBinary(b []byte) error {
	*m = DepthLevel{}
	return walk(b, func(num protowire.Number, v uint64) {
		switch num {
		case 1:
			m.Price = int64(v)
		case 2:
			m.Qty = int64(v)
		case 3:
			m.Orders = uint32(v)
		}
	}, nil)
}

type GetDepthResponse struct {
	Bids []*DepthLevel
	Asks []*DepthLevel
}

func (m *GetDepthResponse) MarshalBinary() ([]byte, error) {
	var b []byte
	for _, l := range m.Bids {
		sub, err := l.MarshalBinary()
		if err != nil {
			return nil, err
		}
		b = appendBytes(b, 1, sub)
	}
	for _, l := range m.Asks {
		sub, err := l.MarshalBinary()
		if err != nil {
			return nil, err
		}
		b = appendBytes(b, 2, sub)
	}
	return b, nil
}

func (m *GetDepthResponse) UnmarshalBinary(b []byte) error {
	*m = GetDepthResponse{}
	var inner error
	err := walk(b, nil, func(num protowire.Number, v []byte) {
		if num != 1 && num != 2 {
			return
		}
		l := new(DepthLevel)
		if err := l.UnmarshalBinary(v); err != nil {
			inner = err
			return
		}
		if num == 1 {
			m.Bids = append(m.Bids, l)
		} else {
			m.Asks = append(m.Asks, l)
		}
	})
	if err != nil {
		return err
	}
	return inner
}

// ---- wire helpers ----

func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendBytes(b []byte, num protowire.Number, v []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

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
