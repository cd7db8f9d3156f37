package orderbook

// Trade records one match. Price is always the maker's resting price:
// the order already committed to the book sets the terms, the taker
// accepts them. Seq is strictly monotonic across the life of the book
// so the trade stream can be replayed and audited in order.
type Trade struct {
	Seq     uint64
	MakerID uint64
	TakerID uint64
	Price   int64
	Qty     int64
}

// TradeSequencer hands out trade sequence numbers.
// infra/sequence.Sequencer satisfies it.
type TradeSequencer interface {
	Next() uint64
}
