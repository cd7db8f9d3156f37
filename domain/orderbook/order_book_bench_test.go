package orderbook

import (
	"testing"

	"kestrel/infra/sequence"
)

func BenchmarkAddRestingOrder(b *testing.B) {
	book := NewOrderBook(sequence.New(0))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		// spread across 1024 price levels, never crossing
		_, _ = book.AddOrder(&Order{
			ID:    uint64(i + 1),
			Side:  Bid,
			Type:  Limit,
			Price: int64(i%1024 + 1),
			Qty:   1,
		})
	}
}

func BenchmarkMatchPair(b *testing.B) {
	book := NewOrderBook(sequence.New(0))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		id := uint64(i)*2 + 1
		_, _ = book.AddOrder(&Order{ID: id, Side: Ask, Type: Limit, Price: 100, Qty: 1})
		_, _ = book.AddOrder(&Order{ID: id + 1, Side: Bid, Type: Limit, Price: 100, Qty: 1})
	}
}

func BenchmarkCancelOrder(b *testing.B) {
	book := NewOrderBook(sequence.New(0))
	for i := 0; i < b.N; i++ {
		_, _ = book.AddOrder(&Order{
			ID:    uint64(i + 1),
			Side:  Bid,
			Type:  Limit,
			Price: int64(i%1024 + 1),
			Qty:   1,
		})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		book.CancelOrder(uint64(i + 1))
	}
}

func BenchmarkDepth(b *testing.B) {
	book := NewOrderBook(sequence.New(0))
	for i := 0; i < 1000; i++ {
		_, _ = book.AddOrder(&Order{ID: uint64(i + 1), Side: Bid, Type: Limit, Price: int64(i + 1), Qty: 1})
		_, _ = book.AddOrder(&Order{ID: uint64(i + 2001), Side: Ask, Type: Limit, Price: int64(i + 2001), Qty: 1})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = book.Depth(10)
	}
}
