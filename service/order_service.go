package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"kestrel/domain/orderbook"
	"kestrel/infra/memory"
	"kestrel/infra/sequence"
	entrywal "kestrel/infra/wal/entry"
	exitwal "kestrel/infra/wal/exit"
	"kestrel/infra/wal/walpb"
	"kestrel/snapshot"
)

// OrderService serializes all writes to the book behind one mutex.
// Queries take the read side and additionally pin a read epoch, so the
// reclaim job never recycles an order a query might still observe.
type OrderService struct {
	mu sync.RWMutex

	symbol string
	book   *orderbook.OrderBook
	pool   *memory.Pool[orderbook.Order]
	ring   *memory.RetireRing
	reader *snapshot.Reader
	seq    *sequence.Sequencer
	wal    *entrywal.WAL
	outbox *exitwal.Outbox
}

func NewOrderService(
	symbol string,
	book *orderbook.OrderBook,
	pool *memory.Pool[orderbook.Order],
	ring *memory.RetireRing,
	reader *snapshot.Reader,
	seq *sequence.Sequencer,
	wal *entrywal.WAL,
	outbox *exitwal.Outbox,
) *OrderService {
	s := &OrderService{
		symbol: symbol,
		book:   book,
		pool:   pool,
		ring:   ring,
		reader: reader,
		seq:    seq,
		wal:    wal,
		outbox: outbox,
	}

	// Retired orders go through the ring so in-flight readers finish
	// before reuse. If the ring is ever full the order is dropped to
	// the GC instead, which is always safe.
	book.Retire = func(o *orderbook.Order) {
		if !ring.Enqueue(o) {
			log.Println("[service] retire ring full, dropping to GC")
		}
	}

	return s
}

func (s *OrderService) Symbol() string {
	return s.symbol
}

// Submit admits an order. The intent is logged before matching, so a
// crash after the append replays into the same trades. Trades are
// staged in the outbox inside the same critical section.
func (s *OrderService) Submit(
	id uint64,
	side orderbook.Side,
	otype orderbook.OrderType,
	price, qty int64,
) ([]orderbook.Trade, error) {
	o := s.pool.Get()
	*o = orderbook.Order{ID: id, Side: side, Type: otype, Price: price, Qty: qty}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.book.Validate(o); err != nil {
		s.pool.Put(o)
		return nil, err
	}

	intent := walpb.PlaceOrder{
		OrderID: id,
		Side:    uint64(side),
		Type:    uint64(otype),
		Price:   price,
		Qty:     qty,
	}
	data, _ := intent.MarshalBinary()
	if _, err := s.wal.Append(entrywal.RecordPlace, data); err != nil {
		s.pool.Put(o)
		return nil, fmt.Errorf("wal append: %w", err)
	}

	trades, err := s.book.AddOrder(o)
	if err != nil {
		// Validate passed above, so this cannot happen.
		s.pool.Put(o)
		return nil, err
	}

	s.stageTrades(trades)
	return trades, nil
}

// Cancel removes a resting order. The reported bool is false when the
// id is unknown or already terminal.
func (s *OrderService) Cancel(id uint64) (orderbook.Order, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	intent := walpb.CancelOrder{OrderID: id}
	data, _ := intent.MarshalBinary()
	if _, err := s.wal.Append(entrywal.RecordCancel, data); err != nil {
		return orderbook.Order{}, false, fmt.Errorf("wal append: %w", err)
	}

	final, ok := s.book.CancelOrder(id)
	return final, ok, nil
}

func (s *OrderService) BestBid() (orderbook.Quote, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.reader.Begin()
	defer s.reader.End()

	return s.book.BestBid()
}

func (s *OrderService) BestAsk() (orderbook.Quote, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.reader.Begin()
	defer s.reader.End()

	return s.book.BestAsk()
}

// Depth returns up to levels price levels per side, best-first.
func (s *OrderService) Depth(levels int) orderbook.DepthSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.reader.Begin()
	defer s.reader.End()

	return s.book.Depth(levels)
}

// AdvanceEpoch performs one round of safe reclamation. Called
// periodically by StartReclaimJob.
func (s *OrderService) AdvanceEpoch() {
	memory.AdvanceEpochAndReclaim(s.ring, s.pool, s.reader.Epoch())
}

// StartReclaimJob advances the epoch on a ticker until ctx is
// cancelled.
func (s *OrderService) StartReclaimJob(ctx context.Context, interval time.Duration) {
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				s.AdvanceEpoch()
			}
		}
	}()
}

func (s *OrderService) stageTrades(trades []orderbook.Trade) {
	for _, t := range trades {
		msg := walpb.Trade{
			Seq:     t.Seq,
			MakerID: t.MakerID,
			TakerID: t.TakerID,
			Price:   t.Price,
			Qty:     t.Qty,
			Symbol:  s.symbol,
		}
		payload, _ := msg.MarshalBinary()
		if err := s.outbox.PutNew(t.Seq, payload); err != nil {
			log.Printf("[service] outbox put seq=%d failed: %v", t.Seq, err)
		}
	}
}
