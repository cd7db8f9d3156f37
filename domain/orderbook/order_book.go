package orderbook

import "errors"

var (
	ErrInvalidPrice    = errors.New("orderbook: price must be positive")
	ErrInvalidQuantity = errors.New("orderbook: quantity must be positive")
	ErrDuplicateID     = errors.New("orderbook: order id already active")
)

// Quote is one side's top of book: the best price and the aggregate
// quantity resting there.
type Quote struct {
	Price int64
	Qty   int64
}

// DepthLevel is one price level of a depth snapshot.
type DepthLevel struct {
	Price  int64
	Qty    int64
	Orders int
}

// DepthSnapshot is a read-only copy of the top of the book, best-first
// on both sides. It holds no references into book internals.
type DepthSnapshot struct {
	Bids []DepthLevel
	Asks []DepthLevel
}

// OrderBook is single-writer and deterministic: the same sequence of
// AddOrder/CancelOrder calls always produces the same trades. Callers
// serialize access (see service.OrderService).
type OrderBook struct {
	Bids *RBTree
	Asks *RBTree

	// Retire, when set, receives every order the book is done with
	// (filled, cancelled, or an exhausted Market/IOC remainder) so the
	// owner can recycle it. The book holds no reference afterwards.
	Retire func(*Order)

	orders map[uint64]*Order // resting orders, for O(1) cancel
	seq    TradeSequencer
}

func NewOrderBook(seq TradeSequencer) *OrderBook {
	return &OrderBook{
		Bids:   NewRBTree(),
		Asks:   NewRBTree(),
		orders: make(map[uint64]*Order, 1024),
		seq:    seq,
	}
}

// Validate checks an order against admission rules without touching
// book state. AddOrder calls it; the service layer also calls it before
// writing a WAL intent, so invalid orders never reach the log.
func (b *OrderBook) Validate(o *Order) error {
	if o.Qty <= 0 {
		return ErrInvalidQuantity
	}
	if o.Type != Market && o.Price <= 0 {
		return ErrInvalidPrice
	}
	if _, exists := b.orders[o.ID]; exists {
		return ErrDuplicateID
	}
	return nil
}

// AddOrder admits an order and runs it through matching. On a
// validation error the book is left exactly as it was. On success it
// returns the trades generated, in the order they occurred; an unfilled
// Limit remainder rests on its own side, Market/IOC remainders are
// cancelled.
func (b *OrderBook) AddOrder(o *Order) ([]Trade, error) {
	if err := b.Validate(o); err != nil {
		return nil, err
	}

	var trades []Trade
	if o.Side == Bid {
		trades = b.matchBid(o)
	} else {
		trades = b.matchAsk(o)
	}

	switch {
	case o.Remaining() == 0:
		o.Status = Filled
		b.retire(o)
	case o.Type == Limit:
		b.rest(o)
	default: // Market, IOC
		o.Status = Cancelled
		b.retire(o)
	}

	return trades, nil
}

// CancelOrder removes a resting order, preserving the FIFO order of the
// rest of its level, and returns its final state. Unknown or already
// terminal ids report false; "already gone" is an expected outcome, not
// an error.
func (b *OrderBook) CancelOrder(id uint64) (Order, bool) {
	o, ok := b.orders[id]
	if !ok {
		return Order{}, false
	}

	tree := b.sideTree(o.Side)
	lvl := tree.FindLevel(o.Price)
	lvl.Unlink(o)
	if lvl.Empty() {
		tree.DeleteLevel(lvl.Price)
	}
	delete(b.orders, id)

	o.Status = Cancelled
	final := *o
	b.retire(o)
	return final, true
}

// Restore rests an order directly without running it through matching.
// Snapshot load uses it; the orders in a snapshot were already matched
// when first admitted, so they are known not to cross.
func (b *OrderBook) Restore(o *Order) error {
	if err := b.Validate(o); err != nil {
		return err
	}
	if o.Filled > 0 {
		o.Status = PartiallyFilled
	} else {
		o.Status = Open
	}
	b.rest(o)
	return nil
}

// BestBid returns the highest bid price and the quantity resting there.
func (b *OrderBook) BestBid() (Quote, bool) {
	lvl := b.Bids.MaxLevel()
	if lvl == nil {
		return Quote{}, false
	}
	return Quote{Price: lvl.Price, Qty: lvl.TotalQty}, true
}

// BestAsk returns the lowest ask price and the quantity resting there.
func (b *OrderBook) BestAsk() (Quote, bool) {
	lvl := b.Asks.MinLevel()
	if lvl == nil {
		return Quote{}, false
	}
	return Quote{Price: lvl.Price, Qty: lvl.TotalQty}, true
}

// Depth copies up to levels price levels per side, best-first.
func (b *OrderBook) Depth(levels int) DepthSnapshot {
	snap := DepthSnapshot{}
	b.Bids.ForEachDescending(func(lvl *PriceLevel) bool {
		if len(snap.Bids) >= levels {
			return false
		}
		snap.Bids = append(snap.Bids, DepthLevel{
			Price: lvl.Price, Qty: lvl.TotalQty, Orders: lvl.OrderCount,
		})
		return true
	})
	b.Asks.ForEachAscending(func(lvl *PriceLevel) bool {
		if len(snap.Asks) >= levels {
			return false
		}
		snap.Asks = append(snap.Asks, DepthLevel{
			Price: lvl.Price, Qty: lvl.TotalQty, Orders: lvl.OrderCount,
		})
		return true
	})
	return snap
}

// BidsWalk visits bid levels best to worst.
func (b *OrderBook) BidsWalk(fn func(*PriceLevel) bool) {
	b.Bids.ForEachDescending(fn)
}

// AsksWalk visits ask levels best to worst.
func (b *OrderBook) AsksWalk(fn func(*PriceLevel) bool) {
	b.Asks.ForEachAscending(fn)
}

// RestingCount returns the number of orders resting in the book.
func (b *OrderBook) RestingCount() int {
	return len(b.orders)
}

// ---- matching ----

func (b *OrderBook) matchBid(o *Order) []Trade {
	var trades []Trade
	for o.Remaining() > 0 {
		best := b.Asks.MinLevel()
		if best == nil || (o.Type != Market && best.Price > o.Price) {
			break
		}
		trades = b.fill(o, best, b.Asks, trades)
	}
	return trades
}

func (b *OrderBook) matchAsk(o *Order) []Trade {
	var trades []Trade
	for o.Remaining() > 0 {
		best := b.Bids.MaxLevel()
		if best == nil || (o.Type != Market && best.Price < o.Price) {
			break
		}
		trades = b.fill(o, best, b.Bids, trades)
	}
	return trades
}

// fill executes one match against the oldest maker at the given level.
func (b *OrderBook) fill(taker *Order, lvl *PriceLevel, tree *RBTree, trades []Trade) []Trade {
	maker := lvl.Head()

	qty := min(taker.Remaining(), maker.Remaining())
	trades = append(trades, Trade{
		Seq:     b.seq.Next(),
		MakerID: maker.ID,
		TakerID: taker.ID,
		Price:   lvl.Price, // maker's resting price
		Qty:     qty,
	})

	taker.Filled += qty
	maker.Filled += qty
	lvl.reduce(qty)

	if maker.Remaining() == 0 {
		maker.Status = Filled
		lvl.PopHead()
		delete(b.orders, maker.ID)
		b.retire(maker)
		if lvl.Empty() {
			tree.DeleteLevel(lvl.Price)
		}
	} else {
		maker.Status = PartiallyFilled
	}

	if taker.Remaining() > 0 {
		taker.Status = PartiallyFilled
	}
	return trades
}

// rest enqueues the remainder of a Limit order on its own side.
func (b *OrderBook) rest(o *Order) {
	b.sideTree(o.Side).UpsertLevel(o.Price).Enqueue(o)
	b.orders[o.ID] = o
}

func (b *OrderBook) sideTree(s Side) *RBTree {
	if s == Bid {
		return b.Bids
	}
	return b.Asks
}

func (b *OrderBook) retire(o *Order) {
	if b.Retire != nil {
		b.Retire(o)
	}
}
