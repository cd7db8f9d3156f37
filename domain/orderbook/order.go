package orderbook

type Side int
type OrderType int
type Status int

const (
	Bid Side = iota
	Ask
)

func (s Side) String() string {
	if s == Bid {
		return "BID"
	}
	return "ASK"
}

// Opposite returns the side an incoming order matches against.
func (s Side) Opposite() Side {
	if s == Bid {
		return Ask
	}
	return Bid
}

const (
	Limit OrderType = iota
	Market
	IOC
)

const (
	Open Status = iota
	PartiallyFilled
	Filled
	Cancelled
)

func (s Status) String() string {
	switch s {
	case Open:
		return "OPEN"
	case PartiallyFilled:
		return "PARTIAL"
	case Filled:
		return "FILLED"
	case Cancelled:
		return "CANCELLED"
	default:
		return "UNKNOWN"
	}
}

// Terminal reports whether the order can never trade again.
func (s Status) Terminal() bool {
	return s == Filled || s == Cancelled
}

// Order is the unit submitted to the book. Prices and quantities are
// integer ticks; no floating point touches the matching path.
//
// next/prev are the intrusive FIFO links of the order's price level.
// The book owns every resting Order; callers only ever see copies.
type Order struct {
	ID     uint64
	Price  int64
	Qty    int64
	Filled int64

	Side   Side
	Type   OrderType
	Status Status

	next *Order
	prev *Order
}

// Remaining returns the quantity still open to match.
func (o *Order) Remaining() int64 {
	return o.Qty - o.Filled
}

// Next walks the price-level queue toward the back. Read-only.
func (o *Order) Next() *Order {
	return o.next
}

// Reset clears the order for reuse through a memory pool.
func (o *Order) Reset() { *o = Order{} }
