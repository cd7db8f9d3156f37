package orderbook

// PriceLevel is the FIFO queue of resting orders at a single price.
// TotalQty tracks the aggregate remaining quantity, so partial fills
// must go through reduce rather than mutating orders behind its back.
type PriceLevel struct {
	Price int64

	head *Order
	tail *Order

	TotalQty   int64
	OrderCount int
}

func (p *PriceLevel) Enqueue(o *Order) {
	if p.head == nil {
		p.head = o
		p.tail = o
	} else {
		p.tail.next = o
		o.prev = p.tail
		p.tail = o
	}
	p.TotalQty += o.Remaining()
	p.OrderCount++
}

// Head returns the oldest resting order. Read-only.
func (p *PriceLevel) Head() *Order {
	return p.head
}

func (p *PriceLevel) Empty() bool {
	return p.head == nil
}

// PopHead removes and returns the oldest order. The caller must have
// already accounted its quantity via reduce if it was filled.
func (p *PriceLevel) PopHead() *Order {
	o := p.head
	if o == nil {
		return nil
	}

	p.head = o.next
	if p.head != nil {
		p.head.prev = nil
	} else {
		p.tail = nil
	}

	o.next = nil
	o.prev = nil

	p.TotalQty -= o.Remaining()
	p.OrderCount--

	return o
}

// Unlink removes an order from the middle of the queue without
// disturbing the relative order of its neighbours.
func (p *PriceLevel) Unlink(o *Order) {
	if o.prev != nil {
		o.prev.next = o.next
	} else {
		p.head = o.next
	}
	if o.next != nil {
		o.next.prev = o.prev
	} else {
		p.tail = o.prev
	}
	o.next = nil
	o.prev = nil

	p.TotalQty -= o.Remaining()
	p.OrderCount--
}

// reduce accounts a partial fill against the aggregate quantity.
func (p *PriceLevel) reduce(qty int64) {
	p.TotalQty -= qty
}
