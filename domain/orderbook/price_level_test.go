package orderbook

import "testing"

func TestPriceLevelEnqueueAndPop(t *testing.T) {
	lvl := &PriceLevel{Price: 100}

	a := &Order{ID: 1, Qty: 5}
	b := &Order{ID: 2, Qty: 3}
	lvl.Enqueue(a)
	lvl.Enqueue(b)

	if lvl.TotalQty != 8 || lvl.OrderCount != 2 {
		t.Fatalf("totals wrong: qty=%d count=%d", lvl.TotalQty, lvl.OrderCount)
	}
	if lvl.Head() != a {
		t.Fatal("head must be oldest")
	}

	if got := lvl.PopHead(); got != a {
		t.Fatal("pop must return oldest")
	}
	if lvl.TotalQty != 3 || lvl.Head() != b {
		t.Fatalf("after pop: qty=%d", lvl.TotalQty)
	}

	lvl.PopHead()
	if !lvl.Empty() || lvl.PopHead() != nil {
		t.Fatal("level should be empty")
	}
}

func TestPriceLevelEnqueueCountsRemaining(t *testing.T) {
	lvl := &PriceLevel{Price: 100}
	lvl.Enqueue(&Order{ID: 1, Qty: 10, Filled: 4})

	if lvl.TotalQty != 6 {
		t.Fatalf("TotalQty must track remaining, got %d", lvl.TotalQty)
	}
}

func TestPriceLevelUnlinkMiddle(t *testing.T) {
	lvl := &PriceLevel{Price: 100}
	a := &Order{ID: 1, Qty: 1}
	b := &Order{ID: 2, Qty: 2}
	c := &Order{ID: 3, Qty: 3}
	lvl.Enqueue(a)
	lvl.Enqueue(b)
	lvl.Enqueue(c)

	lvl.Unlink(b)

	if lvl.TotalQty != 4 || lvl.OrderCount != 2 {
		t.Fatalf("totals wrong after unlink: qty=%d count=%d", lvl.TotalQty, lvl.OrderCount)
	}
	if lvl.Head() != a || a.Next() != c || c.Next() != nil {
		t.Fatal("queue links broken after middle unlink")
	}
}

func TestPriceLevelUnlinkEnds(t *testing.T) {
	lvl := &PriceLevel{Price: 100}
	a := &Order{ID: 1, Qty: 1}
	b := &Order{ID: 2, Qty: 1}
	lvl.Enqueue(a)
	lvl.Enqueue(b)

	lvl.Unlink(a)
	if lvl.Head() != b {
		t.Fatal("unlink head must promote next")
	}
	lvl.Unlink(b)
	if !lvl.Empty() {
		t.Fatal("unlink tail must empty the level")
	}
}

func TestPriceLevelReduce(t *testing.T) {
	lvl := &PriceLevel{Price: 100}
	o := &Order{ID: 1, Qty: 10}
	lvl.Enqueue(o)

	o.Filled += 4
	lvl.reduce(4)

	if lvl.TotalQty != 6 {
		t.Fatalf("reduce not applied, qty=%d", lvl.TotalQty)
	}
	lvl.PopHead()
	if lvl.TotalQty != 0 {
		t.Fatalf("pop after reduce must zero the level, qty=%d", lvl.TotalQty)
	}
}
