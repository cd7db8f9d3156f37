package memory

import "testing"

type thing struct {
	n int
}

func (t *thing) Reset() { t.n = 0 }

func TestRetireRingFIFO(t *testing.T) {
	r := NewRetireRing(8)

	for i := 1; i <= 3; i++ {
		if !r.Enqueue(&thing{n: i}) {
			t.Fatalf("enqueue %d failed", i)
		}
	}
	for i := 1; i <= 3; i++ {
		v := r.Dequeue()
		if v == nil || v.(*thing).n != i {
			t.Fatalf("dequeue %d got %v", i, v)
		}
	}
	if r.Dequeue() != nil {
		t.Fatal("empty ring must dequeue nil")
	}
}

func TestRetireRingFull(t *testing.T) {
	r := NewRetireRing(4)

	for i := 0; i < 4; i++ {
		if !r.Enqueue(&thing{}) {
			t.Fatalf("enqueue %d failed", i)
		}
	}
	if r.Enqueue(&thing{}) {
		t.Fatal("full ring must reject enqueue")
	}
	r.Dequeue()
	if !r.Enqueue(&thing{}) {
		t.Fatal("ring must accept after dequeue")
	}
}

func TestRetireRingSizeMustBePowerOfTwo(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for non power-of-two size")
		}
	}()
	NewRetireRing(6)
}

func TestReclaimWithNoActiveReaders(t *testing.T) {
	ring := NewRetireRing(8)
	pool := NewPool(func() *thing { return &thing{} })
	reader := NewReaderEpoch()

	ring.Enqueue(&thing{n: 42})
	ring.Enqueue(&thing{n: 43})

	AdvanceEpochAndReclaim(ring, pool, reader)

	if ring.Len() != 0 {
		t.Fatalf("ring should be drained, len=%d", ring.Len())
	}
	// Reset must have run before the object went back to the pool.
	got := pool.Get()
	if got.n != 0 {
		t.Fatalf("reclaimed object not reset: n=%d", got.n)
	}
}

func TestReclaimBlockedByActiveReader(t *testing.T) {
	ring := NewRetireRing(8)
	pool := NewPool(func() *thing { return &thing{} })
	reader := NewReaderEpoch()

	reader.Enter()
	ring.Enqueue(&thing{n: 1})

	AdvanceEpochAndReclaim(ring, pool, reader)
	if ring.Len() != 1 {
		t.Fatal("reclaim must not drain while a reader is active")
	}

	reader.Exit()
	AdvanceEpochAndReclaim(ring, pool, reader)
	if ring.Len() != 0 {
		t.Fatal("reclaim should drain once the reader exits")
	}
}
