package memory

import "sync/atomic"

// GlobalEpoch monotonically increases.
var GlobalEpoch atomic.Uint64

const inactive = ^uint64(0)

// ReaderEpoch marks when a reader entered a read section.
type ReaderEpoch struct {
	epoch atomic.Uint64
}

// NewReaderEpoch returns a reader that is initially inactive.
func NewReaderEpoch() *ReaderEpoch {
	r := &ReaderEpoch{}
	r.epoch.Store(inactive)
	return r
}

func (r *ReaderEpoch) Enter() {
	r.epoch.Store(GlobalEpoch.Load())
}

func (r *ReaderEpoch) Exit() {
	r.epoch.Store(inactive)
}

func (r *ReaderEpoch) Value() uint64 {
	return r.epoch.Load()
}

// ReclaimablePool is the only requirement for reclamation.
// It is intentionally type-erased.
type ReclaimablePool interface {
	PutAny(any)
}

// Resettable objects are cleared before returning to the pool.
type Resettable interface {
	Reset()
}

// AdvanceEpochAndReclaim advances the global epoch and drains the ring
// back into the pool while no reader is still inside a read section.
// FIFO order guarantees that if the oldest retiree is not yet safe,
// neither is anything behind it.
func AdvanceEpochAndReclaim(
	ring *RetireRing,
	pool ReclaimablePool,
	readers ...*ReaderEpoch,
) {
	GlobalEpoch.Add(1)
	min := minReaderEpoch(readers...)

	for {
		if min != inactive {
			return
		}
		obj := ring.Dequeue()
		if obj == nil {
			return
		}
		if r, ok := obj.(Resettable); ok {
			r.Reset()
		}
		pool.PutAny(obj)
	}
}

func minReaderEpoch(rs ...*ReaderEpoch) uint64 {
	min := inactive
	for _, r := range rs {
		if r == nil {
			continue
		}
		v := r.Value()
		if v < min {
			min = v
		}
	}
	return min
}
