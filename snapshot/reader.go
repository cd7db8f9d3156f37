package snapshot

import "kestrel/infra/memory"

// Reader marks the bounds of a consistent read against the live book.
// It is a thin adapter over memory.ReaderEpoch: while a Reader is
// between Begin and End, retired orders from its entry epoch are not
// reclaimed.
type Reader struct {
	epoch *memory.ReaderEpoch
}

func NewReader() *Reader {
	return &Reader{epoch: memory.NewReaderEpoch()}
}

func (r *Reader) Begin() {
	r.epoch.Enter()
}

func (r *Reader) End() {
	r.epoch.Exit()
}

// Epoch exposes the underlying epoch for reclaimers.
func (r *Reader) Epoch() *memory.ReaderEpoch {
	return r.epoch
}
