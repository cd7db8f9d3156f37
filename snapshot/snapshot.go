package snapshot

import "time"

// Snapshot is the durable form of the resting book. WalSeq is the
// intent-log sequence the snapshot covers; TradeSeq is the last trade
// sequence issued, restored into the sequencer so replayed matches
// reissue the same sequences.
type Snapshot struct {
	WalSeq   uint64
	TradeSeq uint64
	Created  time.Time
	Orders   []OrderEntry
}

// OrderEntry is one resting order. Orders appear best-first per side,
// FIFO within a level, so restoring in slice order rebuilds identical
// queue positions.
type OrderEntry struct {
	ID     uint64
	Side   int
	Type   int
	Price  int64
	Qty    int64
	Filled int64
}
