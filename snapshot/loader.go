package snapshot

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"kestrel/domain/orderbook"
	"kestrel/infra/memory"
)

// Load restores the resting book from the snapshot in dir, allocating
// orders out of pool. A missing snapshot is not an error; recovery
// then replays the WAL from sequence zero.
func Load(
	dir string,
	book *orderbook.OrderBook,
	pool *memory.Pool[orderbook.Order],
) (Snapshot, error) {
	f, err := os.Open(filepath.Join(dir, fileName))
	if err != nil {
		if os.IsNotExist(err) {
			return Snapshot{}, nil
		}
		return Snapshot{}, err
	}
	defer f.Close()

	var s Snapshot
	if err := gob.NewDecoder(f).Decode(&s); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}

	for _, e := range s.Orders {
		o := pool.Get()
		*o = orderbook.Order{
			ID:     e.ID,
			Side:   orderbook.Side(e.Side),
			Type:   orderbook.OrderType(e.Type),
			Price:  e.Price,
			Qty:    e.Qty,
			Filled: e.Filled,
		}
		if err := book.Restore(o); err != nil {
			pool.Put(o)
			return Snapshot{}, fmt.Errorf("restore order %d: %w", e.ID, err)
		}
	}

	return s, nil
}
