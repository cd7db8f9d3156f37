package snapshot

import (
	"encoding/gob"
	"os"
	"path/filepath"
	"time"

	"kestrel/domain/orderbook"
)

const fileName = "snapshot.bin"

type Writer struct {
	Dir string
}

// Write persists the resting book. The file is written to a temp path
// and renamed over the previous snapshot, so a crash mid-write leaves
// the old snapshot intact.
func (w *Writer) Write(walSeq, tradeSeq uint64, book *orderbook.OrderBook) error {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return err
	}

	s := Snapshot{
		WalSeq:   walSeq,
		TradeSeq: tradeSeq,
		Created:  time.Now(),
		Orders:   make([]OrderEntry, 0, book.RestingCount()),
	}

	collect := func(lvl *orderbook.PriceLevel) bool {
		for o := lvl.Head(); o != nil; o = o.Next() {
			s.Orders = append(s.Orders, OrderEntry{
				ID:     o.ID,
				Side:   int(o.Side),
				Type:   int(o.Type),
				Price:  o.Price,
				Qty:    o.Qty,
				Filled: o.Filled,
			})
		}
		return true
	}
	book.BidsWalk(collect)
	book.AsksWalk(collect)

	tmp := filepath.Join(w.Dir, fileName+".tmp")
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	if err := gob.NewEncoder(f).Encode(&s); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	return os.Rename(tmp, filepath.Join(w.Dir, fileName))
}
