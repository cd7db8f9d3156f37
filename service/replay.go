package service

import (
	"fmt"
	"log"

	"kestrel/domain/orderbook"
	"kestrel/infra/memory"
	"kestrel/infra/sequence"
	entrywal "kestrel/infra/wal/entry"
	"kestrel/infra/wal/walpb"
	"kestrel/snapshot"
)

// Recover rebuilds in-memory state before the engine accepts traffic:
// load the latest snapshot, then replay intent records past it. The
// sequencer is reset to the snapshot's trade sequence first, so
// matches replayed from the log reissue the exact sequences they were
// assigned live. The outbox is never replayed; it is durable on its
// own.
func Recover(
	snapDir, walDir string,
	book *orderbook.OrderBook,
	pool *memory.Pool[orderbook.Order],
	seqGen *sequence.Sequencer,
) error {
	snap, err := snapshot.Load(snapDir, book, pool)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	seqGen.Reset(snap.TradeSeq)

	lastSeq, err := entrywal.Replay(walDir, snap.WalSeq, func(rec *entrywal.Record) error {
		switch rec.Type {
		case entrywal.RecordPlace:
			var m walpb.PlaceOrder
			if err := m.UnmarshalBinary(rec.Data); err != nil {
				return err
			}
			o := pool.Get()
			*o = orderbook.Order{
				ID:    m.OrderID,
				Side:  orderbook.Side(m.Side),
				Type:  orderbook.OrderType(m.Type),
				Price: m.Price,
				Qty:   m.Qty,
			}
			// Intents were validated before logging, so an error
			// here means the log itself is corrupt.
			if _, err := book.AddOrder(o); err != nil {
				pool.Put(o)
				return fmt.Errorf("replay place %d: %w", m.OrderID, err)
			}

		case entrywal.RecordCancel:
			var m walpb.CancelOrder
			if err := m.UnmarshalBinary(rec.Data); err != nil {
				return err
			}
			// Unknown id is a no-op, same as live.
			book.CancelOrder(m.OrderID)

		default:
			return fmt.Errorf("unknown record type %d at seq %d", rec.Type, rec.Seq)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}

	log.Printf("[service] recovery complete walSeq=%d tradeSeq=%d resting=%d",
		lastSeq, seqGen.Current(), book.RestingCount())
	return nil
}
