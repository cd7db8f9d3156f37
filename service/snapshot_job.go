package service

import (
	"context"
	"log"
	"time"

	"kestrel/domain/orderbook"
	"kestrel/snapshot"
)

// DepthPublisher is the market-data sink used by the snapshot job.
// infra/kafka provides the real one; tests pass nil or a fake.
type DepthPublisher interface {
	Publish(ctx context.Context, snap orderbook.DepthSnapshot) error
}

// StartSnapshotJob periodically persists the book, truncates both logs
// behind the snapshot, and publishes a depth update. The read lock is
// held while walking the book, so each snapshot is a consistent cut.
func (s *OrderService) StartSnapshotJob(
	ctx context.Context,
	dir string,
	interval time.Duration,
	depthPub DepthPublisher,
	depthLevels int,
) {
	w := &snapshot.Writer{Dir: dir}

	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				s.snapshotOnce(ctx, w, depthPub, depthLevels)
			}
		}
	}()
}

func (s *OrderService) snapshotOnce(
	ctx context.Context,
	w *snapshot.Writer,
	depthPub DepthPublisher,
	depthLevels int,
) {
	s.mu.RLock()
	walSeq := s.wal.LastSeq()
	tradeSeq := s.seq.Current()

	err := w.Write(walSeq, tradeSeq, s.book)
	if err == nil {
		// Sealed segments fully covered by the snapshot are dead.
		// Truncation happens under the read lock so no append can
		// rotate segments underneath it.
		if terr := s.wal.TruncateBefore(walSeq); terr != nil {
			log.Printf("[service] wal truncate failed: %v", terr)
		}
	}

	var depth orderbook.DepthSnapshot
	if depthPub != nil {
		depth = s.book.Depth(depthLevels)
	}
	s.mu.RUnlock()

	if err != nil {
		log.Printf("[service] snapshot write failed: %v", err)
		return
	}

	// Acked trades at or below the snapshot's trade sequence have been
	// both published and made recoverable; drop them.
	if err := s.outbox.TruncateAckedUpTo(tradeSeq); err != nil {
		log.Printf("[service] outbox truncate failed: %v", err)
	}

	if depthPub != nil {
		if err := depthPub.Publish(ctx, depth); err != nil {
			log.Printf("[service] depth publish failed: %v", err)
		}
	}
}
