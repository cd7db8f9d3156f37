// Package broadcaster drains the trade outbox to Kafka. It is the only
// component that talks to the broker for trades, and it never touches
// the book, so broker slowness cannot stall matching.
package broadcaster

import (
	"context"
	"encoding/binary"
	"errors"
	"log"
	"time"

	exitwal "kestrel/infra/wal/exit"

	"github.com/IBM/sarama"
)

const drainInterval = 250 * time.Millisecond

type Broadcaster struct {
	outbox   *exitwal.Outbox
	producer sarama.SyncProducer
	topic    string
}

func New(outbox *exitwal.Outbox, brokers []string, topic string) (*Broadcaster, error) {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 5

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, err
	}

	return &Broadcaster{
		outbox:   outbox,
		producer: producer,
		topic:    topic,
	}, nil
}

// Run drains the outbox on a ticker until ctx is cancelled. It runs in
// the caller's goroutine.
func (b *Broadcaster) Run(ctx context.Context) {
	log.Println("[broadcaster] started")

	ticker := time.NewTicker(drainInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("[broadcaster] stopped")
			return
		case <-ticker.C:
			b.drainOnce()
		}
	}
}

// drainOnce walks pending records in sequence order. Each record is
// marked SENT before the broker call and ACKED after, so a crash at
// any point resends rather than drops. Send failures stop the walk;
// later trades must not overtake earlier ones on the wire.
var errStopDrain = errors.New("stop drain")

func (b *Broadcaster) drainOnce() {
	err := b.outbox.ScanPending(func(seq uint64, rec exitwal.Record) error {
		if err := b.outbox.MarkSent(seq, &rec); err != nil {
			return err
		}

		msg := &sarama.ProducerMessage{
			Topic: b.topic,
			Key:   sarama.ByteEncoder(keyFor(seq)),
			Value: sarama.ByteEncoder(rec.Payload),
		}

		if _, _, err := b.producer.SendMessage(msg); err != nil {
			log.Printf("[broadcaster] send seq=%d failed: %v", seq, err)
			return errStopDrain // retry on the next tick
		}

		return b.outbox.MarkAcked(seq, &rec)
	})
	if err != nil && !errors.Is(err, errStopDrain) {
		log.Printf("[broadcaster] drain failed: %v", err)
	}
}

func (b *Broadcaster) Close() error {
	return b.producer.Close()
}

func keyFor(seq uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, seq)
	return buf
}
