// Package kafka holds the market-data side of broker integration:
// best-effort JSON depth snapshots for consumers that want a live view
// of the book. Trades take the durable outbox path instead.
package kafka

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"kestrel/domain/orderbook"

	"github.com/segmentio/kafka-go"
)

type DepthPublisher struct {
	writer *kafka.Writer
	symbol string
}

// depthMessage is the published form of a depth snapshot. Spread and
// mid are included when both sides are non-empty so consumers do not
// have to recompute them.
type depthMessage struct {
	V      int          `json:"v"`
	Symbol string       `json:"symbol"`
	Time   int64        `json:"time"`
	Bids   []depthLevel `json:"bids"`
	Asks   []depthLevel `json:"asks"`
	Spread *int64       `json:"spread,omitempty"`
	Mid    *int64       `json:"mid,omitempty"`
}

type depthLevel struct {
	Price  int64 `json:"price"`
	Qty    int64 `json:"qty"`
	Orders int   `json:"orders"`
}

func NewDepthPublisher(brokers []string, topic, symbol string) *DepthPublisher {
	return &DepthPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			RequiredAcks: kafka.RequireOne,
			Async:        false,
			BatchTimeout: 10 * time.Millisecond,
		},
		symbol: symbol,
	}
}

// Publish writes one snapshot, keyed by symbol so all snapshots for a
// symbol land on one partition in order.
func (p *DepthPublisher) Publish(ctx context.Context, snap orderbook.DepthSnapshot) error {
	msg := depthMessage{
		V:      1,
		Symbol: p.symbol,
		Time:   time.Now().UnixNano(),
		Bids:   convertLevels(snap.Bids),
		Asks:   convertLevels(snap.Asks),
	}
	if len(snap.Bids) > 0 && len(snap.Asks) > 0 {
		bestBid := snap.Bids[0].Price
		bestAsk := snap.Asks[0].Price
		spread := bestAsk - bestBid
		mid := bestBid + spread/2
		msg.Spread = &spread
		msg.Mid = &mid
	}

	value, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(p.symbol + "/" + strconv.FormatInt(msg.Time, 10)),
		Value: value,
	})
}

func (p *DepthPublisher) Close() error {
	return p.writer.Close()
}

func convertLevels(in []orderbook.DepthLevel) []depthLevel {
	out := make([]depthLevel, len(in))
	for i, l := range in {
		out[i] = depthLevel{Price: l.Price, Qty: l.Qty, Orders: l.Orders}
	}
	return out
}
