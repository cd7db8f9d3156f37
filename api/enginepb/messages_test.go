package enginepb

import "testing"

func TestCodecRoundtrip(t *testing.T) {
	in := &SubmitOrderRequest{
		OrderId: 7,
		Side:    Side_SIDE_ASK,
		Type:    OrderType_ORDER_TYPE_IOC,
		Price:   101,
		Qty:     3,
	}

	c := Codec{}
	b, err := c.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	out := &SubmitOrderRequest{}
	if err := c.Unmarshal(b, out); err != nil {
		t.Fatal(err)
	}
	if *out != *in {
		t.Fatalf("roundtrip mismatch: %+v != %+v", out, in)
	}
}

func TestCodecRejectsForeignTypes(t *testing.T) {
	c := Codec{}
	if _, err := c.Marshal(struct{}{}); err == nil {
		t.Fatal("marshal of non-message must fail")
	}
	if err := c.Unmarshal(nil, struct{}{}); err == nil {
		t.Fatal("unmarshal into non-message must fail")
	}
}

func TestSubmitOrderResponseRepeatedTrades(t *testing.T) {
	in := &SubmitOrderResponse{
		Status: Status_STATUS_FILLED,
		Filled: 8,
		Trades: []*Trade{
			{Seq: 1, MakerId: 10, TakerId: 11, Price: 100, Qty: 5},
			{Seq: 2, MakerId: 12, TakerId: 11, Price: 101, Qty: 3},
		},
	}

	b, err := in.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	out := &SubmitOrderResponse{}
	if err := out.UnmarshalBinary(b); err != nil {
		t.Fatal(err)
	}

	if out.Status != in.Status || out.Filled != in.Filled || len(out.Trades) != 2 {
		t.Fatalf("roundtrip mismatch: %+v", out)
	}
	for i := range in.Trades {
		if *out.Trades[i] != *in.Trades[i] {
			t.Errorf("trade %d mismatch: %+v != %+v", i, out.Trades[i], in.Trades[i])
		}
	}
}

func TestGetDepthResponseSidesKeptApart(t *testing.T) {
	in := &GetDepthResponse{
		Bids: []*DepthLevel{{Price: 99, Qty: 5, Orders: 2}},
		Asks: []*DepthLevel{{Price: 101, Qty: 1, Orders: 1}, {Price: 102, Qty: 4, Orders: 3}},
	}

	b, err := in.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	out := &GetDepthResponse{}
	if err := out.UnmarshalBinary(b); err != nil {
		t.Fatal(err)
	}
	if len(out.Bids) != 1 || len(out.Asks) != 2 {
		t.Fatalf("sides mixed up: %+v", out)
	}
	if *out.Bids[0] != *in.Bids[0] || *out.Asks[1] != *in.Asks[1] {
		t.Fatal("level contents mismatch")
	}
}

func TestEmptyMessageRoundtrip(t *testing.T) {
	in := &GetTopOfBookRequest{}
	b, err := in.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	if len(b) != 0 {
		t.Fatalf("empty message must encode to nothing, got %d bytes", len(b))
	}
	if err := in.UnmarshalBinary(b); err != nil {
		t.Fatal(err)
	}
}
