// Package grpcserver adapts OrderService to the gRPC surface.
package grpcserver

import (
	"context"
	"errors"
	"log"

	"kestrel/api/enginepb"
	"kestrel/domain/orderbook"
	"kestrel/service"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const defaultDepthLevels = 10

// Server adapts OrderService to gRPC.
type Server struct {
	svc *service.OrderService
}

func NewServer(svc *service.OrderService) *Server {
	return &Server{svc: svc}
}

// -------------------- Commands --------------------

func (s *Server) SubmitOrder(
	ctx context.Context,
	req *enginepb.SubmitOrderRequest,
) (*enginepb.SubmitOrderResponse, error) {
	if req.OrderId == 0 {
		return nil, status.Error(codes.InvalidArgument, "order id must be non-zero")
	}

	trades, err := s.svc.Submit(
		req.OrderId,
		toSide(req.Side),
		toType(req.Type),
		req.Price,
		req.Qty,
	)
	if err != nil {
		return nil, toStatus(err)
	}

	var filled int64
	resp := &enginepb.SubmitOrderResponse{
		Trades: make([]*enginepb.Trade, 0, len(trades)),
	}
	for _, t := range trades {
		filled += t.Qty
		resp.Trades = append(resp.Trades, &enginepb.Trade{
			Seq:     t.Seq,
			MakerId: t.MakerID,
			TakerId: t.TakerID,
			Price:   t.Price,
			Qty:     t.Qty,
		})
	}
	resp.Filled = filled
	resp.Status = submitStatus(req, filled)

	log.Printf("[grpc] SubmitOrder id=%d side=%v type=%v price=%d qty=%d trades=%d",
		req.OrderId, req.Side, req.Type, req.Price, req.Qty, len(trades))

	return resp, nil
}

func (s *Server) CancelOrder(
	ctx context.Context,
	req *enginepb.CancelOrderRequest,
) (*enginepb.CancelOrderResponse, error) {
	if req.OrderId == 0 {
		return nil, status.Error(codes.InvalidArgument, "order id must be non-zero")
	}

	final, ok, err := s.svc.Cancel(req.OrderId)
	if err != nil {
		return nil, toStatus(err)
	}

	log.Printf("[grpc] CancelOrder id=%d cancelled=%v", req.OrderId, ok)

	resp := &enginepb.CancelOrderResponse{Cancelled: ok}
	if ok {
		resp.Remaining = final.Remaining()
	}
	return resp, nil
}

// -------------------- Queries --------------------

func (s *Server) GetTopOfBook(
	ctx context.Context,
	req *enginepb.GetTopOfBookRequest,
) (*enginepb.GetTopOfBookResponse, error) {
	resp := &enginepb.GetTopOfBookResponse{}

	if bid, ok := s.svc.BestBid(); ok {
		resp.HasBid = true
		resp.BidPrice = bid.Price
		resp.BidQty = bid.Qty
	}
	if ask, ok := s.svc.BestAsk(); ok {
		resp.HasAsk = true
		resp.AskPrice = ask.Price
		resp.AskQty = ask.Qty
	}
	return resp, nil
}

func (s *Server) GetDepth(
	ctx context.Context,
	req *enginepb.GetDepthRequest,
) (*enginepb.GetDepthResponse, error) {
	levels := int(req.Levels)
	if levels <= 0 {
		levels = defaultDepthLevels
	}

	snap := s.svc.Depth(levels)

	return &enginepb.GetDepthResponse{
		Bids: toLevels(snap.Bids),
		Asks: toLevels(snap.Asks),
	}, nil
}

// -------------------- Converters --------------------

func toSide(s enginepb.Side) orderbook.Side {
	if s == enginepb.Side_SIDE_ASK {
		return orderbook.Ask
	}
	return orderbook.Bid
}

func toType(t enginepb.OrderType) orderbook.OrderType {
	switch t {
	case enginepb.OrderType_ORDER_TYPE_MARKET:
		return orderbook.Market
	case enginepb.OrderType_ORDER_TYPE_IOC:
		return orderbook.IOC
	default:
		return orderbook.Limit
	}
}

func toLevels(in []orderbook.DepthLevel) []*enginepb.DepthLevel {
	out := make([]*enginepb.DepthLevel, len(in))
	for i, l := range in {
		out[i] = &enginepb.DepthLevel{
			Price:  l.Price,
			Qty:    l.Qty,
			Orders: uint32(l.Orders),
		}
	}
	return out
}

// submitStatus derives the taker's final status from what got filled.
// A Limit remainder rests open; Market/IOC remainders are cancelled.
func submitStatus(req *enginepb.SubmitOrderRequest, filled int64) enginepb.Status {
	switch {
	case filled >= req.Qty:
		return enginepb.Status_STATUS_FILLED
	case req.Type == enginepb.OrderType_ORDER_TYPE_LIMIT && filled > 0:
		return enginepb.Status_STATUS_PARTIALLY_FILLED
	case req.Type == enginepb.OrderType_ORDER_TYPE_LIMIT:
		return enginepb.Status_STATUS_OPEN
	default:
		return enginepb.Status_STATUS_CANCELLED
	}
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, orderbook.ErrInvalidPrice),
		errors.Is(err, orderbook.ErrInvalidQuantity):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, orderbook.ErrDuplicateID):
		return status.Error(codes.AlreadyExists, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
