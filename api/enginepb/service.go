package enginepb

import (
	"context"

	"google.golang.org/grpc"
)

const Engine_ServiceName = "kestrel.engine.v1.Engine"

// EngineServer is the server API for the Engine service.
type EngineServer interface {
	SubmitOrder(context.Context, *SubmitOrderRequest) (*SubmitOrderResponse, error)
	CancelOrder(context.Context, *CancelOrderRequest) (*CancelOrderResponse, error)
	GetTopOfBook(context.Context, *GetTopOfBookRequest) (*GetTopOfBookResponse, error)
	GetDepth(context.Context, *GetDepthRequest) (*GetDepthResponse, error)
}

func RegisterEngineServer(s grpc.ServiceRegistrar, srv EngineServer) {
	s.RegisterService(&Engine_ServiceDesc, srv)
}

func _Engine_SubmitOrder_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(SubmitOrderRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EngineServer).SubmitOrder(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + Engine_ServiceName + "/SubmitOrder",
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(EngineServer).SubmitOrder(ctx, req.(*SubmitOrderRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Engine_CancelOrder_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(CancelOrderRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EngineServer).CancelOrder(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + Engine_ServiceName + "/CancelOrder",
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(EngineServer).CancelOrder(ctx, req.(*CancelOrderRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Engine_GetTopOfBook_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetTopOfBookRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EngineServer).GetTopOfBook(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + Engine_ServiceName + "/GetTopOfBook",
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(EngineServer).GetTopOfBook(ctx, req.(*GetTopOfBookRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Engine_GetDepth_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetDepthRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EngineServer).GetDepth(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + Engine_ServiceName + "/GetDepth",
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(EngineServer).GetDepth(ctx, req.(*GetDepthRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var Engine_ServiceDesc = grpc.ServiceDesc{
	ServiceName: Engine_ServiceName,
	HandlerType: (*EngineServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "SubmitOrder", Handler: _Engine_SubmitOrder_Handler},
		{MethodName: "CancelOrder", Handler: _Engine_CancelOrder_Handler},
		{MethodName: "GetTopOfBook", Handler: _Engine_GetTopOfBook_Handler},
		{MethodName: "GetDepth", Handler: _Engine_GetDepth_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "api/enginepb/engine.proto",
}

// EngineClient is the client API for the Engine service.
type EngineClient interface {
	SubmitOrder(ctx context.Context, in *SubmitOrderRequest, opts ...grpc.CallOption) (*SubmitOrderResponse, error)
	CancelOrder(ctx context.Context, in *CancelOrderRequest, opts ...grpc.CallOption) (*CancelOrderResponse, error)
	GetTopOfBook(ctx context.Context, in *GetTopOfBookRequest, opts ...grpc.CallOption) (*GetTopOfBookResponse, error)
	GetDepth(ctx context.Context, in *GetDepthRequest, opts ...grpc.CallOption) (*GetDepthResponse, error)
}

type engineClient struct {
	cc grpc.ClientConnInterface
}

func NewEngineClient(cc grpc.ClientConnInterface) EngineClient {
	return &engineClient{cc}
}

func (c *engineClient) SubmitOrder(ctx context.Context, in *SubmitOrderRequest, opts ...grpc.CallOption) (*SubmitOrderResponse, error) {
	out := new(SubmitOrderResponse)
	opts = append(opts, grpc.ForceCodec(Codec{}))
	if err := c.cc.Invoke(ctx, "/"+Engine_ServiceName+"/SubmitOrder", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *engineClient) CancelOrder(ctx context.Context, in *CancelOrderRequest, opts ...grpc.CallOption) (*CancelOrderResponse, error) {
	out := new(CancelOrderResponse)
	opts = append(opts, grpc.ForceCodec(Codec{}))
	if err := c.cc.Invoke(ctx, "/"+Engine_ServiceName+"/CancelOrder", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *engineClient) GetTopOfBook(ctx context.Context, in *GetTopOfBookRequest, opts ...grpc.CallOption) (*GetTopOfBookResponse, error) {
	out := new(GetTopOfBookResponse)
	opts = append(opts, grpc.ForceCodec(Codec{}))
	if err := c.cc.Invoke(ctx, "/"+Engine_ServiceName+"/GetTopOfBook", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *engineClient) GetDepth(ctx context.Context, in *GetDepthRequest, opts ...grpc.CallOption) (*GetDepthResponse, error) {
	out := new(GetDepthResponse)
	opts = append(opts, grpc.ForceCodec(Codec{}))
	if err := c.cc.Invoke(ctx, "/"+Engine_ServiceName+"/GetDepth", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
