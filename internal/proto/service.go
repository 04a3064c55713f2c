package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "coinkeeper.CoinKeeperService"

const (
	LoginFullMethod    = "/" + ServiceName + "/Login"
	WhoAmIFullMethod   = "/" + ServiceName + "/WhoAmI"
	AddCoinsFullMethod = "/" + ServiceName + "/AddCoins"
	PingFullMethod     = "/" + ServiceName + "/Ping"
)

// CoinKeeperServiceServer is implemented by the server.
type CoinKeeperServiceServer interface {
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	WhoAmI(context.Context, *WhoAmIRequest) (*WhoAmIResponse, error)
	AddCoins(context.Context, *AddCoinsRequest) (*AddCoinsResponse, error)
	Ping(context.Context, *PingRequest) (*PingResponse, error)
}

// UnimplementedCoinKeeperServiceServer answers every method with
// codes.Unimplemented. Embed it to stay forward compatible.
type UnimplementedCoinKeeperServiceServer struct{}

func (UnimplementedCoinKeeperServiceServer) Login(context.Context, *LoginRequest) (*LoginResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Login not implemented")
}

func (UnimplementedCoinKeeperServiceServer) WhoAmI(context.Context, *WhoAmIRequest) (*WhoAmIResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method WhoAmI not implemented")
}

func (UnimplementedCoinKeeperServiceServer) AddCoins(context.Context, *AddCoinsRequest) (*AddCoinsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method AddCoins not implemented")
}

func (UnimplementedCoinKeeperServiceServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}

func RegisterCoinKeeperServiceServer(s grpc.ServiceRegistrar, srv CoinKeeperServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// unaryHandler adapts a typed server method to grpc.MethodHandler.
func unaryHandler[Req any, Resp any](fullMethod string, call func(CoinKeeperServiceServer, context.Context, *Req) (*Resp, error)) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(CoinKeeperServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(CoinKeeperServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ServiceDesc describes CoinKeeperService for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CoinKeeperServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Login", Handler: unaryHandler(LoginFullMethod, CoinKeeperServiceServer.Login)},
		{MethodName: "WhoAmI", Handler: unaryHandler(WhoAmIFullMethod, CoinKeeperServiceServer.WhoAmI)},
		{MethodName: "AddCoins", Handler: unaryHandler(AddCoinsFullMethod, CoinKeeperServiceServer.AddCoins)},
		{MethodName: "Ping", Handler: unaryHandler(PingFullMethod, CoinKeeperServiceServer.Ping)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "coinkeeper.proto",
}
