package proto

import (
	"context"

	"google.golang.org/grpc"
)

// CoinKeeperServiceClient is the client API for CoinKeeperService.
type CoinKeeperServiceClient interface {
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error)
	WhoAmI(ctx context.Context, in *WhoAmIRequest, opts ...grpc.CallOption) (*WhoAmIResponse, error)
	AddCoins(ctx context.Context, in *AddCoinsRequest, opts ...grpc.CallOption) (*AddCoinsResponse, error)
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
}

type coinKeeperServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewCoinKeeperServiceClient returns a stub that sends every call with the
// JSON content-subtype.
func NewCoinKeeperServiceClient(cc grpc.ClientConnInterface) CoinKeeperServiceClient {
	return &coinKeeperServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *coinKeeperServiceClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, LoginFullMethod, in, opts)
}

func (c *coinKeeperServiceClient) WhoAmI(ctx context.Context, in *WhoAmIRequest, opts ...grpc.CallOption) (*WhoAmIResponse, error) {
	return invoke[WhoAmIResponse](ctx, c.cc, WhoAmIFullMethod, in, opts)
}

func (c *coinKeeperServiceClient) AddCoins(ctx context.Context, in *AddCoinsRequest, opts ...grpc.CallOption) (*AddCoinsResponse, error) {
	return invoke[AddCoinsResponse](ctx, c.cc, AddCoinsFullMethod, in, opts)
}

func (c *coinKeeperServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, PingFullMethod, in, opts)
}
