package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/coinkeeper/internal/common"
	pb "github.com/dmitrijs2005/coinkeeper/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      pb.CoinKeeperServiceClient

	mu    sync.RWMutex
	token string
}

func withToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AuthorizationHeaderName)
	md.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+token)

	return metadata.NewOutgoingContext(ctx, md)
}

// tokenInterceptor attaches the session token, once known, to every call.
func (s *GRPCClient) tokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {

	if token := s.Token(); token != "" {
		ctx = withToken(ctx, token)
	}

	return invoker(ctx, method, req, reply, cc, opts...)
}

// NewCoinKeeperClientService connects to endpointURL. Extra dial options are
// appended after the defaults (insecure transport, token interceptor).
func NewCoinKeeperClientService(endpointURL string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	err := c.InitGRPCClient(opts...)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient(opts ...grpc.DialOption) error {

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.tokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(s.endpointURL, dialOpts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = pb.NewCoinKeeperServiceClient(conn)
	return nil
}

// Token returns the session token from the last successful Login.
func (s *GRPCClient) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *GRPCClient) setToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

func (s *GRPCClient) Login(ctx context.Context, email string, name *string) (*Account, error) {

	req := &pb.LoginRequest{Email: email, Name: name}

	resp, err := s.client.Login(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}

	s.setToken(resp.Token)

	return &Account{Email: resp.Email, Name: resp.Name, Coins: resp.Coins}, nil
}

func (s *GRPCClient) WhoAmI(ctx context.Context) (*Account, error) {

	resp, err := s.client.WhoAmI(ctx, &pb.WhoAmIRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}

	return &Account{Email: resp.Email, Name: resp.Name, Coins: resp.Coins}, nil
}

func (s *GRPCClient) AddCoins(ctx context.Context, amount int64) (int64, error) {

	resp, err := s.client.AddCoins(ctx, &pb.AddCoinsRequest{Amount: amount})
	if err != nil {
		return 0, s.mapError(err)
	}

	return resp.Coins, nil
}

func (s *GRPCClient) Ping(ctx context.Context) error {

	req := &pb.PingRequest{}

	resp, err := s.client.Ping(ctx, req)
	if err != nil {
		return s.mapError(err)
	}

	if resp.Status != "OK" {
		return ErrUnavailable
	}

	return nil

}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrInvalidArgument, st.Message())
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
