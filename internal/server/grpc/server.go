// Package grpc exposes the account service over gRPC.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/coinkeeper/internal/logging"
	pb "github.com/dmitrijs2005/coinkeeper/internal/proto"
	"github.com/dmitrijs2005/coinkeeper/internal/server/services"
	"google.golang.org/grpc"
)

// AccountService is the subset of services.AccountService the handlers use.
type AccountService interface {
	Login(ctx context.Context, email string, name *string) (*services.AccountView, error)
	WhoAmI(ctx context.Context, credential string) (*services.AccountView, error)
	AdjustCoins(ctx context.Context, credential string, amount int64) (int64, error)
}

type GRPCServer struct {
	pb.UnimplementedCoinKeeperServiceServer
	address  string
	accounts AccountService
	logger   logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, accounts AccountService) *GRPCServer {
	return &GRPCServer{
		address:  a,
		logger:   l.With("module", "grpc_server"),
		accounts: accounts,
	}
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve serves on lis until ctx is cancelled, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {

	// creates gRPC-server
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.credentialInterceptor))

	// registers service
	pb.RegisterCoinKeeperServiceServer(srv, s)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
