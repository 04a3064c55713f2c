package grpc

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/coinkeeper/internal/common"
	pb "github.com/dmitrijs2005/coinkeeper/internal/proto"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) Login(ctx context.Context, req *pb.LoginRequest) (*pb.LoginResponse, error) {

	email, err := common.ValidateEmail(req.Email)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	name := req.Name
	if name != nil && strings.TrimSpace(*name) == "" {
		name = nil
	}

	view, err := s.accounts.Login(ctx, email, name)
	if err != nil {
		s.logger.Error(ctx, "login failed", "error", err)
		return nil, s.toStatus(err)
	}

	return &pb.LoginResponse{Token: view.Token, Email: view.Email, Name: view.Name, Coins: view.Coins}, nil
}

func (s *GRPCServer) WhoAmI(ctx context.Context, req *pb.WhoAmIRequest) (*pb.WhoAmIResponse, error) {

	view, err := s.accounts.WhoAmI(ctx, credentialFromContext(ctx))
	if err != nil {
		return nil, s.toStatus(err)
	}

	return &pb.WhoAmIResponse{Token: view.Token, Email: view.Email, Name: view.Name, Coins: view.Coins}, nil
}

func (s *GRPCServer) AddCoins(ctx context.Context, req *pb.AddCoinsRequest) (*pb.AddCoinsResponse, error) {

	coins, err := s.accounts.AdjustCoins(ctx, credentialFromContext(ctx), req.Amount)
	if err != nil {
		return nil, s.toStatus(err)
	}

	return &pb.AddCoinsResponse{Coins: coins}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *pb.PingRequest) (*pb.PingResponse, error) {

	return &pb.PingResponse{Status: "OK"}, nil

}

// toStatus maps service errors onto gRPC status codes. Store and internal
// details are not sent to the caller.
func (s *GRPCServer) toStatus(err error) error {
	switch {
	case errors.Is(err, common.ErrorUnauthorized):
		return status.Error(codes.Unauthenticated, "unauthorized")
	case errors.Is(err, common.ErrInvalidArgument):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, "not found")
	case errors.Is(err, common.ErrorUnavailable):
		return status.Error(codes.Unavailable, common.ErrorUnavailable.Error())
	default:
		return status.Error(codes.Internal, "internal error")
	}
}
