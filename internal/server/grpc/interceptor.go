package grpc

import (
	"context"

	"github.com/dmitrijs2005/coinkeeper/internal/common"
	pb "github.com/dmitrijs2005/coinkeeper/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

// CredentialKey holds the raw bearer credential of a protected call.
const CredentialKey ctxKey = "credential"

var protectedMethods = map[string]bool{
	pb.WhoAmIFullMethod:   true,
	pb.AddCoinsFullMethod: true,
}

// credentialInterceptor rejects protected calls without an authorization
// value and hands the credential to the handler through the context. The
// credential itself is verified by the account service.
func (s *GRPCServer) credentialInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {

	if protectedMethods[info.FullMethod] {

		var credential string
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			values := md.Get(common.AuthorizationHeaderName)
			if len(values) > 0 {
				credential = values[0]
			}
		}
		if len(credential) == 0 {
			return nil, status.Error(codes.Unauthenticated, "missing token")
		}

		ctx = context.WithValue(ctx, CredentialKey, credential)

	}

	return handler(ctx, req)
}

func credentialFromContext(ctx context.Context) string {
	v, _ := ctx.Value(CredentialKey).(string)
	return v
}
