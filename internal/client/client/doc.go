// Package client contains the client-side transport for CoinKeeper.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface):
//     Login, WhoAmI, AddCoins and Ping.
//  2. A concrete gRPC implementation (see GRPCClient) that manages a
//     connection, remembers the session token issued by Login, attaches it to
//     every call via an interceptor, and maps gRPC status codes to sentinel
//     errors.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors that callers can match with
// errors.Is: ErrUnavailable, ErrUnauthorized, ErrInvalidArgument.
//
// GRPCClient is safe for concurrent use; the online status watcher pings
// while the REPL issues commands.
package client
