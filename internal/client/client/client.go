package client

import (
	"context"
)

// Account is the caller's account as reported by the server.
type Account struct {
	Email string
	Name  string
	Coins int64
}

type Client interface {
	Close() error
	Login(ctx context.Context, email string, name *string) (*Account, error)
	WhoAmI(ctx context.Context) (*Account, error)
	AddCoins(ctx context.Context, amount int64) (int64, error)
	Ping(ctx context.Context) error
	Token() string
}
