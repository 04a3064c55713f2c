package cli

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/dmitrijs2005/coinkeeper/internal/client/client"
	"github.com/dmitrijs2005/coinkeeper/internal/client/config"
)

// fakeClient is an in-memory client.Client.
type fakeClient struct {
	mu sync.Mutex

	token string
	acc   client.Account

	loginErr  error
	whoAmIErr error
	addErr    error
	pingErr   error

	lastName *string
	pings    int
	closed   bool
}

func (f *fakeClient) Close() error { f.closed = true; return nil }

func (f *fakeClient) Login(ctx context.Context, email string, name *string) (*client.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastName = name
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	f.token = "tok"
	f.acc.Email = email
	if name != nil {
		f.acc.Name = *name
	}
	acc := f.acc
	return &acc, nil
}

func (f *fakeClient) WhoAmI(ctx context.Context) (*client.Account, error) {
	if f.whoAmIErr != nil {
		return nil, f.whoAmIErr
	}
	acc := f.acc
	return &acc, nil
}

func (f *fakeClient) AddCoins(ctx context.Context, amount int64) (int64, error) {
	if f.addErr != nil {
		return 0, f.addErr
	}
	f.acc.Coins = max(f.acc.Coins+amount, 0)
	return f.acc.Coins, nil
}

func (f *fakeClient) Ping(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pings++
	return f.pingErr
}

func (f *fakeClient) pingCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pings
}

func (f *fakeClient) Token() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

func newTestApp(c *fakeClient) *App {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	return &App{config: cfg, client: c}
}

// capturePrintln records everything printed through printlnFn.
func capturePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, fmt.Sprintln(a...))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}
