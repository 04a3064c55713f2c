package server

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/coinkeeper/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.Storage = config.StorageMemory
	c.EndpointAddrGRPC = "127.0.0.1:0"
	c.EndpointAddrHTTP = "127.0.0.1:0"
	c.LogLevel = "error"
	c.ShutdownTimeout = time.Second
	return c
}

func TestNewApp_Memory(t *testing.T) {
	app, err := NewApp(context.Background(), memoryConfig())
	require.NoError(t, err)
	require.NotNil(t, app.accounts)
	require.NotNil(t, app.repos)

	view, err := app.accounts.Login(context.Background(), "a@x.com", nil)
	require.NoError(t, err)
	assert.Equal(t, "a", view.Name)
}

func TestNewApp_InvalidConfig(t *testing.T) {
	c := memoryConfig()
	c.Storage = "mongo"

	_, err := NewApp(context.Background(), c)
	require.Error(t, err)
}

func TestNewApp_RedisUnreachable(t *testing.T) {
	c := memoryConfig()
	c.Storage = config.StoragePostgres
	c.DatabaseDSN = "postgres://u:p@127.0.0.1:1/db?sslmode=disable"
	c.RedisURL = "not a url"

	_, err := NewApp(context.Background(), c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis init error")
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	app, err := NewApp(context.Background(), memoryConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestApp_RunStopsWhenListenFails(t *testing.T) {
	c := memoryConfig()
	c.EndpointAddrHTTP = "bad::addr"

	app, err := NewApp(context.Background(), c)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		app.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after listener failure")
	}
}
