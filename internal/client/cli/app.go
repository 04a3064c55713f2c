package cli

import (
	"bufio"
	"context"
	"log"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/coinkeeper/internal/client/client"
	"github.com/dmitrijs2005/coinkeeper/internal/client/config"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config *config.Config
	client client.Client

	mu    sync.Mutex
	email string
	Mode  Mode
}

func NewApp(c *config.Config) (*App, error) {

	apiClient, err := client.NewCoinKeeperClientService(c.ServerEndpointAddr)
	if err != nil {
		return nil, err
	}

	return &App{config: c, client: apiClient}, nil
}

func (app *App) setMode(mode Mode) {
	app.mu.Lock()
	defer app.mu.Unlock()
	if app.Mode != mode {
		app.Mode = mode
		log.Printf("Switched to %s mode\n", mode)
	}
}

func (app *App) setEmail(email string) {
	app.mu.Lock()
	app.email = email
	app.mu.Unlock()
}

func (app *App) isLoggedIn() bool {
	return app.client.Token() != ""
}

func (app *App) getStatus() string {
	app.mu.Lock()
	defer app.mu.Unlock()

	s := ""
	if app.email != "" {
		s = app.email + " "
	}
	if app.Mode != "" {
		s = s + string(app.Mode)
	}
	if s != "" {
		s = "(" + s + ")"
	}
	return s
}

// Run starts the online watcher and the REPL on stdin. It returns when the
// user exits or stdin is closed.
func (app *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer func() { _ = app.client.Close() }()

	log.Println("Welcome to CoinKeeper CLI (type 'help' for commands)")

	go app.StartOnlineStatusWatcher(ctx, app.config.OnlineCheckInterval)

	runREPL(ctx, app, app.getStatus, bufio.NewScanner(os.Stdin))
}

// StartOnlineStatusWatcher pings the server every interval and flips Mode
// accordingly until ctx is done.
func (app *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := app.client.Ping(pingCtx)
			cancel()

			if err != nil {
				app.setMode(ModeOffline)
			} else {
				app.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
