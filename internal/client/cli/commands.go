package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/coinkeeper/internal/client/client"
)

var errUsage = errors.New("usage")

func (app *App) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if app.config == nil || app.config.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, app.config.RequestTimeout)
}

// report prints a user-facing message for err and returns it unchanged.
func report(err error) error {
	switch {
	case errors.Is(err, client.ErrUnavailable):
		printlnFn("Server unavailable, try again later")
	case errors.Is(err, client.ErrUnauthorized):
		printlnFn("Not logged in (use: login <email> [name])")
	case errors.Is(err, client.ErrInvalidArgument):
		printlnFn("Rejected:", err.Error())
	default:
		printlnFn("Error:", err.Error())
	}
	return err
}

func printAccount(acc *client.Account) {
	printlnFn(fmt.Sprintf("%s <%s>, coins: %d", acc.Name, acc.Email, acc.Coins))
}

// Login handles "login <email> [name...]". Words after the email form the
// display name.
func (app *App) Login(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: login <email> [name]")
		return errUsage
	}

	var name *string
	if len(args) > 1 {
		n := strings.Join(args[1:], " ")
		name = &n
	}

	ctx, cancel := app.withTimeout(ctx)
	defer cancel()

	acc, err := app.client.Login(ctx, args[0], name)
	if err != nil {
		return report(err)
	}

	app.setEmail(acc.Email)
	printAccount(acc)
	return nil
}

func (app *App) Me(ctx context.Context) error {
	if !app.isLoggedIn() {
		return report(client.ErrUnauthorized)
	}

	ctx, cancel := app.withTimeout(ctx)
	defer cancel()

	acc, err := app.client.WhoAmI(ctx)
	if err != nil {
		return report(err)
	}

	printAccount(acc)
	return nil
}

// Add handles "add <amount>"; negative amounts remove coins.
func (app *App) Add(ctx context.Context, args []string) error {
	if len(args) != 1 {
		printlnFn("Usage: add <amount>")
		return errUsage
	}

	amount, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		printlnFn("Amount must be an integer:", args[0])
		return errUsage
	}

	if !app.isLoggedIn() {
		return report(client.ErrUnauthorized)
	}

	ctx, cancel := app.withTimeout(ctx)
	defer cancel()

	coins, err := app.client.AddCoins(ctx, amount)
	if err != nil {
		return report(err)
	}

	printlnFn(fmt.Sprintf("Balance: %d", coins))
	return nil
}

func (app *App) Ping(ctx context.Context) error {
	ctx, cancel := app.withTimeout(ctx)
	defer cancel()

	if err := app.client.Ping(ctx); err != nil {
		app.setMode(ModeOffline)
		return report(err)
	}

	app.setMode(ModeOnline)
	printlnFn("OK")
	return nil
}
