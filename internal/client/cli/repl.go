package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context, args []string) error
	Me(ctx context.Context) error
	Add(ctx context.Context, args []string) error
	Ping(ctx context.Context) error
}

// runREPL reads commands from scanner and dispatches them to a until EOF or
// "exit"/"quit". Handler errors are already reported to the user by the
// handlers themselves and do not stop the loop.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("coins %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: me, add <amount>, login <email> [name], ping, exit")
			} else {
				printlnFn("Available commands: login <email> [name], ping, exit")
			}

		case "login":
			_ = a.Login(ctx, args)

		case "me":
			_ = a.Me(ctx)

		case "add":
			_ = a.Add(ctx, args)

		case "ping":
			_ = a.Ping(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
