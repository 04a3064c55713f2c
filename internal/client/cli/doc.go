// Package cli provides the interactive CoinKeeper command-line client.
//
// It wires configuration and the gRPC client into a small REPL:
//
//	login <email> [name]   log in (creating the account on first use)
//	me                     show the current account
//	add <amount>           add (or, with a negative amount, remove) coins
//	ping                   check the server
//	help                   list commands
//	exit | quit            leave the program
//
// A background watcher pings the server periodically and reports when the
// client switches between online and offline mode.
package cli
