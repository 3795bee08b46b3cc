package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it
// with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs. The real
// App type satisfies it; tests can provide a lightweight stub.
type execIface interface {
	isSignedIn() bool
	SignIn(ctx context.Context) error
	Accounts(ctx context.Context) error
	Show(ctx context.Context, arg string) error
	Alias(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL reads lines from the scanner, parses the first token as the
// command and dispatches to methods on 'a'. The loop exits on scanner
// EOF or when the user types "exit" or "quit".
//
// Signed out the REPL accepts: help, signin, exit. Signed in:
// help, accounts, show <id>, alias, logout, exit.
//
// Errors returned by handlers are ignored here; handlers report their
// own failures. That keeps the loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("dm> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		arg := ""
		if len(parts) > 1 {
			arg = parts[1]
		}

		switch cmd {
		case "help":
			if a.isSignedIn() {
				printlnFn("Available commands: accounts, show <id>, alias, logout, exit")
			} else {
				printlnFn("Available commands: signin, exit")
			}

		case "signin":
			_ = a.SignIn(ctx)

		case "accounts":
			_ = a.Accounts(ctx)

		case "show":
			_ = a.Show(ctx, arg)

		case "alias":
			_ = a.Alias(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
