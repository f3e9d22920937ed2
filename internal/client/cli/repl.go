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
	Scan(ctx context.Context, imagePath string) error
	Login(ctx context.Context) error
	Signup(ctx context.Context) error
	Forgot(ctx context.Context) error
	Back(ctx context.Context) error
	Show(ctx context.Context) error
	SetFactor(ctx context.Context, factor string, value string) error
	AddEvent(ctx context.Context) error
	RemoveEvent(ctx context.Context, id string) error
	Import(ctx context.Context) error
	Accept(ctx context.Context, ids []string) error
	Deny(ctx context.Context) error
	Forecast(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the Social Battery CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help             - show available commands
//	  - scan [image.jpg] - face-scan sign-in (omit the file to scan the Digital Aura)
//	  - login            - password sign-in
//	  - signup           - create an account
//	  - forgot           - reset a forgotten password
//	  - back             - return to the previous screen
//	  - exit | quit      - leave the program
//
//	Logged in:
//	  - help             - show available commands
//	  - show             - display parameters, hazards and the last forecast
//	  - charge <n>       - set current battery (0-100)
//	  - eye <n>          - set eye contact intensity (1-10)
//	  - talk <n>         - set small talk density (1-10)
//	  - add              - declare a hazard event
//	  - remove <id>      - remove a hazard event
//	  - import           - sync the G-Calendar
//	  - accept [ids...]  - accept pending calendar events (all when no ids)
//	  - deny             - deny every pending event
//	  - forecast         - consult the oracle
//	  - logout           - sign out
//	  - exit | quit      - leave the program
//
// Any errors returned by command handlers are printed here; handlers keep
// their own state consistent on failure.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("sbf> %s > ", statusFn()))
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

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: show, charge <n>, eye <n>, talk <n>, add, remove <id>, import, accept [ids], deny, forecast, logout, exit")
			} else {
				printlnFn("Available commands: scan [image.jpg], login, signup, forgot, back, exit")
			}

		case "scan":
			imagePath := ""
			if len(args) > 0 {
				imagePath = args[0]
			}
			err = a.Scan(ctx, imagePath)

		case "login":
			err = a.Login(ctx)

		case "signup":
			err = a.Signup(ctx)

		case "forgot":
			err = a.Forgot(ctx)

		case "back":
			err = a.Back(ctx)

		case "show":
			err = a.Show(ctx)

		case "charge", "eye", "talk":
			if len(args) != 1 {
				printlnFn("Usage:", cmd, "<n>")
				continue
			}
			err = a.SetFactor(ctx, cmd, args[0])

		case "add":
			err = a.AddEvent(ctx)

		case "remove":
			if len(args) != 1 {
				printlnFn("Usage: remove <id>")
				continue
			}
			err = a.RemoveEvent(ctx, args[0])

		case "import":
			err = a.Import(ctx)

		case "accept":
			err = a.Accept(ctx, args)

		case "deny":
			err = a.Deny(ctx)

		case "forecast":
			err = a.Forecast(ctx)

		case "logout":
			err = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye! Recharge responsibly.")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err.Error())
		}
	}
}
