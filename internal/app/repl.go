package app

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
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	ListPets(ctx context.Context) error
	ShowPet(ctx context.Context, id string) error
	RegisterPet(ctx context.Context) error
	Upload(ctx context.Context) error
	DeleteUpload(ctx context.Context, path string) error
	SetLocale(name string) error
}

// runREPL reads a line from the provided scanner, parses the first token as
// the command, and dispatches to methods on 'a'. Unknown commands are
// reported back to the user. The loop exits on scanner EOF or when the user
// types "exit" or "quit".
//
// Errors returned by command handlers are ignored here; handlers print their
// own messages. This keeps the loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("voyage> %s ", statusFn()))
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
				printlnFn("Available commands: (p)ets, pet <id>, register, upload, delete <path>, locale <name>, logout, exit")
			} else {
				printlnFn("Available commands: login, locale <name>, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "p", "pets":
			_ = a.ListPets(ctx)

		case "pet":
			if len(args) == 0 {
				printlnFn("Usage: pet <id>")
				continue
			}
			_ = a.ShowPet(ctx, args[0])

		case "register":
			_ = a.RegisterPet(ctx)

		case "upload":
			_ = a.Upload(ctx)

		case "delete":
			if len(args) == 0 {
				printlnFn("Usage: delete <path>")
				continue
			}
			_ = a.DeleteUpload(ctx, args[0])

		case "locale":
			if len(args) == 0 {
				printlnFn("Usage: locale <name>")
				continue
			}
			_ = a.SetLocale(args[0])

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
