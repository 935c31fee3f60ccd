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
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Products(ctx context.Context) error
	Categories(ctx context.Context) error
	Orders(ctx context.Context) error
	Users(ctx context.Context) error
	Order(ctx context.Context, args []string) error
	Set(ctx context.Context, args []string) error
	AddItem(ctx context.Context, args []string) error
	Upload(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
}

// runREPL starts a read-eval-print loop for the back-office CLI.
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
//	  - help           — show available commands
//	  - register       — create an account
//	  - login          — authenticate
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - help                              — show available commands
//	  - (p)roducts, categories, orders    — list entities
//	  - users                             — list users (admin only)
//	  - order <id>                        — show an order with its lines
//	  - set <entity> <id> <field> <value> — inline-edit a field
//	  - additem <orderId|new> <productId> <qty> — add an order line
//	  - upload <productId> <path>         — upload a product image
//	  - delete <entity> <id>              — delete an entity
//	  - logout                            — log out
//	  - exit | quit                       — leave the program
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("bo> %s > ", statusFn()))
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
				printlnFn("Available commands: (p)roducts, categories, orders, users, order <id>, set, additem, upload, delete, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "p", "products":
			_ = a.Products(ctx)

		case "categories":
			_ = a.Categories(ctx)

		case "orders":
			_ = a.Orders(ctx)

		case "users":
			_ = a.Users(ctx)

		case "order":
			if len(args) == 0 {
				printlnFn("Usage: order <id>")
				continue
			}
			_ = a.Order(ctx, args)

		case "set":
			if len(args) < 4 {
				printlnFn("Usage: set <entity> <id> <field> <value>")
				continue
			}
			_ = a.Set(ctx, args)

		case "additem":
			if len(args) < 3 {
				printlnFn("Usage: additem <orderId|new> <productId> <quantity>")
				continue
			}
			_ = a.AddItem(ctx, args)

		case "upload":
			if len(args) < 2 {
				printlnFn("Usage: upload <productId> <path>")
				continue
			}
			_ = a.Upload(ctx, args)

		case "delete":
			if len(args) < 2 {
				printlnFn("Usage: delete <entity> <id>")
				continue
			}
			_ = a.Delete(ctx, args)

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
