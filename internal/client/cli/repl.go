package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL dispatches to. App satisfies it;
// tests provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Me(ctx context.Context) error
	Inventory(ctx context.Context) error
	LowStock(ctx context.Context) error
	AddItem(ctx context.Context) error
	Suppliers(ctx context.Context) error
	Sales(ctx context.Context) error
	Optimize(ctx context.Context) error
	Orders(ctx context.Context) error
	Insights(ctx context.Context) error
	Pitch(ctx context.Context, args []string) error
	Report(ctx context.Context, args []string) error
	Logout(ctx context.Context) error
	report(ctx context.Context, err error)
}

const (
	guestHelp  = "Available commands: register, login, help, exit"
	memberHelp = "Available commands: me, inventory, lowstock, additem, suppliers, sales, optimize, orders, insights, pitch <file> [title], report <kind> [file], logout, help, exit"
)

// runREPL reads commands line by line and dispatches them to a. It returns
// on EOF or when the user types "exit" or "quit". Command errors are shown
// through a.report and never end the loop.
//
// Prompts inside commands read from the same r, so lines are taken with
// ReadString rather than a look-ahead scanner.
func runREPL(ctx context.Context, a execIface, statusFn func() string, r *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprintf(w, "pitchpoa %s> ", statusFn())
		line, err := r.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		err = nil
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, memberHelp)
			} else {
				fmt.Fprintln(w, guestHelp)
			}
		case "register":
			err = a.Register(ctx)
		case "login":
			err = a.Login(ctx)
		case "me":
			err = a.Me(ctx)
		case "inventory", "inv":
			err = a.Inventory(ctx)
		case "lowstock":
			err = a.LowStock(ctx)
		case "additem":
			err = a.AddItem(ctx)
		case "suppliers":
			err = a.Suppliers(ctx)
		case "sales":
			err = a.Sales(ctx)
		case "optimize":
			err = a.Optimize(ctx)
		case "orders":
			err = a.Orders(ctx)
		case "insights":
			err = a.Insights(ctx)
		case "pitch":
			err = a.Pitch(ctx, args)
		case "report":
			err = a.Report(ctx, args)
		case "logout":
			err = a.Logout(ctx)
		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return
		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}
		if err != nil {
			a.report(ctx, err)
		}
	}
}
