package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL drives. App satisfies it; tests
// use a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context) error
	Dashboard(ctx context.Context) error
	Vote(ctx context.Context) error
	Leaderboard(ctx context.Context) error
	Passport(ctx context.Context) error
	Share(ctx context.Context) error
	Refresh(ctx context.Context) error
	Status(ctx context.Context) error
	Forget(ctx context.Context) error
}

// runREPL reads commands line by line and dispatches them to a until EOF,
// "exit" or "quit". Command errors are reported by the handlers themselves.
//
//	Not logged in: help, login [handle], leaderboard, refresh, status, forget, exit
//	Logged in:     help, dashboard, vote, leaderboard, passport, share,
//	               refresh, status, forget, logout, exit
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintf(w, "tv [%s]> ", statusFn())

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			fmt.Fprintln(w)
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		switch cmd {
		case "help", "?":
			if a.isLoggedIn() {
				fmt.Fprintln(w, "Available commands: (d)ashboard, (v)ote, (lb) leaderboard, passport, share, refresh, status, forget, logout, exit")
			} else {
				fmt.Fprintln(w, "Available commands: login [handle], (lb) leaderboard, refresh, status, forget, exit")
			}

		case "login":
			_ = a.Login(ctx, args)

		case "logout":
			_ = a.Logout(ctx)

		case "d", "dashboard":
			_ = a.Dashboard(ctx)

		case "v", "vote":
			_ = a.Vote(ctx)

		case "lb", "leaderboard":
			_ = a.Leaderboard(ctx)

		case "passport":
			_ = a.Passport(ctx)

		case "share":
			_ = a.Share(ctx)

		case "refresh", "sync":
			_ = a.Refresh(ctx)

		case "status":
			_ = a.Status(ctx)

		case "forget":
			_ = a.Forget(ctx)

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}
	}
}
