package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn and printfFn are test seams for user-facing output. In tests,
// replace them with stubs.
var (
	printlnFn = fmt.Println
	printfFn  = fmt.Printf
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	hasRaffle() bool
	listRaffles(ctx context.Context) error
	openRaffle(ctx context.Context, id string) error
	progress(ctx context.Context) error
	buy(ctx context.Context, args []string) error
	verify(ctx context.Context, args []string) error
	drawFile(ctx context.Context, args []string) error
}

// runREPL starts a simple read–eval–print loop for the PRIZO CLI.
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
//	No raffle open:
//	  - help            — show available commands
//	  - list            — list raffles on sale
//	  - open <id>       — select a raffle
//	  - exit | quit     — leave the program
//
//	Raffle open:
//	  - help            — show available commands
//	  - progress        — show sold/remaining counters
//	  - buy [qty]       — reserve tickets and submit a payment
//	  - verify [number] — check the status of a ticket
//	  - draw <file> [n] — run a winner draw from a participant CSV
//	  - exit | quit     — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("prizo %s> ", statusFn()))
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
			if a.hasRaffle() {
				printlnFn("Available commands: list, open <id>, progress, buy [qty], verify [number], draw <file> [n], exit")
			} else {
				printlnFn("Available commands: list, open <id>, exit")
			}

		case "list":
			_ = a.listRaffles(ctx)

		case "open":
			if len(args) == 0 {
				printlnFn("Usage: open <raffle-id>")
				continue
			}
			_ = a.openRaffle(ctx, args[0])

		case "progress":
			_ = a.progress(ctx)

		case "buy":
			_ = a.buy(ctx, args)

		case "verify":
			_ = a.verify(ctx, args)

		case "draw":
			if len(args) == 0 {
				printlnFn("Usage: draw <csv-file> [winners]")
				continue
			}
			_ = a.drawFile(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
