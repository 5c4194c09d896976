// Package cli provides the interactive PRIZO command-line client.
//
// It wires configuration, the local state database, the API client, and an
// interactive REPL around one raffle at a time. Typical flow: list the open
// raffles, open one, buy tickets (reserve, pay, upload evidence), and verify
// purchased tickets later.
//
// Key features:
//   - List raffles and show sales progress
//   - Buy: reservation hold with countdown, price quote, payment submission
//   - Verify a ticket by number
//   - Run a winner draw from a participant CSV file
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// A live reservation is released on exit or interrupt.
package cli
