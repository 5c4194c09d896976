package cli

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/prizoapp/prizo-cli/internal/draw"
)

// newDrawEngine is a seam so tests can shorten the animation timings.
var newDrawEngine = draw.NewEngine

// drawFile runs a winner draw from a participant CSV file. With a single
// winner the spinning animation runs; asking for n winners prints the
// selected list directly.
func (a *App) drawFile(ctx context.Context, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		printlnFn("Could not read participant file:", err.Error())
		return err
	}

	table, err := draw.Parse(string(raw))
	if err != nil {
		printlnFn("Could not parse participant file:", err.Error())
		return err
	}
	printlnFn(fmt.Sprintf("Loaded %d participant(s).", len(table.Rows)))

	n := 1
	if len(args) > 1 {
		if parsed, err := strconv.Atoi(args[1]); err == nil && parsed > 0 {
			n = parsed
		}
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	if n == 1 {
		engine := newDrawEngine(rng)
		err := engine.Run(ctx, table,
			func(row draw.Row) {
				printfFn("\r  %-40s", participantName(row))
			},
			func(row draw.Row) {
				printfFn("\r")
				printlnFn(fmt.Sprintf("Winner: %s <%s>", participantName(row), draw.MaskEmail(row["email"])))
			})
		if err != nil {
			printlnFn("Draw failed:", err.Error())
		}
		return err
	}

	winners := draw.PickWinners(table.Rows, n, true, rng)
	for _, w := range winners {
		printlnFn(fmt.Sprintf("%d. %s <%s>  ticket %s", w.Position, w.Name, w.EmailMasked, w.DrawTicket))
	}
	return nil
}

func participantName(row draw.Row) string {
	if name := row["nombre"]; name != "" {
		return name
	}
	if name := row["name"]; name != "" {
		return name
	}
	return row["email"]
}
