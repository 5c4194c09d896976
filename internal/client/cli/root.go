package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"time"
)

func (a *App) getStatus() string {
	s := ""
	if a.raffle != nil {
		s = a.raffle.RaffleID
	}
	if remaining := a.holdRemaining(); remaining > 0 {
		s = s + fmt.Sprintf(" hold %s", remaining.Round(time.Second))
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to PRIZO CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
