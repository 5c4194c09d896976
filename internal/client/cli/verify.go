package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/prizoapp/prizo-cli/internal/client/api"
)

// verify checks ticket status. The default lookup is by ticket number;
// "verify ref <reference>" and "verify email <email>" select the other
// query variants. With no argument the number is prompted for.
func (a *App) verify(ctx context.Context, args []string) error {
	var query api.CheckQuery

	switch {
	case len(args) >= 2 && (args[0] == "ref" || args[0] == "reference"):
		query.Reference = args[1]
	case len(args) >= 2 && args[0] == "email":
		query.Email = args[1]
	case len(args) >= 1:
		query.TicketNumber = args[0]
	default:
		number, err := GetSimpleText(a.reader, "Ticket number", os.Stdout)
		if err != nil {
			return err
		}
		if number == "" {
			printlnFn("Usage: verify <number> | verify ref <reference> | verify email <email>")
			return nil
		}
		query.TicketNumber = number
	}

	result, err := a.api.CheckTicket(ctx, query)
	if err != nil {
		printlnFn("Error checking ticket:", err.Error())
		return err
	}

	if !result.Found || len(result.Tickets) == 0 {
		printlnFn("No matching tickets found.")
		return nil
	}

	for _, t := range result.Tickets {
		line := fmt.Sprintf("#%s  %s", t.Number, t.Status)
		if t.Reference != "" {
			line += "  ref " + t.Reference
		}
		if t.RaffleID != "" {
			line += "  (" + t.RaffleID + ")"
		}
		printlnFn(line)
	}
	return nil
}
