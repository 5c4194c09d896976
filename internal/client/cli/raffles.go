package cli

import (
	"context"
	"fmt"
)

func (a *App) listRaffles(ctx context.Context) error {
	raffles, err := a.api.ListRaffles(ctx)
	if err != nil {
		printlnFn("Error listing raffles:", err.Error())
		return err
	}

	if len(raffles) == 0 {
		printlnFn("No raffles on sale right now.")
		return nil
	}

	for _, r := range raffles {
		printlnFn(fmt.Sprintf("%s  %s  %.2f Bs (%.2f USD)", r.ID, r.Name, r.PriceBs, r.PriceUSD))
	}
	return nil
}

func (a *App) openRaffle(ctx context.Context, id string) error {
	cfg, err := a.api.GetRaffleConfig(ctx, id)
	if err != nil {
		printlnFn("Error loading raffle:", err.Error())
		return err
	}

	a.setRaffle(cfg)

	printlnFn(fmt.Sprintf("Opened %q (%s)", cfg.Name, cfg.RaffleID))
	if !cfg.Active {
		printlnFn("This raffle is not on sale; buying is disabled.")
	}
	printProgress(cfg.Progress.Sold, cfg.Progress.Total, cfg.Progress.PercentSold)

	// A hold from a previous run may still be alive.
	if hold := a.session.LiveHold(ctx); hold != nil {
		printlnFn(fmt.Sprintf("You still hold %d reserved ticket(s); run 'buy' to finish the payment.", len(hold.TicketIDs)))
	}
	return nil
}

func (a *App) progress(ctx context.Context) error {
	if a.raffle == nil {
		printlnFn("Open a raffle first.")
		return nil
	}

	p, err := a.api.GetProgress(ctx, a.raffle.RaffleID)
	if err != nil {
		printlnFn("Error loading progress:", err.Error())
		return err
	}

	printProgress(p.Sold, p.Total, p.PercentSold)
	return nil
}

func printProgress(sold, total int, percent float64) {
	printlnFn(fmt.Sprintf("Sold %d of %d tickets (%.1f%%)", sold, total, percent))
}
