package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/prizoapp/prizo-cli/internal/client/models"
	"github.com/prizoapp/prizo-cli/internal/client/services"
	"github.com/prizoapp/prizo-cli/internal/common"
)

// buy runs the purchase flow for the open raffle: terms gate, quantity
// clamp, price quote, reservation, and payment submission. When a hold from
// an earlier attempt is still alive it resumes straight at the payment step.
// A finished attempt, whether paid, cancelled, or expired, is reset first so
// the same raffle can be bought again.
func (a *App) buy(ctx context.Context, args []string) error {
	if a.raffle == nil {
		printlnFn("Open a raffle first.")
		return nil
	}

	a.session.Reset()

	email := ""
	quantity := 0

	hold := a.session.LiveHold(ctx)
	if hold == nil {
		var err error
		hold, email, err = a.reserve(ctx, args)
		if err != nil || hold == nil {
			return err
		}
	} else {
		printlnFn(fmt.Sprintf("Resuming: you hold %d reserved ticket(s) until %s.",
			len(hold.TicketIDs), hold.ExpiresAt.Format(time.Kitchen)))
	}
	quantity = len(hold.TicketIDs)

	return a.collectAndSubmit(ctx, email, quantity)
}

// reserve walks the user from quantity to a confirmed reservation. A nil
// hold with a nil error means the user backed out.
func (a *App) reserve(ctx context.Context, args []string) (*models.Hold, string, error) {
	if !a.raffle.Active {
		printlnFn("This raffle is not on sale.")
		return nil, "", common.ErrRaffleInactive
	}

	accepted, err := a.ensureTermsAccepted(ctx)
	if err != nil || !accepted {
		return nil, "", err
	}

	quantity := 0
	if len(args) > 0 {
		quantity, _ = strconv.Atoi(args[0])
	}
	if quantity == 0 {
		text, err := GetSimpleText(a.reader, "How many tickets?", os.Stdout)
		if err != nil {
			return nil, "", err
		}
		quantity, _ = strconv.Atoi(text)
	}

	remaining := a.raffle.Progress.Remaining
	if p, err := a.api.GetProgress(ctx, a.raffle.RaffleID); err == nil {
		remaining = p.Remaining
	}

	clamped := services.ClampQuantity(quantity, a.raffle.PerTransactionCap, remaining)
	if clamped != quantity {
		printlnFn(fmt.Sprintf("Adjusted quantity to %d (available: %d, per purchase: %d).",
			clamped, remaining, a.raffle.PerTransactionCap))
	}

	if quote, err := a.api.QuotePrice(ctx, a.raffle.RaffleID, clamped, a.raffle.PaymentMethod); err == nil {
		printlnFn(fmt.Sprintf("Total: %.2f Bs (rate %.2f)", quote.TotalBs, quote.Rate))
	} else {
		printlnFn(fmt.Sprintf("Total: %.2f Bs", a.raffle.PriceBs*float64(clamped)))
	}

	email, err := GetSimpleText(a.reader, "Your email", os.Stdout)
	if err != nil {
		return nil, "", err
	}

	ok, err := GetConfirm(a.reader, fmt.Sprintf("Reserve %d ticket(s)?", clamped), os.Stdout)
	if err != nil || !ok {
		return nil, "", err
	}

	hold, err := a.session.Reserve(ctx, clamped, email)
	if err != nil {
		printlnFn("Could not reserve tickets:", err.Error())
		return nil, "", err
	}

	printlnFn(fmt.Sprintf("Reserved %d ticket(s), held until %s.",
		len(hold.TicketIDs), hold.ExpiresAt.Format(time.Kitchen)))
	a.printInstructions()

	return hold, email, nil
}

func (a *App) printInstructions() {
	if a.raffle.PaymentMethod != "" {
		printlnFn("Pay via " + a.raffle.PaymentMethod + ":")
	}
	for _, in := range a.raffle.Instructions {
		printlnFn(fmt.Sprintf("  %s: %s", in.Name, in.Value))
	}
}

// collectAndSubmit prompts for buyer data and the evidence file, then
// submits the payment. Typing "cancel" at the reference prompt releases the
// hold instead.
func (a *App) collectAndSubmit(ctx context.Context, email string, quantity int) error {
	if email == "" {
		var err error
		email, err = GetSimpleText(a.reader, "Your email", os.Stdout)
		if err != nil {
			return err
		}
	}

	document, err := GetSimpleText(a.reader, "Document (cédula)", os.Stdout)
	if err != nil {
		return err
	}
	state, err := GetSimpleText(a.reader, "State", os.Stdout)
	if err != nil {
		return err
	}
	phone, err := GetSimpleText(a.reader, "Phone", os.Stdout)
	if err != nil {
		return err
	}
	reference, err := GetSimpleText(a.reader, "Payment reference (or 'cancel' to release the tickets)", os.Stdout)
	if err != nil {
		return err
	}
	if strings.EqualFold(reference, "cancel") {
		a.session.Cancel(ctx, services.ReasonUser)
		a.remaining.Store(0)
		printlnFn("Reservation released.")
		return nil
	}

	path, err := GetSimpleText(a.reader, "Path to the payment evidence image", os.Stdout)
	if err != nil {
		return err
	}
	evidence, err := os.ReadFile(path)
	if err != nil {
		printlnFn("Could not read evidence file:", err.Error())
		return err
	}

	buyer := models.BuyerInfo{Email: email, Document: document, State: state, Phone: phone}
	err = a.session.Submit(ctx, buyer, reference, quantity, filepath.Base(path), evidence)
	if err != nil {
		printlnFn("Payment submission failed:", err.Error())
		if a.session.LiveHold(ctx) != nil {
			printlnFn("Your reservation is still alive; run 'buy' to try again.")
		}
		return err
	}

	a.remaining.Store(0)
	printlnFn("Payment submitted. You will be notified once it is confirmed.")
	if p, err := a.api.GetProgress(ctx, a.raffle.RaffleID); err == nil {
		a.raffle.Progress = *p
		printProgress(p.Sold, p.Total, p.PercentSold)
	}
	return nil
}

// ensureTermsAccepted shows the terms gate once; the answer persists in the
// state database.
func (a *App) ensureTermsAccepted(ctx context.Context) (bool, error) {
	accepted, err := a.repo.TermsAccepted(ctx)
	if err == nil && accepted {
		return true, nil
	}

	ok, err := GetConfirm(a.reader, "Do you accept the terms and conditions?", os.Stdout)
	if err != nil {
		return false, err
	}
	if !ok {
		printlnFn("You must accept the terms to buy tickets.")
		return false, nil
	}

	if err := a.repo.SetTermsAccepted(ctx, true); err != nil {
		a.log.Warn(ctx, "failed to persist terms acceptance", "error", err)
	}
	return true, nil
}
