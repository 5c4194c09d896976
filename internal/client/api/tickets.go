package api

import (
	"context"
	"errors"

	"github.com/prizoapp/prizo-cli/internal/client/models"
)

// ReserveRequest describes a reserve call. Exactly one of Quantity,
// TicketIDs or TicketNumbers selects the variant; Email is optional and
// forwarded when the backend version expects it.
type ReserveRequest struct {
	RaffleID      string
	Quantity      int
	TicketIDs     []string
	TicketNumbers []string
	Email         string
}

type reservePayload struct {
	RaffleID      string   `json:"raffle_id"`
	Quantity      int      `json:"quantity,omitempty"`
	TicketIDs     []string `json:"ticket_ids,omitempty"`
	TicketNumbers []string `json:"ticket_numbers,omitempty"`
	Email         string   `json:"email,omitempty"`
}

// normalize folds the three reserve variants into one request shape,
// rejecting ambiguous or empty combinations.
func (r ReserveRequest) normalize() (reservePayload, error) {
	p := reservePayload{RaffleID: r.RaffleID, Email: r.Email}

	variants := 0
	if r.Quantity > 0 {
		variants++
		p.Quantity = r.Quantity
	}
	if len(r.TicketIDs) > 0 {
		variants++
		p.TicketIDs = r.TicketIDs
	}
	if len(r.TicketNumbers) > 0 {
		variants++
		p.TicketNumbers = r.TicketNumbers
	}

	if variants != 1 {
		return reservePayload{}, errors.New("reserve requires exactly one of quantity, ticket_ids or ticket_numbers")
	}
	if r.RaffleID == "" {
		return reservePayload{}, errors.New("reserve requires a raffle id")
	}
	return p, nil
}

// ReserveTickets creates a hold on the requested tickets.
func (c *Client) ReserveTickets(ctx context.Context, req ReserveRequest) (*models.ReserveResult, error) {
	payload, err := req.normalize()
	if err != nil {
		return nil, err
	}

	var out models.ReserveResult
	if err := c.postJSON(ctx, "/tickets/reserve", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ReleaseTickets frees previously held tickets.
func (c *Client) ReleaseTickets(ctx context.Context, ticketIDs []string) error {
	req := struct {
		TicketIDs []string `json:"ticket_ids"`
	}{TicketIDs: ticketIDs}

	return c.postJSON(ctx, "/tickets/release", req, nil)
}

// CheckQuery identifies tickets by exactly one of ticket number, payment
// reference or buyer email.
type CheckQuery struct {
	TicketNumber string `json:"ticket_number,omitempty"`
	Reference    string `json:"reference,omitempty"`
	Email        string `json:"email,omitempty"`
}

func (q CheckQuery) validate() error {
	set := 0
	if q.TicketNumber != "" {
		set++
	}
	if q.Reference != "" {
		set++
	}
	if q.Email != "" {
		set++
	}
	if set != 1 {
		return errors.New("check requires exactly one of ticket number, reference or email")
	}
	return nil
}

// CheckTicket verifies ticket status for the given query.
func (c *Client) CheckTicket(ctx context.Context, q CheckQuery) (*models.CheckResult, error) {
	if err := q.validate(); err != nil {
		return nil, err
	}

	var out models.CheckResult
	if err := c.postJSON(ctx, "/tickets/check", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
