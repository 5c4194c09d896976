package api

import (
	"context"
	"net/url"

	"github.com/prizoapp/prizo-cli/internal/client/models"
)

// ListRaffles returns the summaries of all published raffles.
func (c *Client) ListRaffles(ctx context.Context) ([]models.RaffleSummary, error) {
	var out []models.RaffleSummary
	if err := c.getJSON(ctx, "/raffles/list", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetRaffleConfig loads the full configuration of one raffle, including the
// embedded progress snapshot and the evidence-storage block.
func (c *Client) GetRaffleConfig(ctx context.Context, raffleID string) (*models.RaffleConfig, error) {
	var out models.RaffleConfig
	path := "/config?raffle_id=" + url.QueryEscape(raffleID)
	if err := c.getJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetProgress fetches a fresh sold/remaining snapshot.
func (c *Client) GetProgress(ctx context.Context, raffleID string) (*models.Progress, error) {
	var out models.Progress
	path := "/raffles/progress?raffle_id=" + url.QueryEscape(raffleID)
	if err := c.getJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// QuotePrice computes the total price for a quantity at the current
// exchange rate. The result is momentary and must not be cached.
func (c *Client) QuotePrice(ctx context.Context, raffleID string, quantity int, method string) (*models.Quote, error) {
	req := struct {
		RaffleID string `json:"raffle_id"`
		Quantity int    `json:"quantity"`
		Method   string `json:"method"`
	}{RaffleID: raffleID, Quantity: quantity, Method: method}

	var out models.Quote
	if err := c.postJSON(ctx, "/quote", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
