// Package models defines the client-side view of PRIZO backend entities.
package models

import "time"

// RaffleSummary is one row of the raffle listing. Immutable once fetched;
// refreshed by re-listing.
type RaffleSummary struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
	PriceBs     float64 `json:"price_bs"`
	PriceUSD    float64 `json:"price_usd"`
}

// PaymentInstruction is one key/value line of the payment-method details
// shown to the buyer (bank, phone, document of the receiving account, ...).
type PaymentInstruction struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// StorageConfig describes the S3-compatible bucket used as the fallback
// destination for payment-evidence uploads when the API upload path fails.
type StorageConfig struct {
	Endpoint  string `json:"endpoint"`
	Region    string `json:"region"`
	Bucket    string `json:"bucket"`
	AccessKey string `json:"access_key"`
	SecretKey string `json:"secret_key"`
	BaseURL   string `json:"base_url"`
}

// RaffleConfig is the full configuration of one raffle, replaced wholesale
// whenever the user selects a raffle.
type RaffleConfig struct {
	RaffleID          string               `json:"raffle_id"`
	Name              string               `json:"name"`
	Active            bool                 `json:"active"`
	PriceBs           float64              `json:"price_bs"`
	PerTransactionCap int                  `json:"per_transaction_cap"`
	PaymentMethod     string               `json:"payment_method"`
	Instructions      []PaymentInstruction `json:"instructions"`
	ImageURL          string               `json:"image_url"`
	Progress          Progress             `json:"progress"`
	Storage           StorageConfig        `json:"storage"`
}

// Progress is a server-derived sold/remaining snapshot. Never mutated on
// the client.
type Progress struct {
	Total       int     `json:"total"`
	Sold        int     `json:"sold"`
	Remaining   int     `json:"remaining"`
	PercentSold float64 `json:"percent_sold"`
}

// Quote is a momentary total price for a quantity at the current exchange
// rate. Never cached beyond the current interaction.
type Quote struct {
	Quantity int     `json:"quantity"`
	TotalBs  float64 `json:"total_bs"`
	Rate     float64 `json:"rate"`
}

// ReservedTicket is one ticket inside a reserve response.
type ReservedTicket struct {
	ID            string    `json:"id"`
	Number        string    `json:"number"`
	ReservedUntil time.Time `json:"reserved_until"`
}

// ReserveResult is the backend's answer to a reserve call.
type ReserveResult struct {
	HoldID  string           `json:"hold_id"`
	Tickets []ReservedTicket `json:"tickets"`
}

// ExpiresAt returns the most conservative expiry bound: the minimum of all
// per-ticket reserved_until timestamps. Zero time when no tickets came back.
func (r ReserveResult) ExpiresAt() time.Time {
	var min time.Time
	for _, t := range r.Tickets {
		if min.IsZero() || t.ReservedUntil.Before(min) {
			min = t.ReservedUntil
		}
	}
	return min
}

// TicketIDs collects the reserved ticket ids in response order.
func (r ReserveResult) TicketIDs() []string {
	ids := make([]string, 0, len(r.Tickets))
	for _, t := range r.Tickets {
		ids = append(ids, t.ID)
	}
	return ids
}

// TicketStatus is one verified ticket in a check response.
type TicketStatus struct {
	Number    string `json:"number"`
	Status    string `json:"status"`
	Reference string `json:"reference"`
	RaffleID  string `json:"raffle_id"`
}

// CheckResult is the backend's answer to a ticket-check query.
type CheckResult struct {
	Found   bool           `json:"found"`
	Tickets []TicketStatus `json:"tickets"`
}
