package models

import (
	"strings"
	"time"
)

// Hold is a time-boxed server-side reservation of specific tickets. It is
// kept redundantly in memory and in the local store so either copy can
// reconstruct it; the in-memory copy wins when both exist.
type Hold struct {
	HoldID    string    `json:"hold_id"`
	TicketIDs []string  `json:"ticket_ids"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Alive reports whether the hold is still valid at the given instant.
// A hold is alive iff now is strictly before ExpiresAt.
func (h Hold) Alive(now time.Time) bool {
	return now.Before(h.ExpiresAt)
}

// Loadable reports whether the hold carries enough data to be restored:
// a non-empty hold id and at least one ticket id.
func (h Hold) Loadable() bool {
	return h.HoldID != "" && len(h.TicketIDs) > 0
}

// BuyerInfo is collected once per purchase attempt and never persisted
// across sessions.
type BuyerInfo struct {
	Email    string `json:"email"`
	Document string `json:"document"`
	State    string `json:"state"`
	Phone    string `json:"phone"`
}

// Validate reports the missing required fields, joined into one message.
// A nil result means the buyer info is complete.
func (b BuyerInfo) Validate() []string {
	var missing []string
	if strings.TrimSpace(b.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(b.Document) == "" {
		missing = append(missing, "document")
	}
	if strings.TrimSpace(b.Phone) == "" {
		missing = append(missing, "phone")
	}
	return missing
}
