package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHoldAlive(t *testing.T) {
	now := time.Now()
	h := Hold{HoldID: "h1", TicketIDs: []string{"t1"}, ExpiresAt: now.Add(time.Minute)}

	require.True(t, h.Alive(now))
	require.True(t, h.Alive(now.Add(59*time.Second)))
	require.False(t, h.Alive(now.Add(time.Minute)), "expiry instant itself is dead")
	require.False(t, h.Alive(now.Add(2*time.Minute)))
}

func TestHoldLoadable(t *testing.T) {
	require.True(t, Hold{HoldID: "h1", TicketIDs: []string{"t1"}}.Loadable())
	require.False(t, Hold{TicketIDs: []string{"t1"}}.Loadable(), "missing hold id")
	require.False(t, Hold{HoldID: "h1"}.Loadable(), "empty ticket list")
}

func TestReserveResultExpiresAt(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	r := ReserveResult{
		HoldID: "h1",
		Tickets: []ReservedTicket{
			{ID: "a", ReservedUntil: base.Add(600 * time.Second)},
			{ID: "b", ReservedUntil: base.Add(590 * time.Second)},
			{ID: "c", ReservedUntil: base.Add(595 * time.Second)},
		},
	}

	require.Equal(t, base.Add(590*time.Second), r.ExpiresAt(), "minimum per-ticket expiry wins")
	require.Equal(t, []string{"a", "b", "c"}, r.TicketIDs())
}

func TestReserveResultExpiresAtEmpty(t *testing.T) {
	require.True(t, ReserveResult{}.ExpiresAt().IsZero())
}

func TestBuyerInfoValidate(t *testing.T) {
	ok := BuyerInfo{Email: "a@b.c", Document: "V-12345678", Phone: "0414-1234567"}
	require.Nil(t, ok.Validate())

	missing := BuyerInfo{Email: " ", Document: "", Phone: "x"}.Validate()
	require.Equal(t, []string{"email", "document"}, missing)
}
