package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestReserveRequestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		req     ReserveRequest
		wantErr bool
	}{
		{name: "quantity variant", req: ReserveRequest{RaffleID: "r1", Quantity: 3}},
		{name: "ticket ids variant", req: ReserveRequest{RaffleID: "r1", TicketIDs: []string{"a"}}},
		{name: "ticket numbers variant", req: ReserveRequest{RaffleID: "r1", TicketNumbers: []string{"0042"}}},
		{name: "no variant", req: ReserveRequest{RaffleID: "r1"}, wantErr: true},
		{name: "two variants", req: ReserveRequest{RaffleID: "r1", Quantity: 1, TicketIDs: []string{"a"}}, wantErr: true},
		{name: "missing raffle id", req: ReserveRequest{Quantity: 1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.req.normalize()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestReserveTickets(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/tickets/reserve", r.URL.Path)

		var in map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		require.Equal(t, float64(2), in["quantity"])
		require.NotContains(t, in, "ticket_ids", "unused variants must be omitted")

		_, _ = w.Write([]byte(`{
			"hold_id": "h-77",
			"tickets": [
				{"id":"t1","number":"0001","reserved_until":"2025-03-01T12:10:00Z"},
				{"id":"t2","number":"0002","reserved_until":"2025-03-01T12:09:50Z"}
			]
		}`))
	}))
	defer srv.Close()

	c := newTestClient(t, time.Second, srv.URL)

	res, err := c.ReserveTickets(context.Background(), ReserveRequest{RaffleID: "r1", Quantity: 2})
	require.NoError(t, err)
	require.Equal(t, "h-77", res.HoldID)
	require.Equal(t, []string{"t1", "t2"}, res.TicketIDs())

	want := time.Date(2025, 3, 1, 12, 9, 50, 0, time.UTC)
	require.True(t, res.ExpiresAt().Equal(want), "hold expiry is the minimum reserved_until")
}

func TestCheckQueryValidate(t *testing.T) {
	require.NoError(t, CheckQuery{TicketNumber: "0042"}.validate())
	require.NoError(t, CheckQuery{Reference: "ref"}.validate())
	require.NoError(t, CheckQuery{Email: "a@b.c"}.validate())
	require.Error(t, CheckQuery{}.validate())
	require.Error(t, CheckQuery{TicketNumber: "1", Email: "a@b.c"}.validate())
}

func TestReleaseTickets(t *testing.T) {
	var got []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/tickets/release", r.URL.Path)
		var in struct {
			TicketIDs []string `json:"ticket_ids"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		got = in.TicketIDs
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := newTestClient(t, time.Second, srv.URL)
	require.NoError(t, c.ReleaseTickets(context.Background(), []string{"t1", "t2"}))
	require.Equal(t, []string{"t1", "t2"}, got)
}
