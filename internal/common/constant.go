package common

import "time"

const (
	// HoldDuration is the nominal lifetime of a ticket reservation. The
	// effective expiry always comes from the backend's per-ticket
	// reserved_until timestamps; this value only seeds the countdown UI
	// before the first server response.
	HoldDuration = 10 * time.Minute

	// DefaultPerTransactionCap bounds a single purchase when the raffle
	// config does not supply its own limit.
	DefaultPerTransactionCap = 50
)
