// Package common defines shared constants and sentinel errors used across
// the PRIZO client layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Validation errors raised before anything reaches the network.
	ErrorValidation = errors.New("validation error")

	// Raffle state errors.
	ErrRaffleInactive = errors.New("raffle is not active")
)
