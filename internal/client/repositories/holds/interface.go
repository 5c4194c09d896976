// Package holds persists the active ticket reservation between client
// restarts, so an interrupted purchase can resume at the payment step. It
// also keeps the durable terms-of-service acceptance flag.
package holds

import (
	"context"

	"github.com/prizoapp/prizo-cli/internal/client/models"
)

// Repository stores at most one hold per raffle plus durable client flags.
type Repository interface {
	// Save replaces the stored hold for the raffle.
	Save(ctx context.Context, raffleID string, hold models.Hold) error

	// Load returns the stored hold. common.ErrorNotFound when absent or
	// when the stored record is not loadable (missing id, no tickets).
	Load(ctx context.Context, raffleID string) (*models.Hold, error)

	// Clear removes the stored hold, if any.
	Clear(ctx context.Context, raffleID string) error

	// SetTermsAccepted records the durable terms-of-service acceptance.
	SetTermsAccepted(ctx context.Context, accepted bool) error

	// TermsAccepted reports whether terms were ever accepted.
	TermsAccepted(ctx context.Context) (bool, error)
}
