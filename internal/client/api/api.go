package api

import (
	"context"

	"github.com/prizoapp/prizo-cli/internal/client/models"
)

// API is the transport-agnostic contract covering every backend endpoint.
// The HTTP Client satisfies it; tests can provide fakes.
type API interface {
	ListRaffles(ctx context.Context) ([]models.RaffleSummary, error)
	GetRaffleConfig(ctx context.Context, raffleID string) (*models.RaffleConfig, error)
	GetProgress(ctx context.Context, raffleID string) (*models.Progress, error)
	QuotePrice(ctx context.Context, raffleID string, quantity int, method string) (*models.Quote, error)

	ReserveTickets(ctx context.Context, req ReserveRequest) (*models.ReserveResult, error)
	ReleaseTickets(ctx context.Context, ticketIDs []string) error
	CheckTicket(ctx context.Context, q CheckQuery) (*models.CheckResult, error)

	SubmitPayment(ctx context.Context, req PaymentRequest, filename string, evidence []byte) error
	SubmitReservedPayment(ctx context.Context, req ReservedPaymentRequest) error
	UploadEvidence(ctx context.Context, raffleID, filename string, evidence []byte) (string, error)
}

var _ API = (*Client)(nil)
