package api

import (
	"context"
	"strconv"
)

// PaymentRequest is a holdless payment: quantity-based, evidence attached
// as a multipart file.
type PaymentRequest struct {
	RaffleID  string
	Quantity  int
	Email     string
	Document  string
	State     string
	Phone     string
	Reference string
}

// SubmitPayment sends a holdless payment with the evidence file inline.
func (c *Client) SubmitPayment(ctx context.Context, req PaymentRequest, filename string, evidence []byte) error {
	fields := map[string]string{
		"raffle_id": req.RaffleID,
		"quantity":  strconv.Itoa(req.Quantity),
		"email":     req.Email,
		"document":  req.Document,
		"state":     req.State,
		"phone":     req.Phone,
		"reference": req.Reference,
	}
	return c.postMultipart(ctx, "/payments/submit", fields, "evidence", filename, evidence, nil)
}

// ReservedPaymentRequest is a payment against a live hold. EvidenceURL
// points at the already-uploaded proof file.
type ReservedPaymentRequest struct {
	RaffleID    string   `json:"raffle_id"`
	HoldID      string   `json:"hold_id"`
	TicketIDs   []string `json:"ticket_ids"`
	Email       string   `json:"email"`
	Document    string   `json:"document"`
	State       string   `json:"state"`
	Phone       string   `json:"phone"`
	Reference   string   `json:"reference"`
	EvidenceURL string   `json:"evidence_url"`
}

// SubmitReservedPayment sends a payment bound to a hold id and its tickets.
func (c *Client) SubmitReservedPayment(ctx context.Context, req ReservedPaymentRequest) error {
	return c.postJSON(ctx, "/payments/reserve_submit", req, nil)
}

// UploadEvidence uploads a proof-of-payment file and returns its URL.
func (c *Client) UploadEvidence(ctx context.Context, raffleID, filename string, evidence []byte) (string, error) {
	fields := map[string]string{"raffle_id": raffleID}

	var out struct {
		SecureURL string `json:"secure_url"`
	}
	if err := c.postMultipart(ctx, "/payments/upload_evidence", fields, "file", filename, evidence, &out); err != nil {
		return "", err
	}
	return out.SecureURL, nil
}
