// Package services implements the client-side purchase workflow: the hold
// lifecycle state machine and the evidence uploader.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/prizoapp/prizo-cli/internal/client/api"
	"github.com/prizoapp/prizo-cli/internal/client/models"
	"github.com/prizoapp/prizo-cli/internal/client/repositories/holds"
	"github.com/prizoapp/prizo-cli/internal/common"
	"github.com/prizoapp/prizo-cli/internal/logging"
)

// State is the position of a purchase attempt in its lifecycle.
type State string

const (
	StateIdle       State = "idle"
	StateReserving  State = "reserving"
	StateHeld       State = "held"
	StateSubmitting State = "submitting"
	StateDone       State = "done"
	StateCancelled  State = "cancelled"
	StateExpired    State = "expired"
)

// CancelReason distinguishes a user cancellation from countdown expiry.
type CancelReason string

const (
	ReasonUser    CancelReason = "user"
	ReasonExpired CancelReason = "expired"
)

// transientMarkers are backend failure substrings that earn a reserve call
// one soft retry, alongside the transport sentinels api.ErrTimeout and
// api.ErrUnavailable. Anything else propagates immediately.
var transientMarkers = []string{
	"temporarily unavailable",
	"resource_exhausted",
	"timeout",
}

// Uploader stores an evidence file somewhere reachable and returns its URL.
type Uploader interface {
	Upload(ctx context.Context, raffleID, filename string, data []byte) (string, error)
}

// Session owns one purchase attempt against one raffle: the reservation,
// its countdown, and the payment submission. All lifecycle state lives here
// rather than in package-level variables, so transitions are explicit.
type Session struct {
	api      api.API
	repo     holds.Repository
	uploader Uploader
	log      logging.Logger

	raffleID string

	mu    sync.Mutex
	state State
	hold  *models.Hold

	stopCountdown chan struct{}
	expireOnce    sync.Once

	// OnTick receives the remaining hold time once per second while held.
	OnTick func(remaining time.Duration)
	// OnExpired fires after the countdown reached zero and the hold was
	// auto-cancelled.
	OnExpired func()

	// test seams
	now        func() time.Time
	retryDelay time.Duration
	tick       time.Duration
}

// NewSession builds an idle session for the raffle.
func NewSession(apiClient api.API, repo holds.Repository, uploader Uploader, raffleID string, log logging.Logger) *Session {
	return &Session{
		api:        apiClient,
		repo:       repo,
		uploader:   uploader,
		log:        log,
		raffleID:   raffleID,
		state:      StateIdle,
		now:        time.Now,
		retryDelay: 2 * time.Second,
		tick:       time.Second,
	}
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Reset returns a finished session to Idle so a new purchase attempt can
// start against the same raffle. Only the terminal states reset; an attempt
// that is still in flight is left alone.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case StateDone, StateCancelled, StateExpired:
		s.state = StateIdle
		s.hold = nil
		s.expireOnce = sync.Once{}
	}
}

// ClampQuantity bounds a requested ticket quantity to what a single
// transaction may buy: at least 1, at most min(perTxCap, remaining).
func ClampQuantity(requested, perTxCap, remaining int) int {
	if perTxCap <= 0 {
		perTxCap = common.DefaultPerTransactionCap
	}
	limit := perTxCap
	if remaining < limit {
		limit = remaining
	}
	if limit < 1 {
		limit = 1
	}
	if requested < 1 {
		return 1
	}
	if requested > limit {
		return limit
	}
	return requested
}

func isTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, api.ErrTimeout) || errors.Is(err, api.ErrUnavailable) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range transientMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// Reserve asks the backend to hold quantity tickets. Transient failures get
// exactly one soft retry after a short delay. On success the hold expiry is
// the minimum of the returned per-ticket expiries; the hold is kept in
// memory, persisted, and the countdown starts.
func (s *Session) Reserve(ctx context.Context, quantity int, email string) (*models.Hold, error) {
	s.mu.Lock()
	if s.state != StateIdle {
		state := s.state
		s.mu.Unlock()
		return nil, fmt.Errorf("cannot reserve from state %q", state)
	}
	s.state = StateReserving
	s.mu.Unlock()

	var result *models.ReserveResult

	backoff := retry.WithMaxRetries(1, retry.NewConstant(s.retryDelay))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		res, err := s.api.ReserveTickets(ctx, api.ReserveRequest{
			RaffleID: s.raffleID,
			Quantity: quantity,
			Email:    email,
		})
		if err != nil {
			if isTransient(err) {
				s.log.Warn(ctx, "transient reserve failure, retrying once", "error", err)
				return retry.RetryableError(err)
			}
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		s.mu.Lock()
		s.state = StateIdle
		s.mu.Unlock()
		return nil, err
	}

	expires := result.ExpiresAt()
	if expires.IsZero() {
		expires = s.now().Add(common.HoldDuration)
	}

	hold := &models.Hold{
		HoldID:    result.HoldID,
		TicketIDs: result.TicketIDs(),
		ExpiresAt: expires,
	}

	s.mu.Lock()
	if s.state != StateReserving {
		// The flow was cancelled while the call was in flight; the late
		// result is discarded and its tickets are given back.
		state := s.state
		s.mu.Unlock()
		if err := s.api.ReleaseTickets(ctx, hold.TicketIDs); err != nil {
			s.log.Warn(ctx, "failed to release discarded reservation", "error", err)
		}
		return nil, fmt.Errorf("reservation discarded, session is %q", state)
	}
	s.hold = hold
	s.state = StateHeld
	s.expireOnce = sync.Once{}
	s.mu.Unlock()

	if err := s.repo.Save(ctx, s.raffleID, *hold); err != nil {
		// The in-memory copy still drives the flow; persistence only
		// covers losing that copy mid-purchase.
		s.log.Warn(ctx, "failed to persist hold", "error", err)
	}

	s.startCountdown(hold.ExpiresAt)

	s.log.Info(ctx, "tickets reserved", "hold_id", hold.HoldID,
		"tickets", len(hold.TicketIDs), "expires_at", hold.ExpiresAt)

	return hold, nil
}

// startCountdown ticks once per second until the expiry instant, the stop
// channel, or an explicit cancellation. Reaching zero auto-cancels exactly
// once.
func (s *Session) startCountdown(expiresAt time.Time) {
	stop := make(chan struct{})

	s.mu.Lock()
	s.stopCountdown = stop
	s.mu.Unlock()

	go func() {
		ticker := time.NewTicker(s.tick)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				remaining := expiresAt.Sub(s.now())
				if remaining <= 0 {
					s.expireOnce.Do(func() {
						ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
						defer cancel()
						s.cancel(ctx, ReasonExpired)
						if s.OnExpired != nil {
							s.OnExpired()
						}
					})
					return
				}
				if s.OnTick != nil {
					s.OnTick(remaining)
				}
			}
		}
	}()
}

func (s *Session) stopTimer() {
	if s.stopCountdown != nil {
		close(s.stopCountdown)
		s.stopCountdown = nil
	}
}

// LiveHold returns the current hold if it is alive, reading memory first
// and the persisted copy as fallback. Dead or unloadable holds yield nil.
func (s *Session) LiveHold(ctx context.Context) *models.Hold {
	s.mu.Lock()
	hold := s.hold
	s.mu.Unlock()

	if hold != nil && hold.Loadable() && hold.Alive(s.now()) {
		return hold
	}

	stored, err := s.repo.Load(ctx, s.raffleID)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			s.log.Warn(ctx, "failed to load persisted hold", "error", err)
		}
		return nil
	}
	if !stored.Alive(s.now()) {
		return nil
	}
	return stored
}

// Submit validates buyer data locally, uploads the evidence, and submits
// the payment. Whenever a live hold exists the payment targets the
// reserved-payment endpoint with the hold id and ticket ids; only a
// holdless session falls back to the quantity-based path. Backend failures
// leave the hold alive so the user can retry.
func (s *Session) Submit(ctx context.Context, buyer models.BuyerInfo, reference string, quantity int, filename string, evidence []byte) error {
	missing := buyer.Validate()
	if strings.TrimSpace(reference) == "" {
		missing = append(missing, "reference")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", common.ErrorValidation, strings.Join(missing, ", "))
	}

	hold := s.LiveHold(ctx)

	s.mu.Lock()
	prev := s.state
	s.state = StateSubmitting
	s.mu.Unlock()

	restore := func() {
		s.mu.Lock()
		s.state = prev
		s.mu.Unlock()
	}

	if hold != nil {
		url, err := s.uploader.Upload(ctx, s.raffleID, filename, evidence)
		if err != nil {
			restore()
			return fmt.Errorf("evidence upload failed: %w", err)
		}

		err = s.api.SubmitReservedPayment(ctx, api.ReservedPaymentRequest{
			RaffleID:    s.raffleID,
			HoldID:      hold.HoldID,
			TicketIDs:   hold.TicketIDs,
			Email:       buyer.Email,
			Document:    buyer.Document,
			State:       buyer.State,
			Phone:       buyer.Phone,
			Reference:   reference,
			EvidenceURL: url,
		})
		if err != nil {
			restore()
			return err
		}
	} else {
		err := s.api.SubmitPayment(ctx, api.PaymentRequest{
			RaffleID:  s.raffleID,
			Quantity:  quantity,
			Email:     buyer.Email,
			Document:  buyer.Document,
			State:     buyer.State,
			Phone:     buyer.Phone,
			Reference: reference,
		}, filename, evidence)
		if err != nil {
			restore()
			return err
		}
	}

	s.mu.Lock()
	if s.state != StateSubmitting {
		// Cancelled or expired while the call was in flight.
		state := s.state
		s.mu.Unlock()
		return fmt.Errorf("payment result discarded, session is %q", state)
	}
	s.hold = nil
	s.state = StateDone
	s.stopTimer()
	s.mu.Unlock()

	if err := s.repo.Clear(ctx, s.raffleID); err != nil {
		s.log.Warn(ctx, "failed to clear persisted hold", "error", err)
	}

	s.log.Info(ctx, "payment submitted", "raffle_id", s.raffleID, "reference", reference)
	return nil
}

// Cancel aborts the purchase: held tickets are released best-effort, the
// persisted hold is cleared, and the countdown stops. Safe to call from any
// state and idempotent once the session is finished.
func (s *Session) Cancel(ctx context.Context, reason CancelReason) {
	s.cancel(ctx, reason)
}

func (s *Session) cancel(ctx context.Context, reason CancelReason) {
	s.mu.Lock()
	if s.state == StateDone || s.state == StateCancelled || s.state == StateExpired {
		s.mu.Unlock()
		return
	}

	hold := s.hold
	s.hold = nil
	if reason == ReasonExpired {
		s.state = StateExpired
	} else {
		s.state = StateCancelled
	}
	s.stopTimer()
	s.mu.Unlock()

	var ticketIDs []string
	if hold != nil {
		ticketIDs = hold.TicketIDs
	} else if stored, err := s.repo.Load(ctx, s.raffleID); err == nil {
		ticketIDs = stored.TicketIDs
	}

	// Best-effort: the user is leaving the flow, a failed release only
	// delays the server-side expiry.
	if len(ticketIDs) > 0 {
		if err := s.api.ReleaseTickets(ctx, ticketIDs); err != nil {
			s.log.Warn(ctx, "failed to release tickets", "error", err)
		}
	}

	if err := s.repo.Clear(ctx, s.raffleID); err != nil {
		s.log.Warn(ctx, "failed to clear persisted hold", "error", err)
	}

	s.log.Info(ctx, "hold cancelled", "raffle_id", s.raffleID, "reason", string(reason))
}
