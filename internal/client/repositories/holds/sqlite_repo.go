package holds

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/prizoapp/prizo-cli/internal/client/models"
	"github.com/prizoapp/prizo-cli/internal/common"
	"github.com/prizoapp/prizo-cli/internal/dbx"
)

const termsAcceptedKey = "terms_accepted"

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

var _ Repository = (*SQLiteRepository)(nil)

func (r *SQLiteRepository) Save(ctx context.Context, raffleID string, hold models.Hold) error {

	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {

		query := `INSERT INTO holds (raffle_id, hold_id, expires_at) VALUES (?, ?, ?)
			ON CONFLICT(raffle_id) DO UPDATE SET hold_id=excluded.hold_id, expires_at=excluded.expires_at`
		if _, err := tx.ExecContext(ctx, query, raffleID, hold.HoldID, hold.ExpiresAt.Unix()); err != nil {
			return fmt.Errorf("failed to save hold: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM hold_tickets WHERE raffle_id=?`, raffleID); err != nil {
			return fmt.Errorf("failed to clear hold tickets: %w", err)
		}

		for n, ticketID := range hold.TicketIDs {
			query := `INSERT INTO hold_tickets (raffle_id, ticket_id, position) VALUES (?, ?, ?)`
			if _, err := tx.ExecContext(ctx, query, raffleID, ticketID, n); err != nil {
				return fmt.Errorf("failed to save hold ticket: %w", err)
			}
		}

		return nil
	})
}

func (r *SQLiteRepository) Load(ctx context.Context, raffleID string) (*models.Hold, error) {

	row := r.db.QueryRowContext(ctx, `SELECT hold_id, expires_at FROM holds WHERE raffle_id=?`, raffleID)

	var holdID string
	var expiresAt int64
	if err := row.Scan(&holdID, &expiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to load hold: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT ticket_id FROM hold_tickets WHERE raffle_id=? ORDER BY position`, raffleID)
	if err != nil {
		return nil, fmt.Errorf("failed to load hold tickets: %w", err)
	}
	defer rows.Close()

	var ticketIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ticketIDs = append(ticketIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	hold := &models.Hold{
		HoldID:    holdID,
		TicketIDs: ticketIDs,
		ExpiresAt: time.Unix(expiresAt, 0),
	}

	if !hold.Loadable() {
		return nil, common.ErrorNotFound
	}

	return hold, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context, raffleID string) error {

	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM hold_tickets WHERE raffle_id=?`, raffleID); err != nil {
			return fmt.Errorf("failed to clear hold tickets: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM holds WHERE raffle_id=?`, raffleID); err != nil {
			return fmt.Errorf("failed to clear hold: %w", err)
		}
		return nil
	})
}

func (r *SQLiteRepository) SetTermsAccepted(ctx context.Context, accepted bool) error {

	value := "0"
	if accepted {
		value = "1"
	}

	query := `INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value=excluded.value`
	if _, err := r.db.ExecContext(ctx, query, termsAcceptedKey, value); err != nil {
		return fmt.Errorf("failed to save terms flag: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) TermsAccepted(ctx context.Context) (bool, error) {

	row := r.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key=?`, termsAcceptedKey)

	var value string
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to load terms flag: %w", err)
	}

	return value == "1", nil
}
