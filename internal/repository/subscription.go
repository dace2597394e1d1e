package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/newsroom/newsroom/internal/model"
)

// SubscriptionTx is an open onboarding transaction.
// Rollback is safe to defer: it is a no-op once Commit has been called.
type SubscriptionTx interface {
	InsertSubscriber(ctx context.Context, sub *model.Subscriber) error
	StoreToken(ctx context.Context, subscriberID model.SubscriberID, token string) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// ConfirmedEmail is one row of the confirmed-subscriber listing.
// Err is set when the stored address no longer passes validation.
type ConfirmedEmail struct {
	Raw   string
	Email model.SubscriberEmail
	Err   error
}

// Begin acquires a connection and opens an onboarding transaction.
func (r *Repository) Begin(ctx context.Context) (SubscriptionTx, error) {
	conn, err := r.acquire(ctx)
	if err != nil {
		return nil, dbError("acquire connection", err)
	}

	tx, err := conn.Begin(ctx)
	if err != nil {
		conn.Release()
		return nil, dbError("begin transaction", err)
	}

	return &pgSubscriptionTx{conn: conn, tx: tx}, nil
}

type pgSubscriptionTx struct {
	conn *pgxpool.Conn
	tx   pgx.Tx
	done bool
}

func (t *pgSubscriptionTx) InsertSubscriber(ctx context.Context, sub *model.Subscriber) error {
	query := `
		INSERT INTO subscriptions (id, name, email, subscribed_at, status)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := t.tx.Exec(ctx, query,
		sub.ID.String(),
		sub.Name,
		sub.Email,
		sub.SubscribedAt,
		string(sub.Status),
	)
	if err != nil {
		return dbError("insert subscriber", err)
	}
	return nil
}

func (t *pgSubscriptionTx) StoreToken(ctx context.Context, subscriberID model.SubscriberID, token string) error {
	query := `
		INSERT INTO subscription_tokens (subscriber_id, subscription_token)
		VALUES ($1, $2)
	`

	if _, err := t.tx.Exec(ctx, query, subscriberID.String(), token); err != nil {
		return dbError("store token", err)
	}
	return nil
}

func (t *pgSubscriptionTx) Commit(ctx context.Context) error {
	if t.done {
		return dbError("commit", pgx.ErrTxClosed)
	}
	t.done = true
	defer t.conn.Release()

	if err := t.tx.Commit(ctx); err != nil {
		return dbError("commit", err)
	}
	return nil
}

func (t *pgSubscriptionTx) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	defer t.conn.Release()

	if err := t.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return dbError("rollback", err)
	}
	return nil
}

// GetSubscriberIDByToken looks up the subscriber a confirmation token was issued to.
// A token that matches nothing returns found=false and a nil error.
func (r *Repository) GetSubscriberIDByToken(ctx context.Context, token string) (model.SubscriberID, bool, error) {
	query := `
		SELECT subscriber_id
		FROM subscription_tokens
		WHERE subscription_token = $1
		LIMIT 1
	`

	var (
		raw   string
		found bool
	)
	err := r.withConn(ctx, "get subscriber id by token", func(conn *pgxpool.Conn) error {
		if err := conn.QueryRow(ctx, query, token).Scan(&raw); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil
			}
			return dbError("get subscriber id by token", err)
		}
		found = true
		return nil
	})
	if err != nil || !found {
		return "", false, err
	}

	id, err := model.ParseSubscriberID(raw)
	if err != nil {
		return "", false, domainError("get subscriber id by token", err)
	}
	return id, true, nil
}

// UpdateConfirmationStatus marks the subscriber confirmed.
// It is unconditional, so re-confirming an already confirmed subscriber succeeds.
func (r *Repository) UpdateConfirmationStatus(ctx context.Context, id model.SubscriberID) error {
	query := `UPDATE subscriptions SET status = $1 WHERE id = $2`

	return r.withConn(ctx, "update confirmation status", func(conn *pgxpool.Conn) error {
		if _, err := conn.Exec(ctx, query, string(model.StatusConfirmed), id.String()); err != nil {
			return dbError("update confirmation status", err)
		}
		return nil
	})
}

// ListConfirmedEmails returns the address of every confirmed subscriber.
// Each address is re-validated; a row that fails carries its error instead
// of aborting the whole read.
func (r *Repository) ListConfirmedEmails(ctx context.Context) ([]ConfirmedEmail, error) {
	query := `
		SELECT email
		FROM subscriptions
		WHERE status = $1
		ORDER BY subscribed_at, id
	`

	var out []ConfirmedEmail
	err := r.withConn(ctx, "list confirmed emails", func(conn *pgxpool.Conn) error {
		rows, err := conn.Query(ctx, query, string(model.StatusConfirmed))
		if err != nil {
			return dbError("list confirmed emails", err)
		}
		defer rows.Close()

		for rows.Next() {
			var raw string
			if err := rows.Scan(&raw); err != nil {
				return dbError("list confirmed emails", err)
			}
			out = append(out, newConfirmedEmail(raw))
		}
		if err := rows.Err(); err != nil {
			return dbError("list confirmed emails", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func newConfirmedEmail(raw string) ConfirmedEmail {
	email, err := model.ParseSubscriberEmail(raw)
	return ConfirmedEmail{Raw: raw, Email: email, Err: err}
}

// GetSubscriber loads a subscriber by ID.
func (r *Repository) GetSubscriber(ctx context.Context, id model.SubscriberID) (*model.Subscriber, error) {
	query := `
		SELECT id, name, email, subscribed_at, status
		FROM subscriptions
		WHERE id = $1
	`

	var (
		sub       model.Subscriber
		rawID     string
		rawStatus string
	)
	err := r.withConn(ctx, "get subscriber", func(conn *pgxpool.Conn) error {
		err := conn.QueryRow(ctx, query, id.String()).Scan(
			&rawID,
			&sub.Name,
			&sub.Email,
			&sub.SubscribedAt,
			&rawStatus,
		)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrSubscriberNotFound
		}
		if err != nil {
			return dbError("get subscriber", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if sub.ID, err = model.ParseSubscriberID(rawID); err != nil {
		return nil, domainError("get subscriber", err)
	}
	if sub.Status, err = model.ParseConfirmationStatus(rawStatus); err != nil {
		return nil, domainError("get subscriber", err)
	}

	return &sub, nil
}

// CountTokens returns how many tokens were issued to a subscriber.
func (r *Repository) CountTokens(ctx context.Context, id model.SubscriberID) (int, error) {
	var n int
	err := r.withConn(ctx, "count tokens", func(conn *pgxpool.Conn) error {
		err := conn.QueryRow(ctx, `SELECT count(*) FROM subscription_tokens WHERE subscriber_id = $1`, id.String()).Scan(&n)
		if err != nil {
			return dbError("count tokens", err)
		}
		return nil
	})
	return n, err
}
