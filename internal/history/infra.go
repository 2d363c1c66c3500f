package history

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pkg/errors"
)

type repo struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) Repo {
	return &repo{db: db}
}

func (r *repo) Save(ctx context.Context, turn *Turn) error {
	if turn.ID == "" {
		turn.ID = uuid.NewString()
	}
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = time.Now().UTC()
	}
	turn.UserID = canonicalUserID(turn.UserID)

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO chat_messages (id, user_id, query, response, source, page, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		turn.ID,
		turn.UserID,
		turn.Query,
		turn.Response,
		turn.Source,
		turn.Page,
		turn.CreatedAt,
	)
	return errors.Wrap(err, "save turn")
}

func (r *repo) List(ctx context.Context, userID string, limit int, before time.Time) ([]Turn, error) {
	canonical := canonicalUserID(userID)

	turns, err := r.list(ctx, canonical, limit, before)
	if err != nil {
		return nil, err
	}

	// Compatibility shim: rows written before user ids were canonicalized
	// may carry the raw string form. One fallback lookup, not a contract.
	if len(turns) == 0 && canonical != userID {
		return r.list(ctx, userID, limit, before)
	}
	return turns, nil
}

func (r *repo) list(ctx context.Context, userID string, limit int, before time.Time) ([]Turn, error) {
	cutoff := time.Now().UTC().Add(-RetentionWindow)

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, query, response, source, page, created_at
		FROM chat_messages
		WHERE user_id = $1 AND created_at < $2 AND created_at >= $3
		ORDER BY created_at DESC
		LIMIT $4
	`, userID, before, cutoff, limit)
	if err != nil {
		return nil, errors.Wrap(err, "query turns")
	}
	defer rows.Close()

	var out []Turn
	for rows.Next() {
		var t Turn
		if err := rows.Scan(&t.ID, &t.UserID, &t.Query, &t.Response, &t.Source, &t.Page, &t.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scan turn")
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate turns")
	}

	// Newest-first limited above; the page itself goes back oldest-first.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func (r *repo) DeleteAll(ctx context.Context, userID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM chat_messages WHERE user_id = ANY($1)
	`, pq.Array(userIDForms(userID)))
	if err != nil {
		return 0, errors.Wrap(err, "delete turns")
	}
	n, err := res.RowsAffected()
	return n, errors.Wrap(err, "rows affected")
}

func (r *repo) Count(ctx context.Context, userID string) (int64, error) {
	cutoff := time.Now().UTC().Add(-RetentionWindow)

	var n int64
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM chat_messages
		WHERE user_id = ANY($1) AND created_at >= $2
	`, pq.Array(userIDForms(userID)), cutoff).Scan(&n)
	return n, errors.Wrap(err, "count turns")
}

// PurgeExpired drops turns past the retention window. A periodic caller
// in cmd stands in for a store-level TTL.
func (r *repo) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM chat_messages WHERE created_at < $1
	`, time.Now().UTC().Add(-RetentionWindow))
	if err != nil {
		return 0, errors.Wrap(err, "purge expired turns")
	}
	n, err := res.RowsAffected()
	return n, errors.Wrap(err, "rows affected")
}

// canonicalUserID lowercases ids that parse as UUIDs; anything else is
// stored verbatim.
func canonicalUserID(userID string) string {
	if u, err := uuid.Parse(userID); err == nil {
		return u.String()
	}
	return userID
}

func userIDForms(userID string) []string {
	canonical := canonicalUserID(userID)
	if canonical == userID {
		return []string{userID}
	}
	return []string{canonical, userID}
}
