package transaction

import (
	"context"
	"database/sql"
	"time"
)

// HistoryRow is a borrow/return record joined with book/user projections.
type HistoryRow struct {
	TransactionID int64      `json:"transaction_id"`
	BookID        int64      `json:"book_id"`
	BookTitle     string     `json:"book_title"`
	BookAuthor    string     `json:"book_author"`
	UserID        int64      `json:"user_id"`
	UserName      string     `json:"user_name"`
	UserEmail     string     `json:"user_email"`
	BorrowedAt    time.Time  `json:"borrowed_at"`
	ReturnedAt    *time.Time `json:"returned_at,omitempty"`
}

type Repo interface {
	InsertBorrow(ctx context.Context, tx *sql.Tx, userID, bookID int64) (int64, error)
	// CloseOpen stamps returned_at on the open record for (user, book).
	// Returns false if no open record exists.
	CloseOpen(ctx context.Context, tx *sql.Tx, userID, bookID int64, returnedAt time.Time) (bool, error)

	ListForUser(ctx context.Context, userID int64) ([]HistoryRow, error)
	ListAll(ctx context.Context) ([]HistoryRow, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) InsertBorrow(ctx context.Context, tx *sql.Tx, userID, bookID int64) (int64, error) {
	const q = `
		INSERT INTO transactions (user_id, book_id)
		VALUES ($1, $2)
		RETURNING id`
	var id int64
	if err := tx.QueryRowContext(ctx, q, userID, bookID).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repo) CloseOpen(ctx context.Context, tx *sql.Tx, userID, bookID int64, returnedAt time.Time) (bool, error) {
	const q = `
		UPDATE transactions
		SET returned_at = $3
		WHERE user_id = $1
		  AND book_id = $2
		  AND returned_at IS NULL`
	res, err := tx.ExecContext(ctx, q, userID, bookID, returnedAt)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}

const historyQuery = `
		SELECT
		t.id          AS transaction_id,
		t.book_id     AS book_id,
		b.title       AS book_title,
		b.author      AS book_author,
		t.user_id     AS user_id,
		u.name        AS user_name,
		u.email       AS user_email,
		t.borrowed_at AS borrowed_at,
		t.returned_at AS returned_at
		FROM transactions t
		JOIN books b ON b.id = t.book_id
		JOIN users u ON u.id = t.user_id`

func (r *repo) ListForUser(ctx context.Context, userID int64) ([]HistoryRow, error) {
	const q = historyQuery + `
		WHERE t.user_id = $1
		ORDER BY t.borrowed_at DESC, t.id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

func (r *repo) ListAll(ctx context.Context) ([]HistoryRow, error) {
	const q = historyQuery + `
		ORDER BY t.borrowed_at DESC, t.id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

func collect(rows *sql.Rows) ([]HistoryRow, error) {
	var out []HistoryRow
	for rows.Next() {
		var h HistoryRow
		if err := rows.Scan(
			&h.TransactionID, &h.BookID, &h.BookTitle, &h.BookAuthor,
			&h.UserID, &h.UserName, &h.UserEmail,
			&h.BorrowedAt, &h.ReturnedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
