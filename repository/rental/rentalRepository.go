// repository/rental/repo.go
package rental

import (
	"context"
	"database/sql"
	"time"
)

// HistoryRow is a rental joined with minimal book/user projections.
// The user's credential never leaves the users table.
type HistoryRow struct {
	RentalID    int64     `json:"rental_id"`
	BookID      int64     `json:"book_id"`
	BookTitle   string    `json:"book_title"`
	BookAuthor  string    `json:"book_author"`
	BookCover   string    `json:"book_cover,omitempty"`
	UserID      int64     `json:"user_id"`
	UserName    string    `json:"user_name"`
	UserEmail   string    `json:"user_email"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	TotalRent   float64   `json:"total_rent"`
	ExtraCharge float64   `json:"extra_charge"`
	CreatedAt   time.Time `json:"created_at"`
}

type Repo interface {
	// Insert participates in the caller's transaction so the rental row and
	// the availability flip commit or roll back together.
	Insert(ctx context.Context, tx *sql.Tx, userID, bookID int64, start, end time.Time, totalRent, extraCharge float64) (int64, error)

	ListForUser(ctx context.Context, userID int64) ([]HistoryRow, error)
	ListAll(ctx context.Context) ([]HistoryRow, error)
}

type repo struct {
	db *sql.DB
}

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Insert(ctx context.Context, tx *sql.Tx, userID, bookID int64, start, end time.Time, totalRent, extraCharge float64) (int64, error) {
	const q = `
		INSERT INTO rentals (book_id, user_id, start_date, end_date, total_rent, extra_charge)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	var id int64
	if err := tx.QueryRowContext(ctx, q, bookID, userID, start, end, totalRent, extraCharge).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

const historyQuery = `
		SELECT
		r.id           AS rental_id,
		r.book_id      AS book_id,
		b.title        AS book_title,
		b.author       AS book_author,
		b.cover_image  AS book_cover,
		r.user_id      AS user_id,
		u.name         AS user_name,
		u.email        AS user_email,
		r.start_date   AS start_date,
		r.end_date     AS end_date,
		r.total_rent   AS total_rent,
		r.extra_charge AS extra_charge,
		r.created_at   AS created_at
		FROM rentals r
		JOIN books b ON b.id = r.book_id
		JOIN users u ON u.id = r.user_id`

func (r *repo) ListForUser(ctx context.Context, userID int64) ([]HistoryRow, error) {
	const q = historyQuery + `
		WHERE r.user_id = $1
		ORDER BY r.created_at DESC, r.id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectHistory(rows)
}

func (r *repo) ListAll(ctx context.Context) ([]HistoryRow, error) {
	const q = historyQuery + `
		ORDER BY r.created_at DESC, r.id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectHistory(rows)
}

func collectHistory(rows *sql.Rows) ([]HistoryRow, error) {
	var out []HistoryRow
	for rows.Next() {
		var h HistoryRow
		if err := rows.Scan(
			&h.RentalID, &h.BookID, &h.BookTitle, &h.BookAuthor, &h.BookCover,
			&h.UserID, &h.UserName, &h.UserEmail,
			&h.StartDate, &h.EndDate, &h.TotalRent, &h.ExtraCharge, &h.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
