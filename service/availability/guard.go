// Package availability enforces at-most-one-borrower-at-a-time per book.
package availability

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"libraryrental/model"
)

var (
	ErrNotFound    = errors.New("book not found")
	ErrUnavailable = errors.New("book not available")
	ErrNotBorrowed = errors.New("book not borrowed")
	ErrNotOwner    = errors.New("not borrowed by this user")
)

// Repo is the slice of the book repository the guard needs. All mutations run
// on the caller's transaction; GetForUpdate must take a row lock so the
// read-decide-write sequence serializes concurrent attempts on one book.
type Repo interface {
	GetForUpdate(ctx context.Context, tx *sql.Tx, bookID int64) (*model.Book, error)
	SetBorrowed(ctx context.Context, tx *sql.Tx, bookID, userID int64, due time.Time) error
	SetReturned(ctx context.Context, tx *sql.Tx, bookID int64) error
}

type Guard struct{ r Repo }

func New(r Repo) *Guard { return &Guard{r: r} }

// Reserve flips an available book to borrowed and returns the locked row.
// The caller must commit the enclosing transaction for the flip to stick.
func (g *Guard) Reserve(ctx context.Context, tx *sql.Tx, bookID, userID int64, due time.Time) (*model.Book, error) {
	b, err := g.r.GetForUpdate(ctx, tx, bookID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !b.Available {
		return nil, ErrUnavailable
	}
	if err := g.r.SetBorrowed(ctx, tx, bookID, userID, due); err != nil {
		return nil, err
	}
	return b, nil
}

// Release reverts a borrowed book to available. Only the borrower may release;
// admin bypasses the ownership check.
func (g *Guard) Release(ctx context.Context, tx *sql.Tx, bookID, userID int64, admin bool) (*model.Book, error) {
	b, err := g.r.GetForUpdate(ctx, tx, bookID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if b.Available {
		return nil, ErrNotBorrowed
	}
	if !admin && (b.BorrowedBy == nil || *b.BorrowedBy != userID) {
		return nil, ErrNotOwner
	}
	if err := g.r.SetReturned(ctx, tx, bookID); err != nil {
		return nil, err
	}
	return b, nil
}
