package transaction

import (
	"context"
	"database/sql"
	"time"

	"libraryrental/model"
	trepo "libraryrental/repository/transaction"
)

// BorrowPeriod is the due window stamped on single-book borrows.
const BorrowPeriod = 14 * 24 * time.Hour

// HistoryRow = repository shape
type HistoryRow = trepo.HistoryRow

type TxRunner interface {
	RunTx(ctx context.Context, fn func(tx *sql.Tx) error) error
}

type Guard interface {
	Reserve(ctx context.Context, tx *sql.Tx, bookID, userID int64, due time.Time) (*model.Book, error)
	Release(ctx context.Context, tx *sql.Tx, bookID, userID int64, admin bool) (*model.Book, error)
}

type Repo interface {
	InsertBorrow(ctx context.Context, tx *sql.Tx, userID, bookID int64) (int64, error)
	CloseOpen(ctx context.Context, tx *sql.Tx, userID, bookID int64, returnedAt time.Time) (bool, error)
	ListForUser(ctx context.Context, userID int64) ([]HistoryRow, error)
	ListAll(ctx context.Context) ([]HistoryRow, error)
}

type Service interface {
	// Borrow reserves the book for two weeks and opens a transaction record.
	Borrow(ctx context.Context, userID, bookID int64) (*model.Book, error)

	// Return releases the book and closes the open transaction record.
	// Admin may return a book borrowed by anyone.
	Return(ctx context.Context, userID, bookID int64, admin bool) (*model.Book, error)

	History(ctx context.Context, userID int64, admin bool) ([]HistoryRow, error)
}

type service struct {
	txr   TxRunner
	guard Guard
	r     Repo
}

func New(txr TxRunner, guard Guard, r Repo) Service {
	return &service{txr: txr, guard: guard, r: r}
}

func (s *service) Borrow(ctx context.Context, userID, bookID int64) (*model.Book, error) {
	var book *model.Book
	due := time.Now().UTC().Add(BorrowPeriod)

	err := s.txr.RunTx(ctx, func(tx *sql.Tx) error {
		b, err := s.guard.Reserve(ctx, tx, bookID, userID, due)
		if err != nil {
			return err
		}
		if _, err := s.r.InsertBorrow(ctx, tx, userID, bookID); err != nil {
			return err
		}
		book = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Reflect the committed state in the response.
	book.Available = false
	book.BorrowedBy = &userID
	book.DueDate = &due
	return book, nil
}

func (s *service) Return(ctx context.Context, userID, bookID int64, admin bool) (*model.Book, error) {
	var book *model.Book

	err := s.txr.RunTx(ctx, func(tx *sql.Tx) error {
		b, err := s.guard.Release(ctx, tx, bookID, userID, admin)
		if err != nil {
			return err
		}
		// The open record belongs to the actual borrower, not necessarily
		// the caller (admin override).
		owner := userID
		if b.BorrowedBy != nil {
			owner = *b.BorrowedBy
		}
		if _, err := s.r.CloseOpen(ctx, tx, owner, bookID, time.Now().UTC()); err != nil {
			return err
		}
		book = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	book.Available = true
	book.BorrowedBy = nil
	book.DueDate = nil
	return book, nil
}

func (s *service) History(ctx context.Context, userID int64, admin bool) ([]HistoryRow, error) {
	if admin {
		return s.r.ListAll(ctx)
	}
	return s.r.ListForUser(ctx, userID)
}
