package rental

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"libraryrental/model"
	rrepo "libraryrental/repository/rental"
	"libraryrental/service/availability"
)

// Failure reasons reported per item in a checkout batch.
const (
	ReasonInvalidDateRange = "Invalid date range"
	ReasonBookNotFound     = "Book not found"
	ReasonBookUnavailable  = "Book not available"
)

var ErrNoItems = errors.New("no rentals provided")

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

type CheckoutItem struct {
	BookID    int64
	StartDate time.Time
	EndDate   time.Time
}

type ItemResult struct {
	BookID   int64  `json:"bookId"`
	Status   string `json:"status"`
	RentalID *int64 `json:"rentalId,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// CheckoutResult carries the per-item outcomes. OrderID is the rental id of
// the first successful item, nil when every item failed.
type CheckoutResult struct {
	OrderID *int64       `json:"orderId"`
	Results []ItemResult `json:"results"`
}

// HistoryRow = repository shape
type HistoryRow = rrepo.HistoryRow

// TxRunner runs fn inside one database transaction, committing on nil and
// rolling back on error.
type TxRunner interface {
	RunTx(ctx context.Context, fn func(tx *sql.Tx) error) error
}

// Guard is the availability guard slice used during checkout.
type Guard interface {
	Reserve(ctx context.Context, tx *sql.Tx, bookID, userID int64, due time.Time) (*model.Book, error)
}

type Ledger interface {
	Insert(ctx context.Context, tx *sql.Tx, userID, bookID int64, start, end time.Time, totalRent, extraCharge float64) (int64, error)
	ListForUser(ctx context.Context, userID int64) ([]HistoryRow, error)
	ListAll(ctx context.Context) ([]HistoryRow, error)
}

type Service interface {
	// Checkout rents each item for its date range. Items fail independently;
	// a failed item never rolls back an earlier success.
	Checkout(ctx context.Context, userID int64, items []CheckoutItem, paymentMethod string) (*CheckoutResult, error)

	History(ctx context.Context, userID int64, admin bool) ([]HistoryRow, error)
}

type service struct {
	txr    TxRunner
	guard  Guard
	ledger Ledger
}

func New(txr TxRunner, guard Guard, ledger Ledger) Service {
	return &service{txr: txr, guard: guard, ledger: ledger}
}

// Checkout processes items sequentially, one transaction per item, so the
// {reserve, price, insert} triplet is atomic per item. paymentMethod is a
// label only and is not persisted anywhere but the response message.
func (s *service) Checkout(ctx context.Context, userID int64, items []CheckoutItem, paymentMethod string) (*CheckoutResult, error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}

	out := &CheckoutResult{Results: make([]ItemResult, 0, len(items))}
	for _, it := range items {
		res, err := s.checkoutOne(ctx, userID, it)
		if err != nil {
			// Storage failure: the in-flight item rolled back, earlier
			// committed items stay committed.
			return nil, err
		}
		if out.OrderID == nil && res.Status == StatusSuccess {
			out.OrderID = res.RentalID
		}
		out.Results = append(out.Results, res)
	}
	return out, nil
}

func (s *service) checkoutOne(ctx context.Context, userID int64, it CheckoutItem) (ItemResult, error) {
	res := ItemResult{BookID: it.BookID, Status: StatusFailed}

	// Zero values mean the caller could not parse a date; reject them here
	// so a missing start date cannot slip past the end-after-start check.
	if it.StartDate.IsZero() || it.EndDate.IsZero() || !it.EndDate.After(it.StartDate) {
		res.Reason = ReasonInvalidDateRange
		return res, nil
	}

	err := s.txr.RunTx(ctx, func(tx *sql.Tx) error {
		b, err := s.guard.Reserve(ctx, tx, it.BookID, userID, it.EndDate)
		if err != nil {
			return err
		}
		q, err := Price(b.RentPerDay, it.StartDate, it.EndDate)
		if err != nil {
			return err
		}
		id, err := s.ledger.Insert(ctx, tx, userID, it.BookID, it.StartDate, it.EndDate, q.TotalRent, q.ExtraCharge)
		if err != nil {
			return err
		}
		res.RentalID = &id
		return nil
	})
	switch {
	case err == nil:
		res.Status = StatusSuccess
	case errors.Is(err, availability.ErrNotFound):
		res.Reason = ReasonBookNotFound
	case errors.Is(err, availability.ErrUnavailable):
		res.Reason = ReasonBookUnavailable
	case errors.Is(err, ErrInvalidDateRange), errors.Is(err, ErrNegativeRate):
		res.Reason = ReasonInvalidDateRange
	default:
		return res, err
	}
	return res, nil
}

func (s *service) History(ctx context.Context, userID int64, admin bool) ([]HistoryRow, error) {
	if admin {
		return s.ledger.ListAll(ctx)
	}
	return s.ledger.ListForUser(ctx, userID)
}
