package rental_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"libraryrental/model"
	rrepo "libraryrental/repository/rental"
	"libraryrental/service/availability"
	rentalsvc "libraryrental/service/rental"
)

// fakeStore backs the whole checkout path in memory: book state for the
// guard, a rental table for the ledger, and a transaction runner that
// discards writes made by a failed item.
type fakeStore struct {
	books   map[int64]*model.Book
	rentals []fakeRental
	nextID  int64

	insertErr error
}

type fakeRental struct {
	id             int64
	userID, bookID int64
	total, extra   float64
}

func newStore(books ...*model.Book) *fakeStore {
	s := &fakeStore{books: map[int64]*model.Book{}, nextID: 100}
	for _, b := range books {
		s.books[b.ID] = b
	}
	return s
}

// TxRunner: snapshot state, roll back on error.
func (s *fakeStore) RunTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	snapBooks := map[int64]*model.Book{}
	for id, b := range s.books {
		cp := *b
		snapBooks[id] = &cp
	}
	snapRentals := append([]fakeRental(nil), s.rentals...)

	if err := fn(nil); err != nil {
		s.books = snapBooks
		s.rentals = snapRentals
		return err
	}
	return nil
}

// availability.Repo
func (s *fakeStore) GetForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Book, error) {
	b, ok := s.books[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *b
	return &cp, nil
}

func (s *fakeStore) SetBorrowed(ctx context.Context, tx *sql.Tx, id, userID int64, due time.Time) error {
	b := s.books[id]
	b.Available = false
	b.BorrowedBy = &userID
	b.DueDate = &due
	return nil
}

func (s *fakeStore) SetReturned(ctx context.Context, tx *sql.Tx, id int64) error {
	b := s.books[id]
	b.Available = true
	b.BorrowedBy = nil
	b.DueDate = nil
	return nil
}

// rentalsvc.Ledger
func (s *fakeStore) Insert(ctx context.Context, tx *sql.Tx, userID, bookID int64, start, end time.Time, totalRent, extraCharge float64) (int64, error) {
	if s.insertErr != nil {
		return 0, s.insertErr
	}
	s.nextID++
	s.rentals = append(s.rentals, fakeRental{id: s.nextID, userID: userID, bookID: bookID, total: totalRent, extra: extraCharge})
	return s.nextID, nil
}

func (s *fakeStore) ListForUser(ctx context.Context, userID int64) ([]rrepo.HistoryRow, error) {
	return nil, nil
}
func (s *fakeStore) ListAll(ctx context.Context) ([]rrepo.HistoryRow, error) { return nil, nil }

func newService(s *fakeStore) rentalsvc.Service {
	return rentalsvc.New(s, availability.New(s), s)
}

func item(bookID int64, start, end string) rentalsvc.CheckoutItem {
	st, _ := time.Parse("2006-01-02", start)
	en, _ := time.Parse("2006-01-02", end)
	return rentalsvc.CheckoutItem{BookID: bookID, StartDate: st, EndDate: en}
}

func TestCheckout_NoItems(t *testing.T) {
	svc := newService(newStore())
	_, err := svc.Checkout(context.Background(), 1, nil, "card")
	require.ErrorIs(t, err, rentalsvc.ErrNoItems)
}

func TestCheckout_SingleSuccess(t *testing.T) {
	s := newStore(&model.Book{ID: 1, Available: true, RentPerDay: 2})
	svc := newService(s)

	out, err := svc.Checkout(context.Background(), 7, []rentalsvc.CheckoutItem{
		item(1, "2024-01-01", "2024-01-11"),
	}, "card")
	require.NoError(t, err)
	require.NotNil(t, out.OrderID)
	require.Len(t, out.Results, 1)
	require.Equal(t, rentalsvc.StatusSuccess, out.Results[0].Status)
	require.Equal(t, *out.Results[0].RentalID, *out.OrderID)

	// Server recomputed the price: 10 days at 2/day, 3 extra days.
	require.Len(t, s.rentals, 1)
	require.Equal(t, 20.0, s.rentals[0].total)
	require.Equal(t, 6.0, s.rentals[0].extra)

	// Book flipped to borrowed with the end date as due date.
	b := s.books[1]
	require.False(t, b.Available)
	require.Equal(t, int64(7), *b.BorrowedBy)
}

func TestCheckout_PartialFailure(t *testing.T) {
	s := newStore(&model.Book{ID: 2, Available: true, RentPerDay: 3})
	svc := newService(s)

	out, err := svc.Checkout(context.Background(), 7, []rentalsvc.CheckoutItem{
		item(999, "2024-01-01", "2024-01-05"),
		item(2, "2024-01-01", "2024-01-05"),
	}, "card")
	require.NoError(t, err)

	require.Equal(t, rentalsvc.StatusFailed, out.Results[0].Status)
	require.Equal(t, rentalsvc.ReasonBookNotFound, out.Results[0].Reason)
	require.Equal(t, rentalsvc.StatusSuccess, out.Results[1].Status)

	// orderId is the successful item's rental id.
	require.NotNil(t, out.OrderID)
	require.Equal(t, *out.Results[1].RentalID, *out.OrderID)
	require.Len(t, s.rentals, 1)
}

func TestCheckout_DuplicateBookInBatch(t *testing.T) {
	s := newStore(&model.Book{ID: 1, Available: true, RentPerDay: 1})
	svc := newService(s)

	out, err := svc.Checkout(context.Background(), 7, []rentalsvc.CheckoutItem{
		item(1, "2024-01-01", "2024-01-05"),
		item(1, "2024-01-01", "2024-01-05"),
	}, "card")
	require.NoError(t, err)

	require.Equal(t, rentalsvc.StatusSuccess, out.Results[0].Status)
	require.Equal(t, rentalsvc.StatusFailed, out.Results[1].Status)
	require.Equal(t, rentalsvc.ReasonBookUnavailable, out.Results[1].Reason)
	require.Len(t, s.rentals, 1)
}

func TestCheckout_InvalidDateRangeLeavesBookAlone(t *testing.T) {
	s := newStore(&model.Book{ID: 1, Available: true, RentPerDay: 1})
	svc := newService(s)

	out, err := svc.Checkout(context.Background(), 7, []rentalsvc.CheckoutItem{
		item(1, "2024-01-05", "2024-01-05"),
	}, "card")
	require.NoError(t, err)

	require.Nil(t, out.OrderID)
	require.Equal(t, rentalsvc.ReasonInvalidDateRange, out.Results[0].Reason)
	require.True(t, s.books[1].Available)
	require.Empty(t, s.rentals)
}

func TestCheckout_ZeroStartDateRejected(t *testing.T) {
	s := newStore(&model.Book{ID: 1, Available: true, RentPerDay: 1})
	svc := newService(s)

	// A garbage startDate reaches the service as a zero time with a valid
	// end date; end.After(zero) alone would let it through.
	end, _ := time.Parse("2006-01-02", "2024-01-05")
	out, err := svc.Checkout(context.Background(), 7, []rentalsvc.CheckoutItem{
		{BookID: 1, EndDate: end},
	}, "card")
	require.NoError(t, err)

	require.Nil(t, out.OrderID)
	require.Equal(t, rentalsvc.StatusFailed, out.Results[0].Status)
	require.Equal(t, rentalsvc.ReasonInvalidDateRange, out.Results[0].Reason)
	require.True(t, s.books[1].Available)
	require.Empty(t, s.rentals)
}

func TestCheckout_ZeroEndDateRejected(t *testing.T) {
	s := newStore(&model.Book{ID: 1, Available: true, RentPerDay: 1})
	svc := newService(s)

	start, _ := time.Parse("2006-01-02", "2024-01-01")
	out, err := svc.Checkout(context.Background(), 7, []rentalsvc.CheckoutItem{
		{BookID: 1, StartDate: start},
	}, "card")
	require.NoError(t, err)

	require.Equal(t, rentalsvc.ReasonInvalidDateRange, out.Results[0].Reason)
	require.True(t, s.books[1].Available)
	require.Empty(t, s.rentals)
}

func TestCheckout_AllFailedHasNoOrderID(t *testing.T) {
	s := newStore()
	svc := newService(s)

	out, err := svc.Checkout(context.Background(), 7, []rentalsvc.CheckoutItem{
		item(1, "2024-01-01", "2024-01-05"),
		item(2, "2024-01-05", "2024-01-01"),
	}, "card")
	require.NoError(t, err)
	require.Nil(t, out.OrderID)
	for _, r := range out.Results {
		require.Equal(t, rentalsvc.StatusFailed, r.Status)
	}
}

func TestCheckout_FailedItemFullyRolledBack(t *testing.T) {
	s := newStore(&model.Book{ID: 1, Available: true, RentPerDay: 1})
	s.insertErr = errors.New("insert blew up")
	svc := newService(s)

	_, err := svc.Checkout(context.Background(), 7, []rentalsvc.CheckoutItem{
		item(1, "2024-01-01", "2024-01-05"),
	}, "card")
	require.Error(t, err)

	// No book left unavailable without a matching rental row.
	require.True(t, s.books[1].Available)
	require.Empty(t, s.rentals)
}

func TestCheckout_EarlierSuccessSurvivesLaterStorageError(t *testing.T) {
	s := newStore(
		&model.Book{ID: 1, Available: true, RentPerDay: 1},
		&model.Book{ID: 2, Available: true, RentPerDay: 1},
	)
	svc := newService(s)

	// First item commits, then the ledger starts failing.
	_, err := svc.Checkout(context.Background(), 7, []rentalsvc.CheckoutItem{
		item(1, "2024-01-01", "2024-01-05"),
	}, "card")
	require.NoError(t, err)

	s.insertErr = errors.New("db down")
	_, err = svc.Checkout(context.Background(), 7, []rentalsvc.CheckoutItem{
		item(2, "2024-01-01", "2024-01-05"),
	}, "card")
	require.Error(t, err)

	require.Len(t, s.rentals, 1)
	require.False(t, s.books[1].Available)
	require.True(t, s.books[2].Available)
}
