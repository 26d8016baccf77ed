package transaction_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"libraryrental/model"
	trepo "libraryrental/repository/transaction"
	"libraryrental/service/availability"
	transactionsvc "libraryrental/service/transaction"
)

type fakeStore struct {
	books  map[int64]*model.Book
	open   map[[2]int64]int64 // (user, book) -> transaction id
	closed int
	nextID int64
}

func newStore(books ...*model.Book) *fakeStore {
	s := &fakeStore{books: map[int64]*model.Book{}, open: map[[2]int64]int64{}}
	for _, b := range books {
		s.books[b.ID] = b
	}
	return s
}

func (s *fakeStore) RunTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	return fn(nil)
}

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

func (s *fakeStore) InsertBorrow(ctx context.Context, tx *sql.Tx, userID, bookID int64) (int64, error) {
	s.nextID++
	s.open[[2]int64{userID, bookID}] = s.nextID
	return s.nextID, nil
}

func (s *fakeStore) CloseOpen(ctx context.Context, tx *sql.Tx, userID, bookID int64, returnedAt time.Time) (bool, error) {
	k := [2]int64{userID, bookID}
	if _, ok := s.open[k]; !ok {
		return false, nil
	}
	delete(s.open, k)
	s.closed++
	return true, nil
}

func (s *fakeStore) ListForUser(ctx context.Context, userID int64) ([]trepo.HistoryRow, error) {
	return nil, nil
}
func (s *fakeStore) ListAll(ctx context.Context) ([]trepo.HistoryRow, error) { return nil, nil }

func newService(s *fakeStore) transactionsvc.Service {
	return transactionsvc.New(s, availability.New(s), s)
}

func TestBorrow_Success(t *testing.T) {
	s := newStore(&model.Book{ID: 1, Available: true, Title: "Dune"})
	svc := newService(s)

	b, err := svc.Borrow(context.Background(), 7, 1)
	require.NoError(t, err)
	require.False(t, b.Available)
	require.Equal(t, int64(7), *b.BorrowedBy)
	require.NotNil(t, b.DueDate)

	// Due date roughly two weeks out.
	require.WithinDuration(t, time.Now().UTC().Add(transactionsvc.BorrowPeriod), *b.DueDate, time.Minute)

	// Open transaction recorded.
	require.Contains(t, s.open, [2]int64{7, 1})
}

func TestBorrow_Unavailable(t *testing.T) {
	s := newStore(&model.Book{ID: 1, Available: true})
	svc := newService(s)
	ctx := context.Background()

	_, err := svc.Borrow(ctx, 7, 1)
	require.NoError(t, err)

	_, err = svc.Borrow(ctx, 8, 1)
	require.ErrorIs(t, err, availability.ErrUnavailable)
	require.Len(t, s.open, 1)
}

func TestBorrow_NotFound(t *testing.T) {
	svc := newService(newStore())
	_, err := svc.Borrow(context.Background(), 7, 99)
	require.ErrorIs(t, err, availability.ErrNotFound)
}

func TestReturn_Success(t *testing.T) {
	s := newStore(&model.Book{ID: 1, Available: true})
	svc := newService(s)
	ctx := context.Background()

	_, err := svc.Borrow(ctx, 7, 1)
	require.NoError(t, err)

	b, err := svc.Return(ctx, 7, 1, false)
	require.NoError(t, err)
	require.True(t, b.Available)
	require.Nil(t, b.BorrowedBy)
	require.Nil(t, b.DueDate)

	require.Empty(t, s.open)
	require.Equal(t, 1, s.closed)
}

func TestReturn_NonOwnerDenied(t *testing.T) {
	s := newStore(&model.Book{ID: 1, Available: true})
	svc := newService(s)
	ctx := context.Background()

	_, err := svc.Borrow(ctx, 7, 1)
	require.NoError(t, err)

	_, err = svc.Return(ctx, 8, 1, false)
	require.ErrorIs(t, err, availability.ErrNotOwner)
	require.False(t, s.books[1].Available)
	require.Len(t, s.open, 1)
}

func TestReturn_AdminClosesBorrowersRecord(t *testing.T) {
	s := newStore(&model.Book{ID: 1, Available: true})
	svc := newService(s)
	ctx := context.Background()

	_, err := svc.Borrow(ctx, 7, 1)
	require.NoError(t, err)

	// Admin (user 99) returns on behalf of user 7.
	_, err = svc.Return(ctx, 99, 1, true)
	require.NoError(t, err)
	require.True(t, s.books[1].Available)
	require.Empty(t, s.open)
}

func TestReturn_NotBorrowed(t *testing.T) {
	s := newStore(&model.Book{ID: 1, Available: true})
	svc := newService(s)

	_, err := svc.Return(context.Background(), 7, 1, false)
	require.ErrorIs(t, err, availability.ErrNotBorrowed)
}
