// service/book/book_service_test.go
package booksvc_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"libraryrental/model"
	booksvc "libraryrental/service/book"
)

type repoMock struct {
	createFn func(ctx context.Context, b *model.Book) error
	updateFn func(ctx context.Context, b *model.Book) error
	deleteFn func(ctx context.Context, id int64) (bool, error)
	listFn   func(ctx context.Context, f model.BookFilter) ([]model.Book, error)
	detailFn func(ctx context.Context, id int64) (*model.Book, error)
}

func (m *repoMock) Create(ctx context.Context, b *model.Book) error { return m.createFn(ctx, b) }
func (m *repoMock) Update(ctx context.Context, b *model.Book) error { return m.updateFn(ctx, b) }
func (m *repoMock) Delete(ctx context.Context, id int64) (bool, error) {
	return m.deleteFn(ctx, id)
}
func (m *repoMock) List(ctx context.Context, f model.BookFilter) ([]model.Book, error) {
	return m.listFn(ctx, f)
}
func (m *repoMock) Detail(ctx context.Context, id int64) (*model.Book, error) {
	return m.detailFn(ctx, id)
}

func TestCreate_Validation(t *testing.T) {
	s := booksvc.New(&repoMock{})
	ctx := context.Background()

	if err := s.Create(ctx, &model.Book{Author: "a", RentPerDay: 1}); err != booksvc.ErrInvalidPayload {
		t.Fatalf("expected ErrInvalidPayload for empty title, got %v", err)
	}
	if err := s.Create(ctx, &model.Book{Title: "t", RentPerDay: 1}); err != booksvc.ErrInvalidPayload {
		t.Fatalf("expected ErrInvalidPayload for empty author, got %v", err)
	}
	if err := s.Create(ctx, &model.Book{Title: "t", Author: "a", RentPerDay: -1}); err != booksvc.ErrInvalidPayload {
		t.Fatalf("expected ErrInvalidPayload for negative rent, got %v", err)
	}
}

func TestCreate_Success(t *testing.T) {
	m := &repoMock{
		createFn: func(ctx context.Context, b *model.Book) error {
			b.ID = 42
			b.Available = true
			return nil
		},
	}
	s := booksvc.New(m)

	b := &model.Book{Title: "Clean Code", Author: "Robert Martin", RentPerDay: 2}
	if err := s.Create(context.Background(), b); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if b.ID != 42 || !b.Available {
		t.Fatalf("got id=%d available=%v; want 42 true", b.ID, b.Available)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	m := &repoMock{
		updateFn: func(ctx context.Context, b *model.Book) error { return sql.ErrNoRows },
	}
	s := booksvc.New(m)

	_, err := s.Update(context.Background(), &model.Book{ID: 9, Title: "t", Author: "a"})
	if err != booksvc.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	m := &repoMock{
		deleteFn: func(ctx context.Context, id int64) (bool, error) { return id == 1, nil },
	}
	s := booksvc.New(m)
	ctx := context.Background()

	if err := s.Delete(ctx, 1); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if err := s.Delete(ctx, 2); err != booksvc.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestList_FilterPassthrough(t *testing.T) {
	var got model.BookFilter
	m := &repoMock{
		listFn: func(ctx context.Context, f model.BookFilter) ([]model.Book, error) {
			got = f
			return []model.Book{{ID: 1}}, nil
		},
	}
	s := booksvc.New(m)

	f := model.BookFilter{Search: "dune", Genre: "scifi", Author: "herbert"}
	out, err := s.List(context.Background(), f)
	if err != nil || len(out) != 1 {
		t.Fatalf("List got %v %v; want 1 book nil", out, err)
	}
	if got != f {
		t.Fatalf("filter not passed through: %+v", got)
	}
}

func TestDetail_NotFound(t *testing.T) {
	m := &repoMock{
		detailFn: func(ctx context.Context, id int64) (*model.Book, error) {
			return nil, sql.ErrNoRows
		},
	}
	s := booksvc.New(m)

	if _, err := s.Detail(context.Background(), 99); err != booksvc.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDetail_RepoError(t *testing.T) {
	boom := errors.New("db down")
	m := &repoMock{
		detailFn: func(ctx context.Context, id int64) (*model.Book, error) { return nil, boom },
	}
	s := booksvc.New(m)

	if _, err := s.Detail(context.Background(), 1); !errors.Is(err, boom) {
		t.Fatalf("expected repo error passthrough, got %v", err)
	}
}
