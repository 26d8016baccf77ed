package booksvc

import (
	"context"
	"database/sql"
	"errors"

	"libraryrental/model"
)

var (
	ErrInvalidPayload = errors.New("invalid payload")
	ErrNotFound       = errors.New("book not found")
)

type Repo interface {
	Create(ctx context.Context, b *model.Book) error
	Update(ctx context.Context, b *model.Book) error
	Delete(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, f model.BookFilter) ([]model.Book, error)
	Detail(ctx context.Context, id int64) (*model.Book, error)
}

type Service interface {
	Create(ctx context.Context, b *model.Book) error
	Update(ctx context.Context, b *model.Book) (*model.Book, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f model.BookFilter) ([]model.Book, error)
	Detail(ctx context.Context, id int64) (*model.Book, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) Create(ctx context.Context, b *model.Book) error {
	if b.Title == "" || b.Author == "" || b.RentPerDay < 0 {
		return ErrInvalidPayload
	}
	return s.r.Create(ctx, b)
}

func (s *service) Update(ctx context.Context, b *model.Book) (*model.Book, error) {
	if b.Title == "" || b.Author == "" || b.RentPerDay < 0 {
		return nil, ErrInvalidPayload
	}
	if err := s.r.Update(ctx, b); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	ok, err := s.r.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *service) List(ctx context.Context, f model.BookFilter) ([]model.Book, error) {
	return s.r.List(ctx, f)
}

func (s *service) Detail(ctx context.Context, id int64) (*model.Book, error) {
	b, err := s.r.Detail(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}
