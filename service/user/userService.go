package usersvc

import (
	"context"
	"database/sql"
	"errors"

	"libraryrental/model"
	userrepo "libraryrental/repository/user"
)

var ErrNotFound = errors.New("user not found")

type Service interface {
	Me(ctx context.Context, id int64) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
}

type service struct{ ur userrepo.Repo }

func New(ur userrepo.Repo) Service { return &service{ur: ur} }

func (s *service) Me(ctx context.Context, id int64) (*model.User, error) {
	u, err := s.ur.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *service) List(ctx context.Context) ([]model.User, error) {
	return s.ur.List(ctx)
}
