package donationsvc

import (
	"context"
	"errors"

	"libraryrental/model"
	donationrepo "libraryrental/repository/donation"
)

var ErrInvalidPayload = errors.New("invalid payload")

type Service interface {
	Create(ctx context.Context, d *model.Donation) error
	List(ctx context.Context) ([]model.Donation, error)
}

type service struct{ r donationrepo.Repo }

func New(r donationrepo.Repo) Service { return &service{r: r} }

func (s *service) Create(ctx context.Context, d *model.Donation) error {
	if d.Name == "" || d.Quantity <= 0 || d.DonorName == "" || d.DonorEmail == "" {
		return ErrInvalidPayload
	}
	return s.r.Create(ctx, d)
}

func (s *service) List(ctx context.Context) ([]model.Donation, error) {
	return s.r.List(ctx)
}
