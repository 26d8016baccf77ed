package rental

import (
	"errors"
	"time"
)

type CheckoutItemReq struct {
	BookID    int64  `json:"id" validate:"required,gt=0"`
	StartDate string `json:"startDate" validate:"required"`
	EndDate   string `json:"endDate" validate:"required"`

	// Client-side previews, never trusted for the persisted amounts.
	TotalRent   *float64 `json:"totalRent,omitempty"`
	ExtraCharge *float64 `json:"extraCharge,omitempty"`
}

type CheckoutReq struct {
	Rentals       []CheckoutItemReq `json:"rentals" validate:"required,min=1,dive"`
	PaymentMethod string            `json:"paymentMethod"`
}

// parseDate accepts RFC3339 timestamps or plain calendar dates.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Time{}, errors.New("invalid date: " + s)
}
