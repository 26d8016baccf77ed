package rental

import (
	"errors"
	"time"
)

// BasePeriodDays is the rental window included in the base price before the
// per-day overdue surcharge applies.
const BasePeriodDays = 7

var (
	ErrInvalidDateRange = errors.New("end date must be after start date")
	ErrNegativeRate     = errors.New("rent per day must be non-negative")
)

type Quote struct {
	Days        int
	ExtraDays   int
	TotalRent   float64
	ExtraCharge float64
}

// Price computes the authoritative rental cost for a date range. Days are
// whole calendar days, rounded up, minimum 1. Client-side estimates are
// advisory only; persisted amounts always come from here.
func Price(rentPerDay float64, start, end time.Time) (Quote, error) {
	if rentPerDay < 0 {
		return Quote{}, ErrNegativeRate
	}
	if !end.After(start) {
		return Quote{}, ErrInvalidDateRange
	}

	d := end.Sub(start)
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) != 0 {
		days++
	}
	if days < 1 {
		days = 1
	}

	extraDays := days - BasePeriodDays
	if extraDays < 0 {
		extraDays = 0
	}

	return Quote{
		Days:        days,
		ExtraDays:   extraDays,
		TotalRent:   float64(days) * rentPerDay,
		ExtraCharge: float64(extraDays) * rentPerDay,
	}, nil
}
