// model/rental.go
package model

import "time"

type Rental struct {
	ID          int64     `json:"id"`
	BookID      int64     `json:"book_id"`
	UserID      int64     `json:"user_id"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	TotalRent   float64   `json:"total_rent"`
	ExtraCharge float64   `json:"extra_charge"`
	CreatedAt   time.Time `json:"created_at"`
}
