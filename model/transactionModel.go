// model/transaction.go
package model

import "time"

// Transaction is the lightweight borrow/return record used by the
// single-book flow, distinct from Rental.
type Transaction struct {
	ID         int64      `json:"id"`
	UserID     int64      `json:"user_id"`
	BookID     int64      `json:"book_id"`
	BorrowedAt time.Time  `json:"borrowed_at"`
	ReturnedAt *time.Time `json:"returned_at,omitempty"`
}
