// model/book.go
package model

import "time"

type Book struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Author      string     `json:"author"`
	Genre       string     `json:"genre,omitempty"`
	Description string     `json:"description,omitempty"`
	CoverImage  string     `json:"cover_image,omitempty"`
	RentPerDay  float64    `json:"rent_per_day"`
	Available   bool       `json:"available"`
	BorrowedBy  *int64     `json:"borrowed_by,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// BookFilter narrows catalog listings. Zero values mean "no filter".
type BookFilter struct {
	Search string // title substring, case-insensitive
	Genre  string // exact match
	Author string // author substring, case-insensitive
}
