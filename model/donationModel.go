// model/donation.go
package model

import "time"

type Donation struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	PublishingYear string    `json:"publishing_year"`
	Quantity       int       `json:"quantity"`
	Condition      string    `json:"condition"`
	DonorName      string    `json:"donor_name"`
	DonorEmail     string    `json:"donor_email"`
	DonorPhone     string    `json:"donor_phone"`
	DonorAddress   string    `json:"donor_address"`
	CreatedAt      time.Time `json:"created_at"`
}
