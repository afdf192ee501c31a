package entity

import "time"

type Booking struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	ServiceType   string
	// Description is optional; empty means "not provided".
	Description   string
	PreferredDate string
	PreferredTime string
	Address       string
	Status        Status
	CreatedAt     time.Time
}

type Feedback struct {
	CustomerName  string
	CustomerEmail string
	Message       string
	Rating        int
	CreatedAt     time.Time
}
