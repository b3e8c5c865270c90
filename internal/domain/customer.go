package domain

import "time"

// Customer is the domain model for end-users who file tickets.
type Customer struct {
	ID            string
	FullName      string
	Email         string
	PasswordHash  string
	ContactNumber string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
