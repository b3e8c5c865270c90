package domain

import "time"

// Assignee models a support agent who resolves tickets.
type Assignee struct {
	ID            string
	FullName      string
	Email         string
	PasswordHash  string
	ContactNumber string
	Address       string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
