package domain

import "time"

// PasswordReset is a single-use, time-bounded reset token for a customer.
// Rows are deleted on consumption.
type PasswordReset struct {
	ID         string
	CustomerID string
	Token      string
	ExpiresAt  time.Time
	CreatedAt  time.Time
}

// Expired reports whether the token is past its expiry at the given instant.
func (p PasswordReset) Expired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}
