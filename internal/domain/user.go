package domain

import "time"

// User is an admin account able to manage directory listings.
// Accounts are provisioned by the seed command only; there is no
// self-registration.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
