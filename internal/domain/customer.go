package domain

import "time"

// Customer represents a registered user. Orders reference customers
// optionally; guest checkout leaves the reference null.
type Customer struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Image        string    `json:"image,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
