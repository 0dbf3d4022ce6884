package models

import "time"

// Account is a credential record in the account directory.
type Account struct {
	Username  string    `json:"username"`
	Password  string    `json:"-"` // Stored form depends on the password storage policy
	CreatedAt time.Time `json:"createdAt"`
}
