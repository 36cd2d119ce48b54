package models

import "time"

// Account represents a user account in the system.
type Account struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	ProfilePic   string    `json:"profile_pic,omitempty"`
	PasswordHash string    `json:"-"` // Never expose this to the client
	CreatedAt    time.Time `json:"createdAt"`
}

// PublicView returns a copy of the account with credential material removed.
func (a Account) PublicView() Account {
	a.PasswordHash = ""
	return a
}
