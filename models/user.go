package models

import "time"

// User models a registered account that owns a watchlist.
// PasswordHash never crosses the HTTP boundary.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UserProfile is the wire shape returned by the register, login and auth
// endpoints: the account plus the current state of its watchlist.
type UserProfile struct {
	ID        string   `json:"id"`
	Username  string   `json:"username"`
	Watchlist []string `json:"watchlist"`
}
