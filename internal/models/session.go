package models

import "time"

// Session is the server-side record behind an opaque bearer token.
// Only the HMAC of the token is stored; the raw token is handed to the
// client exactly once at sign-in.
type Session struct {
	UserID    int       `json:"user_id"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}
