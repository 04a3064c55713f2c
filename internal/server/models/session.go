package models

import "time"

// Session binds an opaque bearer token to its owner. A user has at most one
// session; it is created on first login and never rotated.
type Session struct {
	Token     string
	UserID    string
	UserEmail string
	CreatedAt time.Time
}
