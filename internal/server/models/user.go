// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is the identity + balance record. Coins is never negative.
type User struct {
	ID        string
	Email     string
	Name      string
	Coins     int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
