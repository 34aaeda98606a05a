package domain

import "time"

// User represents a registered author. Users are immutable after creation.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
