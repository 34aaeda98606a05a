package domain

import "time"

// Post is a blog entry owned by exactly one user. Ownership never changes.
type Post struct {
	ID       int64
	Title    string
	Body     string
	AuthorID int64
	// AuthorName carries the author's username when the post is loaded
	// joined with its user row, for display only.
	AuthorName string
	Created    time.Time
}
