package domain

import "time"

// Memo is a personal note belonging to exactly one user. The owner is set
// when the memo is created and never reassigned afterwards.
type Memo struct {
	ID        int64
	UserID    int64
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
