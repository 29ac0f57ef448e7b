package entity

import "time"

// Profile holds the public-facing extras of a user account. One per user,
// addressable by slug.
type Profile struct {
	ID        int64
	UserID    int64
	Slug      string
	AvatarURL string
	Facebook  string
	Instagram string
	LinkedIn  string
	Twitter   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
