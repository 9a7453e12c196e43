package model

import (
	"time"

	"github.com/google/uuid"
)

// Announcement is a notice published by a church. ExpiresAt is optional;
// a nil value means the announcement never expires.
type Announcement struct {
	Base

	ChurchID  uuid.UUID  `db:"church_id" json:"churchId"`
	Title     string     `db:"title" json:"title"`
	Body      string     `db:"body" json:"body"`
	PublishAt time.Time  `db:"publish_at" json:"publishAt"`
	ExpiresAt *time.Time `db:"expires_at" json:"expiresAt,omitempty"`
}
