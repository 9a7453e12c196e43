// Package model defines the persisted entity types.
//
// Every entity embeds Base, which carries the fields the data-access layer
// maintains on its own: identity, timestamps, and the soft-delete marker.
package model

import (
	"time"

	"github.com/google/uuid"
)

// Base provides shared fields for all persistent entities.
//
// Deleted is nil while the entity is active and holds the deletion instant
// once it has been soft-deleted. With omitempty it disappears from normal
// API responses and only shows up on trash listings, where it is non-nil.
type Base struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	CreatedAt time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time  `db:"updated_at" json:"updatedAt"`
	Deleted   *time.Time `db:"deleted" json:"deletedAt,omitempty"`
}
