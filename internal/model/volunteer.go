package model

import "github.com/google/uuid"

// Volunteer is a member serving in a ministry of one church.
// Email is unique across the network.
type Volunteer struct {
	Base

	ChurchID uuid.UUID `db:"church_id" json:"churchId"`
	Name     string    `db:"name" json:"name"`
	Email    string    `db:"email" json:"email"`
	Phone    *string   `db:"phone" json:"phone,omitempty"`
	Ministry *string   `db:"ministry" json:"ministry,omitempty"`
}
