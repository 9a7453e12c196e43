package model

import (
	"time"

	"github.com/google/uuid"
)

// Offer is a single monetary offering registered for a church.
// Amounts are stored as integer cents; monetary arithmetic is the
// resource service's business, not the data layer's.
type Offer struct {
	Base

	ChurchID    uuid.UUID `db:"church_id" json:"churchId"`
	AmountCents int64     `db:"amount_cents" json:"amountCents"`
	Currency    string    `db:"currency" json:"currency"`
	Kind        string    `db:"kind" json:"kind"`
	OfferedAt   time.Time `db:"offered_at" json:"offeredAt"`
	Note        *string   `db:"note" json:"note,omitempty"`
}
