package model

// Church is a congregation site. Name is unique across the network.
type Church struct {
	Base

	Name    string  `db:"name" json:"name"`
	City    string  `db:"city" json:"city"`
	Address *string `db:"address" json:"address,omitempty"`
	Phone   *string `db:"phone" json:"phone,omitempty"`
}
