package model

import (
	"haunters/shared/model"
)

const (
	TableName  = "properties"
	EntityName = "property"

	FieldID              = "id"
	FieldHunterID        = "hunter_id"
	FieldTitle           = "title"
	FieldLocation        = "location"
	FieldPrice           = "price"
	FieldIsLocked        = "is_locked"
	FieldLockedByBooking = "locked_by_booking_id"
)

// Property is the listed rental unit. The lock columns gate it against being
// held by more than one active booking at a time; claim and release are
// conditional updates keyed by the holding booking.
type Property struct {
	ID              string  `db:"id"`
	HunterID        string  `db:"hunter_id"`
	Title           string  `db:"title"`
	Location        string  `db:"location"`
	Price           float64 `db:"price"`
	IsLocked        bool    `db:"is_locked"`
	LockedByBooking *string `db:"locked_by_booking_id"`
	model.Metadata
}
