package model

import (
	"haunters/shared/model"
)

const (
	TableName  = "alternative_offers"
	EntityName = "alternative offer"

	FieldID               = "id"
	FieldBookingID        = "booking_id"
	FieldPropertyID       = "property_id"
	FieldViewingRequestID = "viewing_request_id"
	FieldMessage          = "message"
	FieldStatus           = "status"
)

const (
	StatusPending  = "PENDING"
	StatusAccepted = "ACCEPTED"
	StatusDeclined = "DECLINED"
)

// AlternativeOffer is a hunter's substitute property, offered after a tenant's
// viewing outcome asked for one. Accepting it carries the original escrow over
// to a new booking on the offered property.
type AlternativeOffer struct {
	ID               string `db:"id"`
	BookingID        string `db:"booking_id"`
	PropertyID       string `db:"property_id"`
	ViewingRequestID string `db:"viewing_request_id"`
	Message          string `db:"message"`
	Status           string `db:"status"`
	model.Metadata
}
