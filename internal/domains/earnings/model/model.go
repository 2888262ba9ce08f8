package model

import (
	"haunters/shared/model"
)

const (
	TableName  = "hunter_earnings"
	EntityName = "hunter earnings"

	FieldID        = "id"
	FieldHunterID  = "hunter_id"
	FieldBookingID = "booking_id"
	FieldAmount    = "amount"
	FieldStatus    = "status"
)

const (
	StatusPending   = "PENDING"
	StatusWithdrawn = "WITHDRAWN"
)

// HunterEarnings is one ledger line per released booking. The booking_id
// column carries a unique index; a second insert for the same booking fails at
// the store layer regardless of which release path raced it there.
type HunterEarnings struct {
	ID        string  `db:"id"`
	HunterID  string  `db:"hunter_id"`
	BookingID string  `db:"booking_id"`
	Amount    float64 `db:"amount"`
	Status    string  `db:"status"`
	model.Metadata
}
