package model

import (
	"time"

	"haunters/shared/model"
)

const (
	TableName  = "reschedule_requests"
	EntityName = "reschedule request"

	FieldID              = "id"
	FieldBookingID       = "booking_id"
	FieldRequestedBy     = "requested_by"
	FieldProposedDate    = "proposed_date"
	FieldProposedTime    = "proposed_time"
	FieldProposedEndTime = "proposed_end_time"
	FieldReason          = "reason"
	FieldStatus          = "status"
	FieldCounterDate     = "counter_date"
	FieldCounterTime     = "counter_time"
	FieldCounterEndTime  = "counter_end_time"
	FieldCounterReason   = "counter_reason"
	FieldRespondedBy     = "responded_by"
	FieldRespondedAt     = "responded_at"
)

const (
	StatusPending   = "PENDING"
	StatusAccepted  = "ACCEPTED"
	StatusRejected  = "REJECTED"
	StatusCountered = "COUNTERED"
)

// RescheduleRequest proposes a new schedule for a booking. Only the
// non-requesting party may respond; acceptance rewrites the booking's schedule
// and clears every meeting-confirmation flag.
type RescheduleRequest struct {
	ID              string     `db:"id"`
	BookingID       string     `db:"booking_id"`
	RequestedBy     string     `db:"requested_by"`
	ProposedDate    time.Time  `db:"proposed_date"`
	ProposedTime    time.Time  `db:"proposed_time"`
	ProposedEndTime time.Time  `db:"proposed_end_time"`
	Reason          string     `db:"reason"`
	Status          string     `db:"status"`
	CounterDate     *time.Time `db:"counter_date"`
	CounterTime     *time.Time `db:"counter_time"`
	CounterEndTime  *time.Time `db:"counter_end_time"`
	CounterReason   *string    `db:"counter_reason"`
	RespondedBy     *string    `db:"responded_by"`
	RespondedAt     *time.Time `db:"responded_at"`
	model.Metadata
}
