package model

import (
	"time"

	"haunters/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID                 = "id"
	FieldViewingRequestID   = "viewing_request_id"
	FieldPropertyID         = "property_id"
	FieldTenantID           = "tenant_id"
	FieldHunterID           = "hunter_id"
	FieldAmount             = "amount"
	FieldPaymentStatus      = "payment_status"
	FieldStatus             = "status"
	FieldScheduledDate      = "scheduled_date"
	FieldScheduledTime      = "scheduled_time"
	FieldScheduledEndTime   = "scheduled_end_time"
	FieldAutoReleaseAt      = "auto_release_at"
	FieldHunterMetConfirmed = "hunter_met_confirmed"
	FieldTenantMetConfirmed = "tenant_met_confirmed"
	FieldPhysicalConfirmed  = "physical_meeting_confirmed"
	FieldActualStartTime    = "actual_start_time"
	FieldActualEndTime      = "actual_end_time"
	FieldViewingOutcome     = "viewing_outcome"
	FieldOutcomeSubmittedAt = "outcome_submitted_at"
	FieldTenantFeedback     = "tenant_feedback"
	FieldIssueEvidence      = "issue_evidence"
	FieldTenantConfirmed    = "tenant_confirmed"
	FieldCompletedAt        = "completed_at"
	FieldCancelledReason    = "cancelled_reason"
)

// Booking status values. A booking is created CONFIRMED and is terminal at
// COMPLETED or CANCELLED.
const (
	StatusConfirmed = "CONFIRMED"
	StatusCompleted = "COMPLETED"
	StatusCancelled = "CANCELLED"
)

// Payment status moves ESCROW -> RELEASED or ESCROW -> REFUNDED exactly once.
const (
	PaymentEscrow   = "ESCROW"
	PaymentReleased = "RELEASED"
	PaymentRefunded = "REFUNDED"
)

// Viewing outcome values a tenant may submit after a confirmed meeting.
const (
	OutcomeCompletedSatisfied   = "COMPLETED_SATISFIED"
	OutcomeIssueReported        = "ISSUE_REPORTED"
	OutcomeAlternativeRequested = "ALTERNATIVE_REQUESTED"
)

type Booking struct {
	ID                 string     `db:"id"`
	ViewingRequestID   string     `db:"viewing_request_id"`
	PropertyID         string     `db:"property_id"`
	TenantID           string     `db:"tenant_id"`
	HunterID           string     `db:"hunter_id"`
	Amount             float64    `db:"amount"`
	PaymentStatus      string     `db:"payment_status"`
	Status             string     `db:"status"`
	ScheduledDate      time.Time  `db:"scheduled_date"`
	ScheduledTime      time.Time  `db:"scheduled_time"`
	ScheduledEndTime   time.Time  `db:"scheduled_end_time"`
	AutoReleaseAt      time.Time  `db:"auto_release_at"`
	HunterMetConfirmed bool       `db:"hunter_met_confirmed"`
	TenantMetConfirmed bool       `db:"tenant_met_confirmed"`
	PhysicalConfirmed  bool       `db:"physical_meeting_confirmed"`
	ActualStartTime    *time.Time `db:"actual_start_time"`
	ActualEndTime      *time.Time `db:"actual_end_time"`
	ViewingOutcome     *string    `db:"viewing_outcome"`
	OutcomeSubmittedAt *time.Time `db:"outcome_submitted_at"`
	TenantFeedback     *string    `db:"tenant_feedback"`
	IssueEvidence      *string    `db:"issue_evidence"`
	TenantConfirmed    bool       `db:"tenant_confirmed"`
	CompletedAt        *time.Time `db:"completed_at"`
	CancelledReason    *string    `db:"cancelled_reason"`
	model.Metadata
}

// IsParty reports whether the given user is the booking's tenant or hunter.
func (b *Booking) IsParty(userID string) bool {
	return userID == b.TenantID || userID == b.HunterID
}

// Counterparty returns the other side of the booking for the given user.
func (b *Booking) Counterparty(userID string) string {
	if userID == b.TenantID {
		return b.HunterID
	}

	return b.TenantID
}

// OutcomeIs reports whether the recorded viewing outcome matches the given value.
func (b *Booking) OutcomeIs(outcome string) bool {
	return b.ViewingOutcome != nil && *b.ViewingOutcome == outcome
}
