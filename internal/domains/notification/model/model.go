package model

import (
	"haunters/shared/model"
)

const (
	TableName  = "notifications"
	EntityName = "notification"

	FieldID        = "id"
	FieldUserID    = "user_id"
	FieldTitle     = "title"
	FieldMessage   = "message"
	FieldType      = "type"
	FieldReference = "reference"
	FieldRead      = "read"
)

// Notification event tags.
const (
	TypeMeetingPointShared   = "MEETING_POINT_SHARED"
	TypeMeetingPointResponse = "MEETING_POINT_RESPONSE"
	TypeMeetingConfirmed     = "MEETING_CONFIRMED"
	TypePaymentReleased      = "PAYMENT_RELEASED"
	TypePaymentRefunded      = "PAYMENT_REFUNDED"
	TypeIssueReported        = "ISSUE_REPORTED"
	TypeRescheduleRequested  = "RESCHEDULE_REQUESTED"
	TypeRescheduleResponse   = "RESCHEDULE_RESPONSE"
	TypeAlternativeRequested = "ALTERNATIVE_REQUESTED"
	TypeAlternativeOffered   = "ALTERNATIVE_OFFERED"
	TypeAlternativeResponse  = "ALTERNATIVE_RESPONSE"
	TypeBookingCancelled     = "BOOKING_CANCELLED"
	TypeBookingCreated       = "BOOKING_CREATED"
	TypeBookingReminder      = "BOOKING_REMINDER"
	TypeNoShowReported       = "NO_SHOW_REPORTED"
	TypeDisputeOpened        = "DISPUTE_OPENED"
	TypeDisputeResolved      = "DISPUTE_RESOLVED"
	TypeViewingRequest       = "VIEWING_REQUEST"
	TypeViewingResponse      = "VIEWING_RESPONSE"
)

type Notification struct {
	ID        string `db:"id"`
	UserID    string `db:"user_id"`
	Title     string `db:"title"`
	Message   string `db:"message"`
	Type      string `db:"type"`
	Reference string `db:"reference"`
	Read      bool   `db:"read"`
	model.Metadata
}
