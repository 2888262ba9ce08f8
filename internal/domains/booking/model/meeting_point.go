package model

import (
	"time"

	"haunters/shared/model"
)

const (
	MeetingPointTableName  = "meeting_points"
	MeetingPointEntityName = "meeting point"

	FieldMeetingPointBookingID = "booking_id"
	FieldMeetingPointType      = "type"
	FieldMeetingPointLocation  = "location"
	FieldMeetingPointStatus    = "status"
	FieldMeetingPointSharedBy  = "shared_by"
	FieldTenantViewed          = "tenant_viewed"
	FieldTenantViewedAt        = "tenant_viewed_at"
)

const (
	MeetingPointTypeProperty = "PROPERTY"
	MeetingPointTypeLandmark = "LANDMARK"
)

const (
	MeetingPointPending  = "PENDING"
	MeetingPointAccepted = "ACCEPTED"
	MeetingPointRejected = "REJECTED"
)

// MeetingPoint is the hunter's proposal of where the viewing starts. One per
// booking; sharing again overwrites the previous proposal.
type MeetingPoint struct {
	ID             string     `db:"id"`
	BookingID      string     `db:"booking_id"`
	Type           string     `db:"type"`
	Location       string     `db:"location"`
	Status         string     `db:"status"`
	SharedBy       string     `db:"shared_by"`
	TenantViewed   bool       `db:"tenant_viewed"`
	TenantViewedAt *time.Time `db:"tenant_viewed_at"`
	model.Metadata
}
