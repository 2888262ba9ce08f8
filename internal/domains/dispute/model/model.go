package model

import (
	"time"

	"haunters/shared/model"
)

const (
	TableName  = "disputes"
	EntityName = "dispute"

	FieldID             = "id"
	FieldTitle          = "title"
	FieldDescription    = "description"
	FieldCategory       = "category"
	FieldReporterID     = "reporter_id"
	FieldAgainstID      = "against_id"
	FieldBookingID      = "booking_id"
	FieldPropertyID     = "property_id"
	FieldStatus         = "status"
	FieldResolution     = "resolution"
	FieldResolvedBy     = "resolved_by"
	FieldResolvedAt     = "resolved_at"
	FieldHunterResponse = "hunter_response"
	FieldEvidenceKeys   = "evidence_keys"
)

const (
	StatusOpen       = "OPEN"
	StatusInProgress = "IN_PROGRESS"
	StatusResolved   = "RESOLVED"
	StatusClosed     = "CLOSED"
)

const (
	CategoryMisrepresentation = "MISREPRESENTATION"
	CategoryNoShowHunter      = "NO_SHOW_HUNTER"
	CategoryNoShowTenant      = "NO_SHOW_TENANT"
	CategoryViewingIssue      = "VIEWING_ISSUE"
	CategoryPaymentIssue      = "PAYMENT_ISSUE"
	CategoryOther             = "OTHER"
)

// Administrator actions when resolving a dispute.
const (
	ActionRefund         = "REFUND"
	ActionReleasePayment = "RELEASE_PAYMENT"
	ActionNone           = "NONE"
)

type Dispute struct {
	ID             string     `db:"id"`
	Title          string     `db:"title"`
	Description    string     `db:"description"`
	Category       string     `db:"category"`
	ReporterID     string     `db:"reporter_id"`
	AgainstID      string     `db:"against_id"`
	BookingID      string     `db:"booking_id"`
	PropertyID     string     `db:"property_id"`
	Status         string     `db:"status"`
	Resolution     *string    `db:"resolution"`
	ResolvedBy     *string    `db:"resolved_by"`
	ResolvedAt     *time.Time `db:"resolved_at"`
	HunterResponse *string    `db:"hunter_response"`
	EvidenceKeys   *string    `db:"evidence_keys"`
	model.Metadata
}
