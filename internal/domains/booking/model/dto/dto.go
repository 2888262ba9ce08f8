package dto

import (
	"time"

	"github.com/google/uuid"

	"haunters/internal/domains/booking/model"
	"haunters/shared"
	"haunters/shared/constant"
	gDto "haunters/shared/dto"
	gModel "haunters/shared/model"
	"haunters/shared/timezone"
)

type ShareMeetingPointRequest struct {
	Type     string `json:"type"     validate:"required,oneof=PROPERTY LANDMARK"`
	Location string `json:"location" validate:"required,max=500"`
}

func (c *ShareMeetingPointRequest) ToModel(bookingID, user string) model.MeetingPoint {
	return model.MeetingPoint{
		ID:        uuid.NewString(),
		BookingID: bookingID,
		Type:      c.Type,
		Location:  c.Location,
		Status:    model.MeetingPointPending,
		SharedBy:  user,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type RespondMeetingPointRequest struct {
	Accept bool   `json:"accept"`
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

type MeetingPointResponse struct {
	ID             string     `json:"id"`
	BookingID      string     `json:"booking_id"`
	Type           string     `json:"type"`
	Location       string     `json:"location"`
	Status         string     `json:"status"`
	SharedBy       string     `json:"shared_by"`
	TenantViewed   bool       `json:"tenant_viewed"`
	TenantViewedAt *time.Time `json:"tenant_viewed_at,omitempty"`
	gDto.Metadata
}

func (r *MeetingPointResponse) FromModel(model model.MeetingPoint) {
	r.ID = model.ID
	r.BookingID = model.BookingID
	r.Type = model.Type
	r.Location = model.Location
	r.Status = model.Status
	r.SharedBy = model.SharedBy
	r.TenantViewed = model.TenantViewed
	r.TenantViewedAt = model.TenantViewedAt
	r.Metadata.FromModel(model.Metadata)
}

type SubmitOutcomeRequest struct {
	Outcome  string `json:"outcome"  validate:"required,oneof=COMPLETED_SATISFIED ISSUE_REPORTED ALTERNATIVE_REQUESTED"`
	Feedback string `json:"feedback" validate:"omitempty,max=2000"`
	Evidence string `json:"evidence" validate:"omitempty,max=2000"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

type ReportNoShowRequest struct {
	Description string `json:"description" validate:"omitempty,max=2000"`
}

type ConfirmMeetingResponse struct {
	HunterMetConfirmed       bool       `json:"hunter_met_confirmed"`
	TenantMetConfirmed       bool       `json:"tenant_met_confirmed"`
	PhysicalMeetingConfirmed bool       `json:"physical_meeting_confirmed"`
	ActualStartTime          *time.Time `json:"actual_start_time,omitempty"`
}

func (r *ConfirmMeetingResponse) FromModel(model model.Booking) {
	r.HunterMetConfirmed = model.HunterMetConfirmed
	r.TenantMetConfirmed = model.TenantMetConfirmed
	r.PhysicalMeetingConfirmed = model.PhysicalConfirmed
	r.ActualStartTime = model.ActualStartTime
}

type BookingResponse struct {
	ID                       string     `json:"id"`
	ViewingRequestID         string     `json:"viewing_request_id"`
	PropertyID               string     `json:"property_id"`
	TenantID                 string     `json:"tenant_id"`
	HunterID                 string     `json:"hunter_id"`
	Amount                   float64    `json:"amount"`
	PaymentStatus            string     `json:"payment_status"`
	Status                   string     `json:"status"`
	ScheduledDate            string     `json:"scheduled_date"`
	ScheduledTime            string     `json:"scheduled_time"`
	ScheduledEndTime         string     `json:"scheduled_end_time"`
	AutoReleaseAt            time.Time  `json:"auto_release_at"`
	HunterMetConfirmed       bool       `json:"hunter_met_confirmed"`
	TenantMetConfirmed       bool       `json:"tenant_met_confirmed"`
	PhysicalMeetingConfirmed bool       `json:"physical_meeting_confirmed"`
	ActualStartTime          *time.Time `json:"actual_start_time,omitempty"`
	ActualEndTime            *time.Time `json:"actual_end_time,omitempty"`
	ViewingOutcome           *string    `json:"viewing_outcome,omitempty"`
	OutcomeSubmittedAt       *time.Time `json:"outcome_submitted_at,omitempty"`
	TenantFeedback           *string    `json:"tenant_feedback,omitempty"`
	IssueEvidence            *string    `json:"issue_evidence,omitempty"`
	TenantConfirmed          bool       `json:"tenant_confirmed"`
	CompletedAt              *time.Time `json:"completed_at,omitempty"`
	CancelledReason          *string    `json:"cancelled_reason,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.ViewingRequestID = model.ViewingRequestID
	r.PropertyID = model.PropertyID
	r.TenantID = model.TenantID
	r.HunterID = model.HunterID
	r.Amount = model.Amount
	r.PaymentStatus = model.PaymentStatus
	r.Status = model.Status
	r.ScheduledDate = model.ScheduledDate.Format(constant.DateOnlyFormat)
	r.ScheduledTime = model.ScheduledTime.Format(constant.TimeOnlyFormat)
	r.ScheduledEndTime = model.ScheduledEndTime.Format(constant.TimeOnlyFormat)
	r.AutoReleaseAt = model.AutoReleaseAt
	r.HunterMetConfirmed = model.HunterMetConfirmed
	r.TenantMetConfirmed = model.TenantMetConfirmed
	r.PhysicalMeetingConfirmed = model.PhysicalConfirmed
	r.ActualStartTime = model.ActualStartTime
	r.ActualEndTime = model.ActualEndTime
	r.ViewingOutcome = model.ViewingOutcome
	r.OutcomeSubmittedAt = model.OutcomeSubmittedAt
	r.TenantFeedback = model.TenantFeedback
	r.IssueEvidence = model.IssueEvidence
	r.TenantConfirmed = model.TenantConfirmed
	r.CompletedAt = model.CompletedAt
	r.CancelledReason = model.CancelledReason
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
