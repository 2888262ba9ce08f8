package dto

import (
	"time"

	"github.com/google/uuid"

	"haunters/internal/domains/reschedule/model"
	"haunters/shared/constant"
	gDto "haunters/shared/dto"
	gModel "haunters/shared/model"
	"haunters/shared/timezone"
)

type CreateRescheduleRequest struct {
	Date   string `json:"date"   validate:"required"`
	Time   string `json:"time"   validate:"required"`
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

func (c *CreateRescheduleRequest) ToModel(bookingID, user string) (model.RescheduleRequest, error) {
	date, err := time.Parse(constant.DateOnlyFormat, c.Date)
	if err != nil {
		return model.RescheduleRequest{}, err
	}

	start, err := time.Parse(constant.TimeOnlyFormat, c.Time)
	if err != nil {
		return model.RescheduleRequest{}, err
	}

	return model.RescheduleRequest{
		ID:           uuid.NewString(),
		BookingID:    bookingID,
		RequestedBy:  user,
		ProposedDate: date,
		ProposedTime: start,
		Reason:       c.Reason,
		Status:       model.StatusPending,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type RespondRescheduleRequest struct {
	Action        string `json:"action"         validate:"required,oneof=accept reject counter"`
	CounterDate   string `json:"counter_date"   validate:"required_if=Action counter"`
	CounterTime   string `json:"counter_time"   validate:"required_if=Action counter"`
	CounterReason string `json:"counter_reason" validate:"omitempty,max=500"`
}

type RescheduleResponse struct {
	ID              string     `json:"id"`
	BookingID       string     `json:"booking_id"`
	RequestedBy     string     `json:"requested_by"`
	ProposedDate    string     `json:"proposed_date"`
	ProposedTime    string     `json:"proposed_time"`
	ProposedEndTime string     `json:"proposed_end_time"`
	Reason          string     `json:"reason"`
	Status          string     `json:"status"`
	CounterDate     *string    `json:"counter_date,omitempty"`
	CounterTime     *string    `json:"counter_time,omitempty"`
	CounterEndTime  *string    `json:"counter_end_time,omitempty"`
	CounterReason   *string    `json:"counter_reason,omitempty"`
	RespondedBy     *string    `json:"responded_by,omitempty"`
	RespondedAt     *time.Time `json:"responded_at,omitempty"`
	gDto.Metadata
}

func (r *RescheduleResponse) FromModel(model model.RescheduleRequest) {
	r.ID = model.ID
	r.BookingID = model.BookingID
	r.RequestedBy = model.RequestedBy
	r.ProposedDate = model.ProposedDate.Format(constant.DateOnlyFormat)
	r.ProposedTime = model.ProposedTime.Format(constant.TimeOnlyFormat)
	r.ProposedEndTime = model.ProposedEndTime.Format(constant.TimeOnlyFormat)
	r.Reason = model.Reason
	r.Status = model.Status

	if model.CounterDate != nil {
		counterDate := model.CounterDate.Format(constant.DateOnlyFormat)
		r.CounterDate = &counterDate
	}

	if model.CounterTime != nil {
		counterTime := model.CounterTime.Format(constant.TimeOnlyFormat)
		r.CounterTime = &counterTime
	}

	if model.CounterEndTime != nil {
		counterEndTime := model.CounterEndTime.Format(constant.TimeOnlyFormat)
		r.CounterEndTime = &counterEndTime
	}

	r.CounterReason = model.CounterReason
	r.RespondedBy = model.RespondedBy
	r.RespondedAt = model.RespondedAt
	r.Metadata.FromModel(model.Metadata)
}
