package dto

import (
	"haunters/internal/domains/alternative/model"
	gDto "haunters/shared/dto"
)

type OfferAlternativeRequest struct {
	PropertyID string `json:"property_id" validate:"required"`
	Message    string `json:"message"     validate:"omitempty,max=2000"`
	Date       string `json:"date"        validate:"required"`
	Time       string `json:"time"        validate:"required"`
}

type DeclineAlternativeRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=2000"`
}

type AlternativeOfferResponse struct {
	ID               string `json:"id"`
	BookingID        string `json:"booking_id"`
	PropertyID       string `json:"property_id"`
	ViewingRequestID string `json:"viewing_request_id"`
	Message          string `json:"message"`
	Status           string `json:"status"`
	gDto.Metadata
}

func (r *AlternativeOfferResponse) FromModel(model model.AlternativeOffer) {
	r.ID = model.ID
	r.BookingID = model.BookingID
	r.PropertyID = model.PropertyID
	r.ViewingRequestID = model.ViewingRequestID
	r.Message = model.Message
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}
