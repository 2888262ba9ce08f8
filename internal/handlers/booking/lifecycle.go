package booking

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"haunters/internal/domains/booking/model/dto"
	"haunters/shared/constant"
	"haunters/shared/validator"
	"haunters/transport/http/response"
)

// ShareMeetingPoint shares the meeting point for a confirmed booking.
// @Summary Share a meeting point
// @Description Share or update the meeting point of a confirmed booking. Only the hunter can share it.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.ShareMeetingPointRequest true "Meeting point details"
// @Success 200 {object} response.Data[dto.MeetingPointResponse] "Shared meeting point"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 422 {object} response.Error
// @Router /v1/bookings/{id}/meeting-point [post]
// @Security BearerAuth
func (handler *Handler) ShareMeetingPoint(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ShareMeetingPoint")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	var req dto.ShareMeetingPointRequest

	err := validator.Validate(r.Body, &req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate share meeting point request")

		response.WithError(w, err)

		return
	}

	meetingPoint, err := handler.service.ShareMeetingPoint(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to share meeting point")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, meetingPoint)
}

// RespondMeetingPoint records the tenant's response to a shared meeting point.
// @Summary Respond to a meeting point
// @Description Accept or reject the meeting point shared by the hunter. Only the tenant can respond.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.RespondMeetingPointRequest true "Response details"
// @Success 200 {object} response.Message "Response recorded"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/bookings/{id}/meeting-point/respond [post]
// @Security BearerAuth
func (handler *Handler) RespondMeetingPoint(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RespondMeetingPoint")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	var req dto.RespondMeetingPointRequest

	err := validator.Validate(r.Body, &req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate respond meeting point request")

		response.WithError(w, err)

		return
	}

	err = handler.service.RespondMeetingPoint(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to respond to meeting point")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "meeting point response recorded")
}

// ConfirmMeeting confirms the caller's arrival at the viewing meeting.
// @Summary Confirm meeting arrival
// @Description Record that the caller has arrived at the meeting. When both parties have confirmed, the physical meeting is marked as started.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.ConfirmMeetingResponse] "Current confirmation state"
// @Failure 403 {object} response.Error
// @Failure 422 {object} response.Error
// @Router /v1/bookings/{id}/confirm-meeting [post]
// @Security BearerAuth
func (handler *Handler) ConfirmMeeting(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ConfirmMeeting")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	confirmation, err := handler.service.ConfirmMeeting(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to confirm meeting")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, confirmation)
}

// SubmitOutcome submits the viewing outcome for a booking.
// @Summary Submit a viewing outcome
// @Description Submit the outcome of a physical viewing. Only the tenant can submit it, and only after the meeting has been confirmed by both parties.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.SubmitOutcomeRequest true "Outcome details"
// @Success 200 {object} response.Message "Outcome recorded"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 422 {object} response.Error
// @Router /v1/bookings/{id}/outcome [post]
// @Security BearerAuth
func (handler *Handler) SubmitOutcome(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SubmitOutcome")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	var req dto.SubmitOutcomeRequest

	err := validator.Validate(r.Body, &req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate submit outcome request")

		response.WithError(w, err)

		return
	}

	err = handler.service.SubmitOutcome(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to submit viewing outcome")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "viewing outcome recorded")
}

// ConfirmCompleted confirms a satisfactory viewing and releases the escrow.
// @Summary Confirm viewing completion
// @Description Confirm a satisfactory viewing and release the escrowed payment to the hunter. Only the tenant can confirm.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Message "Booking completed"
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 422 {object} response.Error
// @Router /v1/bookings/{id}/complete [post]
// @Security BearerAuth
func (handler *Handler) ConfirmCompleted(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ConfirmCompleted")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	err := handler.service.ConfirmCompleted(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to confirm booking completion")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "booking completed and payment released")
}

// CancelBooking cancels a confirmed booking.
// @Summary Cancel a booking
// @Description Cancel a confirmed booking and refund the escrowed payment. Either party or an admin can cancel.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.CancelBookingRequest true "Cancellation reason"
// @Success 200 {object} response.Message "Booking cancelled"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 422 {object} response.Error
// @Router /v1/bookings/{id}/cancel [post]
// @Security BearerAuth
func (handler *Handler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	var req dto.CancelBookingRequest

	err := validator.Validate(r.Body, &req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate cancel booking request")

		response.WithError(w, err)

		return
	}

	err = handler.service.Cancel(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel booking")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "booking cancelled")
}

// ReportNoShow reports that the other party did not show up for the viewing.
// @Summary Report a no-show
// @Description Report that the counterparty did not show up. Cancels the booking and opens a dispute.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.ReportNoShowRequest true "No-show details"
// @Success 200 {object} response.Message "No-show reported"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 422 {object} response.Error
// @Router /v1/bookings/{id}/report-no-show [post]
// @Security BearerAuth
func (handler *Handler) ReportNoShow(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ReportNoShow")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	var req dto.ReportNoShowRequest

	err := validator.Validate(r.Body, &req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate report no-show request")

		response.WithError(w, err)

		return
	}

	err = handler.service.ReportNoShow(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to report no-show")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "no-show reported and dispute opened")
}
