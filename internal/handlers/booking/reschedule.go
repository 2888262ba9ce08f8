package booking

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	rescheduleDto "haunters/internal/domains/reschedule/model/dto"
	"haunters/shared/constant"
	"haunters/shared/validator"
	"haunters/transport/http/response"
)

// RequestReschedule creates a reschedule request for a confirmed booking.
// @Summary Request a reschedule
// @Description Propose a new viewing date and time for a confirmed booking. Either party can request.
// @Tags Reschedule
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body rescheduleDto.CreateRescheduleRequest true "Proposed schedule"
// @Success 201 {object} response.Data[rescheduleDto.RescheduleResponse] "Created reschedule request"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/bookings/{id}/reschedule [post]
// @Security BearerAuth
func (handler *Handler) RequestReschedule(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RequestReschedule")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	var req rescheduleDto.CreateRescheduleRequest

	err := validator.Validate(r.Body, &req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate reschedule request")

		response.WithError(w, err)

		return
	}

	reschedule, err := handler.reschedule.Request(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to request reschedule")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, reschedule)
}

// RespondReschedule answers a pending reschedule request.
// @Summary Respond to a reschedule request
// @Description Accept, reject, or counter a pending reschedule request. Only the non-requesting party can respond.
// @Tags Reschedule
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param rescheduleId path string true "Reschedule request ID"
// @Param request body rescheduleDto.RespondRescheduleRequest true "Response details"
// @Success 200 {object} response.Data[rescheduleDto.RescheduleResponse] "Updated reschedule request"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 422 {object} response.Error
// @Router /v1/bookings/{id}/reschedule/{rescheduleId}/respond [post]
// @Security BearerAuth
func (handler *Handler) RespondReschedule(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RespondReschedule")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	rescheduleID := chi.URLParam(r, constant.RequestParamRescheduleID)

	var req rescheduleDto.RespondRescheduleRequest

	err := validator.Validate(r.Body, &req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate reschedule response")

		response.WithError(w, err)

		return
	}

	reschedule, err := handler.reschedule.Respond(ctx, id, rescheduleID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to respond to reschedule request")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, reschedule)
}

// AcceptRescheduleCounter accepts the counter-proposal on a reschedule request.
// @Summary Accept a reschedule counter-proposal
// @Description Accept the counter-proposed schedule. Only the original requester can accept it.
// @Tags Reschedule
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param rescheduleId path string true "Reschedule request ID"
// @Success 200 {object} response.Data[rescheduleDto.RescheduleResponse] "Accepted reschedule request"
// @Failure 403 {object} response.Error
// @Failure 422 {object} response.Error
// @Router /v1/bookings/{id}/reschedule/{rescheduleId}/accept-counter [post]
// @Security BearerAuth
func (handler *Handler) AcceptRescheduleCounter(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AcceptRescheduleCounter")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	rescheduleID := chi.URLParam(r, constant.RequestParamRescheduleID)

	reschedule, err := handler.reschedule.AcceptCounter(ctx, id, rescheduleID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to accept reschedule counter-proposal")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, reschedule)
}
