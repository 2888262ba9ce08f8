package booking

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	alternativeDto "haunters/internal/domains/alternative/model/dto"
	"haunters/shared/constant"
	"haunters/shared/validator"
	"haunters/transport/http/response"
)

// RequestAlternative asks the hunter to offer an alternative property.
// @Summary Request an alternative property
// @Description Ask the hunter for an alternative property after a disappointing viewing. Only the tenant can request, and only after submitting an ALTERNATIVE_REQUESTED outcome.
// @Tags Alternative
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Message "Alternative requested"
// @Failure 403 {object} response.Error
// @Failure 422 {object} response.Error
// @Router /v1/bookings/{id}/request-alternative [post]
// @Security BearerAuth
func (handler *Handler) RequestAlternative(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RequestAlternative")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	err := handler.alternative.Request(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to request alternative property")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "alternative property requested")
}

// OfferAlternative offers an alternative property to the tenant.
// @Summary Offer an alternative property
// @Description Offer a different property with a proposed viewing schedule. Only the hunter can offer.
// @Tags Alternative
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body alternativeDto.OfferAlternativeRequest true "Alternative offer details"
// @Success 201 {object} response.Data[alternativeDto.AlternativeOfferResponse] "Created offer"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/bookings/{id}/offer-alternative [post]
// @Security BearerAuth
func (handler *Handler) OfferAlternative(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".OfferAlternative")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	var req alternativeDto.OfferAlternativeRequest

	err := validator.Validate(r.Body, &req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate alternative offer")

		response.WithError(w, err)

		return
	}

	offer, err := handler.alternative.Offer(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to offer alternative property")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, offer)
}

// AcceptAlternative accepts a pending alternative offer.
// @Summary Accept an alternative offer
// @Description Accept the offered alternative property. Transfers the escrow to a new booking on the offered property.
// @Tags Alternative
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse] "New booking on the alternative property"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 422 {object} response.Error
// @Router /v1/bookings/{id}/accept-alternative [post]
// @Security BearerAuth
func (handler *Handler) AcceptAlternative(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AcceptAlternative")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	booking, err := handler.alternative.Accept(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to accept alternative offer")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, booking)
}

// DeclineAlternative declines a pending alternative offer.
// @Summary Decline an alternative offer
// @Description Decline the offered alternative property. Cancels the booking and opens a misrepresentation dispute.
// @Tags Alternative
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body alternativeDto.DeclineAlternativeRequest true "Decline reason"
// @Success 200 {object} response.Message "Offer declined"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/bookings/{id}/decline-alternative [post]
// @Security BearerAuth
func (handler *Handler) DeclineAlternative(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeclineAlternative")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	var req alternativeDto.DeclineAlternativeRequest

	err := validator.Validate(r.Body, &req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate decline alternative request")

		response.WithError(w, err)

		return
	}

	err = handler.alternative.Decline(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to decline alternative offer")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "alternative offer declined")
}
