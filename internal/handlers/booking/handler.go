package booking

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"haunters/infras/otel"
	alternativeSvc "haunters/internal/domains/alternative/service"
	"haunters/internal/domains/booking/model"
	"haunters/internal/domains/booking/service"
	rescheduleSvc "haunters/internal/domains/reschedule/service"
	"haunters/shared/constant"
	gDto "haunters/shared/dto"
	"haunters/transport/http/response"
)

type Handler struct {
	service     service.Booking
	reschedule  rescheduleSvc.Reschedule
	alternative alternativeSvc.Alternative
	otel        otel.Otel
}

func New(service service.Booking, reschedule rescheduleSvc.Reschedule, alternative alternativeSvc.Alternative, otel otel.Otel) Handler {
	return Handler{
		service:     service,
		reschedule:  reschedule,
		alternative: alternative,
		otel:        otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Get("/mybookings", handler.GetMyBookings)
		routerGroup.Get("/{id}", handler.GetBookingByID)

		routerGroup.Post("/{id}/meeting-point", handler.ShareMeetingPoint)
		routerGroup.Post("/{id}/meeting-point/respond", handler.RespondMeetingPoint)
		routerGroup.Post("/{id}/confirm-meeting", handler.ConfirmMeeting)
		routerGroup.Post("/{id}/confirm-arrival", handler.ConfirmMeeting)
		routerGroup.Post("/{id}/outcome", handler.SubmitOutcome)
		routerGroup.Post("/{id}/complete", handler.ConfirmCompleted)
		routerGroup.Post("/{id}/cancel", handler.CancelBooking)
		routerGroup.Post("/{id}/report-no-show", handler.ReportNoShow)

		routerGroup.Post("/{id}/reschedule", handler.RequestReschedule)
		routerGroup.Post("/{id}/reschedule/{rescheduleId}/respond", handler.RespondReschedule)
		routerGroup.Post("/{id}/reschedule/{rescheduleId}/accept-counter", handler.AcceptRescheduleCounter)

		routerGroup.Post("/{id}/request-alternative", handler.RequestAlternative)
		routerGroup.Post("/{id}/offer-alternative", handler.OfferAlternative)
		routerGroup.Post("/{id}/accept-alternative", handler.AcceptAlternative)
		routerGroup.Post("/{id}/decline-alternative", handler.DeclineAlternative)
	})
}

// GetBookings retrieves all bookings based on query parameters.
// @Summary Get all bookings
// @Description Retrieve all bookings with optional filtering and pagination.
// @Tags Booking
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status (CONFIRMED, COMPLETED, CANCELLED)"
// @Param payment_status query string false "Filter by payment status (ESCROW, RELEASED, REFUNDED)"
// @Param property_id query string false "Filter by property ID"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "List of bookings"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	status := r.URL.Query().Get(model.FieldStatus)
	paymentStatus := r.URL.Query().Get(model.FieldPaymentStatus)
	propertyID := r.URL.Query().Get(model.FieldPropertyID)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if status != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	if paymentStatus != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldPaymentStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    paymentStatus,
			Table:    model.TableName,
		})
	}

	if propertyID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldPropertyID,
			Operator: gDto.FilterOperatorEq,
			Value:    propertyID,
			Table:    model.TableName,
		})
	}

	bookings, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, bookings)
}

// GetMyBookings retrieves all bookings the authenticated user is part of.
// @Summary Get my bookings
// @Description Retrieve all bookings where the authenticated user is the tenant or the hunter.
// @Tags Booking
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "List of user's bookings"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/mybookings [get]
// @Security BearerAuth
func (handler *Handler) GetMyBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	bookings, err := handler.service.GetMine(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get user bookings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, bookings)
}

// GetBookingByID retrieves a booking by its ID.
// @Summary Get a booking by ID
// @Description Retrieve a booking by its unique identifier.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse] "Booking details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	booking, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, booking)
}
