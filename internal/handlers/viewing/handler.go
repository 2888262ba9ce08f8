package viewing

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"haunters/infras/otel"
	"haunters/internal/domains/viewing/model"
	"haunters/internal/domains/viewing/model/dto"
	"haunters/internal/domains/viewing/service"
	"haunters/shared/constant"
	gDto "haunters/shared/dto"
	"haunters/shared/validator"
	"haunters/transport/http/response"
)

type Handler struct {
	service service.Viewing
	otel    otel.Otel
}

func New(service service.Viewing, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/viewing-requests", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateViewingRequest)
		routerGroup.Get("/", handler.GetViewingRequests)
		routerGroup.Get("/{id}", handler.GetViewingRequestByID)
		routerGroup.Post("/{id}/respond", handler.RespondViewingRequest)
		routerGroup.Post("/{id}/pay", handler.PayViewingRequest)
	})
}

// CreateViewingRequest creates a viewing request for a property.
// @Summary Create a viewing request
// @Description Request a viewing of a property with up to five proposed schedules. Only tenants can create requests.
// @Tags Viewing
// @Accept json
// @Produce json
// @Param request body dto.CreateViewingRequest true "Viewing request details"
// @Success 201 {object} response.Data[dto.ViewingRequestResponse] "Created viewing request"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/viewing-requests [post]
// @Security BearerAuth
func (handler *Handler) CreateViewingRequest(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateViewingRequest")
	defer scope.End()

	var req dto.CreateViewingRequest

	err := validator.Validate(r.Body, &req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate viewing request")

		response.WithError(w, err)

		return
	}

	viewingRequest, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create viewing request")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, viewingRequest)
}

// GetViewingRequests retrieves viewing requests visible to the caller.
// @Summary Get viewing requests
// @Description Retrieve viewing requests. Non-admin callers only see requests they are part of.
// @Tags Viewing
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status (PENDING, ACCEPTED, COUNTERED, REJECTED, ESCROW)"
// @Param property_id query string false "Filter by property ID"
// @Success 200 {object} response.Data[dto.GetViewingRequestsResponse] "List of viewing requests"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/viewing-requests [get]
// @Security BearerAuth
func (handler *Handler) GetViewingRequests(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetViewingRequests")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	status := r.URL.Query().Get(model.FieldStatus)
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

	if propertyID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldPropertyID,
			Operator: gDto.FilterOperatorEq,
			Value:    propertyID,
			Table:    model.TableName,
		})
	}

	viewingRequests, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get viewing requests")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, viewingRequests)
}

// GetViewingRequestByID retrieves a viewing request by its ID.
// @Summary Get a viewing request by ID
// @Description Retrieve a viewing request by its unique identifier. Only the parties involved or an admin can view it.
// @Tags Viewing
// @Accept json
// @Produce json
// @Param id path string true "Viewing request ID"
// @Success 200 {object} response.Data[dto.ViewingRequestResponse] "Viewing request details"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/viewing-requests/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetViewingRequestByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetViewingRequestByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	viewingRequest, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get viewing request by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, viewingRequest)
}

// RespondViewingRequest answers a pending viewing request.
// @Summary Respond to a viewing request
// @Description Accept, reject, or counter a pending viewing request. Only the hunter can respond.
// @Tags Viewing
// @Accept json
// @Produce json
// @Param id path string true "Viewing request ID"
// @Param request body dto.RespondViewingRequest true "Response details"
// @Success 200 {object} response.Data[dto.ViewingRequestResponse] "Updated viewing request"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 422 {object} response.Error
// @Router /v1/viewing-requests/{id}/respond [post]
// @Security BearerAuth
func (handler *Handler) RespondViewingRequest(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RespondViewingRequest")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	var req dto.RespondViewingRequest

	err := validator.Validate(r.Body, &req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate viewing response")

		response.WithError(w, err)

		return
	}

	viewingRequest, err := handler.service.Respond(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to respond to viewing request")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, viewingRequest)
}

// PayViewingRequest pays for an accepted viewing request.
// @Summary Pay for a viewing request
// @Description Pay the invoice of an accepted viewing request. The payment is held in escrow and a confirmed booking is created.
// @Tags Viewing
// @Accept json
// @Produce json
// @Param id path string true "Viewing request ID"
// @Success 201 {object} response.Data[bookingDto.BookingResponse] "Created booking"
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 422 {object} response.Error
// @Router /v1/viewing-requests/{id}/pay [post]
// @Security BearerAuth
func (handler *Handler) PayViewingRequest(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PayViewingRequest")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	booking, err := handler.service.Pay(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to pay viewing request")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, booking)
}
