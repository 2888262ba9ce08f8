package dispute

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"haunters/infras/otel"
	"haunters/internal/domains/dispute/model"
	"haunters/internal/domains/dispute/model/dto"
	"haunters/internal/domains/dispute/service"
	"haunters/shared/constant"
	gDto "haunters/shared/dto"
	"haunters/shared/validator"
	"haunters/transport/http/response"
)

type Handler struct {
	service service.Dispute
	otel    otel.Otel
}

func New(service service.Dispute, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/disputes", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateDispute)
		routerGroup.Post("/evidence", handler.UploadEvidence)
		routerGroup.Get("/", handler.GetDisputes)
		routerGroup.Get("/{id}", handler.GetDisputeByID)
		routerGroup.Post("/{id}/respond", handler.RespondDispute)
	})

	router.Route("/admin/disputes", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetDisputes)
		routerGroup.Post("/{disputeId}/resolve", handler.ResolveDispute)
	})
}

// CreateDispute opens a dispute on a booking.
// @Summary Open a dispute
// @Description Open a dispute against the counterparty of a booking, optionally with evidence file keys.
// @Tags Dispute
// @Accept json
// @Produce json
// @Param request body dto.CreateDisputeRequest true "Dispute details"
// @Success 201 {object} response.Data[dto.DisputeResponse] "Created dispute"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/disputes [post]
// @Security BearerAuth
func (handler *Handler) CreateDispute(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateDispute")
	defer scope.End()

	var req dto.CreateDisputeRequest

	err := validator.Validate(r.Body, &req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate create dispute request")

		response.WithError(w, err)

		return
	}

	dispute, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create dispute")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, dispute)
}

// UploadEvidence stores an evidence file for later use in a dispute.
// @Summary Upload dispute evidence
// @Description Upload an evidence file as a base64 data URL. The returned key can be passed as evidence_keys when opening a dispute.
// @Tags Dispute
// @Accept json
// @Produce json
// @Param request body dto.UploadEvidenceRequest true "Evidence file"
// @Success 201 {object} response.Data[dto.UploadEvidenceResponse] "Stored evidence reference"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/disputes/evidence [post]
// @Security BearerAuth
func (handler *Handler) UploadEvidence(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadEvidence")
	defer scope.End()

	var req dto.UploadEvidenceRequest

	err := validator.Validate(r.Body, &req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate upload evidence request")

		response.WithError(w, err)

		return
	}

	evidence, err := handler.service.UploadEvidence(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload evidence")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, evidence)
}

// GetDisputes retrieves disputes visible to the caller.
// @Summary Get disputes
// @Description Retrieve disputes. Non-admin callers only see disputes they are part of; admins see all.
// @Tags Dispute
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status (OPEN, IN_PROGRESS, RESOLVED, CLOSED)"
// @Param category query string false "Filter by category"
// @Success 200 {object} response.Data[dto.GetDisputesResponse] "List of disputes"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/disputes [get]
// @Security BearerAuth
func (handler *Handler) GetDisputes(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDisputes")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	status := r.URL.Query().Get(model.FieldStatus)
	category := r.URL.Query().Get(model.FieldCategory)

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

	if category != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldCategory,
			Operator: gDto.FilterOperatorEq,
			Value:    category,
			Table:    model.TableName,
		})
	}

	disputes, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get disputes")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, disputes)
}

// GetDisputeByID retrieves a dispute by its ID.
// @Summary Get a dispute by ID
// @Description Retrieve a dispute by its unique identifier. Only the parties involved or an admin can view it.
// @Tags Dispute
// @Accept json
// @Produce json
// @Param id path string true "Dispute ID"
// @Success 200 {object} response.Data[dto.DisputeResponse] "Dispute details"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/disputes/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetDisputeByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDisputeByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	dispute, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get dispute by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, dispute)
}

// RespondDispute records the accused party's response to a dispute.
// @Summary Respond to a dispute
// @Description Record the accused party's response and move the dispute to IN_PROGRESS.
// @Tags Dispute
// @Accept json
// @Produce json
// @Param id path string true "Dispute ID"
// @Param request body dto.RespondDisputeRequest true "Response details"
// @Success 200 {object} response.Message "Response recorded"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 422 {object} response.Error
// @Router /v1/disputes/{id}/respond [post]
// @Security BearerAuth
func (handler *Handler) RespondDispute(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RespondDispute")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	var req dto.RespondDisputeRequest

	err := validator.Validate(r.Body, &req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate dispute response")

		response.WithError(w, err)

		return
	}

	err = handler.service.Respond(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to respond to dispute")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "dispute response recorded")
}

// ResolveDispute resolves a dispute with an optional escrow action.
// @Summary Resolve a dispute
// @Description Resolve a dispute as an admin, optionally refunding the tenant or releasing the payment to the hunter.
// @Tags Dispute
// @Accept json
// @Produce json
// @Param disputeId path string true "Dispute ID"
// @Param request body dto.ResolveDisputeRequest true "Resolution details"
// @Success 200 {object} response.Data[dto.DisputeResponse] "Resolved dispute"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 422 {object} response.Error
// @Router /v1/admin/disputes/{disputeId}/resolve [post]
// @Security BearerAuth
func (handler *Handler) ResolveDispute(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ResolveDispute")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamDisputeID)

	var req dto.ResolveDisputeRequest

	err := validator.Validate(r.Body, &req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate resolve dispute request")

		response.WithError(w, err)

		return
	}

	dispute, err := handler.service.Resolve(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to resolve dispute")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, dispute)
}
