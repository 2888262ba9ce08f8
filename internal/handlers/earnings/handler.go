package earnings

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"haunters/infras/otel"
	"haunters/internal/domains/earnings/service"
	"haunters/shared/constant"
	gDto "haunters/shared/dto"
	"haunters/transport/http/response"
)

type Handler struct {
	service service.Earnings
	otel    otel.Otel
}

func New(service service.Earnings, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/earnings", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetEarnings)
		routerGroup.Post("/withdraw", handler.Withdraw)
	})
}

// GetEarnings retrieves the authenticated hunter's earnings.
// @Summary Get my earnings
// @Description Retrieve the authenticated hunter's earnings with pending, withdrawn, and lifetime totals.
// @Tags Earnings
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetEarningsResponse] "Earnings with totals"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/earnings [get]
// @Security BearerAuth
func (handler *Handler) GetEarnings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetEarnings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	earnings, err := handler.service.GetAll(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get earnings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, earnings)
}

// Withdraw marks all pending earnings of the authenticated hunter as withdrawn.
// @Summary Withdraw pending earnings
// @Description Mark all of the authenticated hunter's pending earnings as withdrawn and return the total amount.
// @Tags Earnings
// @Accept json
// @Produce json
// @Success 200 {object} response.Data[dto.WithdrawResponse] "Withdrawal summary"
// @Failure 401 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/earnings/withdraw [post]
// @Security BearerAuth
func (handler *Handler) Withdraw(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Withdraw")
	defer scope.End()

	withdrawal, err := handler.service.Withdraw(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to withdraw earnings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, withdrawal)
}
