package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"haunters/config"
	"haunters/infras/otel"
	"haunters/internal/domains/earnings/model"
	"haunters/internal/domains/earnings/model/dto"
	"haunters/internal/domains/earnings/repository"
	"haunters/shared/constant"
	gDto "haunters/shared/dto"
	"haunters/shared/failure"
	"haunters/shared/timezone"
)

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Earnings=MockEarningsService

type Earnings interface {
	GetAll(ctx context.Context, req gDto.QueryParams) (dto.GetEarningsResponse, error)
	Withdraw(ctx context.Context) (dto.WithdrawResponse, error)
}

type serviceImpl struct {
	repo repository.Earnings
	cfg  *config.Config
	otel otel.Otel
}

func New(repo repository.Earnings, cfg *config.Config, otel otel.Otel) Earnings {
	return &serviceImpl{
		repo: repo,
		cfg:  cfg,
		otel: otel,
	}
}

// GetAll lists the calling hunter's earnings ledger with running totals.
func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams) (res dto.GetEarningsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldHunterID, Operator: gDto.FilterOperatorEq, Value: user, Table: model.TableName},
		},
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count earnings")

		return res, fmt.Errorf("failed to count earnings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, gDto.QueryParams{
		Page:    req.Page,
		Limit:   req.Limit,
		SortBy:  constant.FieldCreatedAt,
		SortDir: "DESC",
	}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get earnings")

		return res, fmt.Errorf("failed to get earnings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

// Withdraw marks every pending ledger line of the calling hunter withdrawn and
// reports the amount paid out. An empty ledger is a conflict, not a payout of
// zero.
func (s *serviceImpl) Withdraw(ctx context.Context) (res dto.WithdrawResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Withdraw")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	pendingFilter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldHunterID, Operator: gDto.FilterOperatorEq, Value: user, Table: model.TableName},
			gDto.Filter{Field: model.FieldStatus, Operator: gDto.FilterOperatorEq, Value: model.StatusPending, Table: model.TableName, ArgName: "pending_status"},
		},
	}

	pending, err := s.repo.GetAll(ctx, gDto.QueryParams{}, pendingFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get pending earnings")

		return res, fmt.Errorf("failed to get pending earnings: %w", err)
	}

	if len(pending) == 0 {
		return res, failure.Conflict("no pending earnings to withdraw") // nolint:wrapcheck
	}

	err = s.repo.Update(ctx, map[string]any{
		model.FieldStatus:        model.StatusWithdrawn,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}, pendingFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to withdraw earnings")

		return res, fmt.Errorf("failed to withdraw earnings: %w", err)
	}

	for _, line := range pending {
		res.Amount += line.Amount
	}

	res.Withdrawn = len(pending)

	return res, nil
}
