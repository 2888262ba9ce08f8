package service

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"haunters/config"
	"haunters/infras/otel"
	"haunters/infras/postgres"
	"haunters/infras/s3"
	bookingModel "haunters/internal/domains/booking/model"
	bookingRepo "haunters/internal/domains/booking/repository"
	bookingSvc "haunters/internal/domains/booking/service"
	"haunters/internal/domains/dispute/model"
	"haunters/internal/domains/dispute/model/dto"
	"haunters/internal/domains/dispute/repository"
	notificationModel "haunters/internal/domains/notification/model"
	notificationSvc "haunters/internal/domains/notification/service"
	"haunters/shared"
	b64 "haunters/shared/base64"
	"haunters/shared/cache"
	"haunters/shared/constant"
	gDto "haunters/shared/dto"
	"haunters/shared/failure"
	gModel "haunters/shared/model"
	"haunters/shared/timezone"
)

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Dispute=MockDisputeService

const (
	cacheBookingPrefix = "booking:"

	maxEvidenceBytes = 10 << 20
)

type Dispute interface {
	Create(ctx context.Context, req dto.CreateDisputeRequest) (dto.DisputeResponse, error)
	UploadEvidence(ctx context.Context, req dto.UploadEvidenceRequest) (dto.UploadEvidenceResponse, error)
	Respond(ctx context.Context, id string, req dto.RespondDisputeRequest) error
	Resolve(ctx context.Context, id string, req dto.ResolveDisputeRequest) (dto.DisputeResponse, error)
	Get(ctx context.Context, id string) (dto.DisputeResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetDisputesResponse, error)
}

type serviceImpl struct {
	repo        repository.Dispute
	bookingRepo bookingRepo.Booking
	bookingSvc  bookingSvc.Booking
	storage     s3.S3
	notifier    notificationSvc.Notification
	txer        postgres.Transactor
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(
	repo repository.Dispute,
	bookingRepo bookingRepo.Booking,
	bookingSvc bookingSvc.Booking,
	storage s3.S3,
	notifier notificationSvc.Notification,
	txer postgres.Transactor,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Dispute {
	return &serviceImpl{
		repo:        repo,
		bookingRepo: bookingRepo,
		bookingSvc:  bookingSvc,
		storage:     storage,
		notifier:    notifier,
		txer:        txer,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

// Create opens a dispute over a booking. The caller must be a party; the
// dispute is raised against the other side.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateDisputeRequest) (res dto.DisputeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.getBooking(ctx, req.BookingID)
	if err != nil {
		return res, err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if !booking.IsParty(user) {
		return res, failure.Forbidden("you are not a party to this booking") // nolint:wrapcheck
	}

	now := timezone.Now()

	dispute := model.Dispute{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		ReporterID:  user,
		AgainstID:   booking.Counterparty(user),
		BookingID:   booking.ID,
		PropertyID:  booking.PropertyID,
		Status:      model.StatusOpen,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}

	if len(req.EvidenceKeys) > 0 {
		evidence, err := json.Marshal(req.EvidenceKeys)
		if err != nil {
			return res, fmt.Errorf("failed to encode evidence keys: %w", err)
		}

		evidenceStr := string(evidence)
		dispute.EvidenceKeys = &evidenceStr
	}

	if err = s.repo.Insert(ctx, dispute); err != nil {
		log.Error().Err(err).Str("booking_id", req.BookingID).Msg("failed to create dispute")

		return res, fmt.Errorf("failed to create dispute: %w", err)
	}

	s.notifier.Notify(ctx, dispute.AgainstID,
		"Dispute opened",
		fmt.Sprintf("A dispute was opened against you: %s.", req.Title),
		notificationModel.TypeDisputeOpened, dispute.ID)

	s.toResponse(&res, dispute)

	return res, nil
}

// UploadEvidence stores one evidence file, sent as a base64 data URL, and
// returns the object key to reference from a dispute.
func (s *serviceImpl) UploadEvidence(ctx context.Context, req dto.UploadEvidenceRequest) (res dto.UploadEvidenceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UploadEvidence")
	defer scope.End()
	defer scope.TraceIfError(err)

	contentType := b64.GetContentType(req.File)
	if contentType == "" {
		return res, failure.BadRequestFromString("file must be a base64 data URL") // nolint:wrapcheck
	}

	data, err := b64.Decode(req.File)
	if err != nil {
		return res, failure.BadRequestFromString(err.Error()) // nolint:wrapcheck
	}

	if len(data) == 0 || len(data) > maxEvidenceBytes {
		return res, failure.BadRequestFromString("evidence file must be between 1 byte and 10 MB") // nolint:wrapcheck
	}

	key := uuid.NewString() + filepath.Ext(req.FileName)

	url, err := s.storage.UploadFileBytes(ctx, s.cfg.External.S3.BucketName, s.cfg.External.S3.EvidenceDir, key, contentType, data)
	if err != nil {
		log.Error().Err(err).Str("file_name", req.FileName).Msg("failed to upload evidence file")

		return res, fmt.Errorf("failed to upload evidence file: %w", err)
	}

	res.Key = key
	res.URL = url

	return res, nil
}

// Respond records the accused party's side of the story and moves the dispute
// into progress.
func (s *serviceImpl) Respond(ctx context.Context, id string, req dto.RespondDisputeRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Respond")
	defer scope.End()
	defer scope.TraceIfError(err)

	dispute, err := s.getDispute(ctx, id)
	if err != nil {
		return err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if user != dispute.AgainstID {
		return failure.Forbidden("only the accused party can respond to this dispute") // nolint:wrapcheck
	}

	if dispute.Status != model.StatusOpen && dispute.Status != model.StatusInProgress {
		return failure.InvalidState("dispute has already been resolved") // nolint:wrapcheck
	}

	now := timezone.Now()

	err = s.repo.Update(ctx, map[string]any{
		model.FieldHunterResponse: req.Response,
		model.FieldStatus:         model.StatusInProgress,
		constant.FieldModifiedAt:  now,
		constant.FieldModifiedBy:  user,
	}, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("dispute_id", id).Msg("failed to respond to dispute")

		return fmt.Errorf("failed to respond to dispute: %w", err)
	}

	s.notifier.Notify(ctx, dispute.ReporterID,
		"Dispute response",
		"The other party responded to your dispute.",
		notificationModel.TypeDisputeOpened, id)

	return nil
}

// Resolve closes a dispute with an admin verdict. A REFUND or RELEASE_PAYMENT
// verdict settles the booking's escrow through the same guarded paths every
// other settlement uses, in the same transaction as the verdict itself.
func (s *serviceImpl) Resolve(ctx context.Context, id string, req dto.ResolveDisputeRequest) (res dto.DisputeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Resolve")
	defer scope.End()
	defer scope.TraceIfError(err)

	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	if role != constant.RoleAdmin {
		return res, failure.Forbidden("only an admin can resolve disputes") // nolint:wrapcheck
	}

	dispute, err := s.getDispute(ctx, id)
	if err != nil {
		return res, err
	}

	if dispute.Status != model.StatusOpen && dispute.Status != model.StatusInProgress {
		return res, failure.InvalidState("dispute has already been resolved") // nolint:wrapcheck
	}

	booking, err := s.getBooking(ctx, dispute.BookingID)
	if err != nil {
		return res, err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	now := timezone.Now()

	err = s.txer.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		rows, err := s.repo.UpdateCountTx(ctx, tx, map[string]any{
			model.FieldStatus:        model.StatusResolved,
			model.FieldResolution:    req.Resolution,
			model.FieldResolvedBy:    user,
			model.FieldResolvedAt:    now,
			constant.FieldModifiedAt: now,
			constant.FieldModifiedBy: user,
		}, gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorAnd,
			Filters: []any{
				gDto.Filter{Field: model.FieldID, Operator: gDto.FilterOperatorEq, Value: id, Table: model.TableName, ArgName: "guard_dispute_id"},
				gDto.Filter{Field: model.FieldStatus, Operator: gDto.FilterOperatorNotEq, Value: model.StatusResolved, Table: model.TableName, ArgName: "guard_not_resolved"},
				gDto.Filter{Field: model.FieldStatus, Operator: gDto.FilterOperatorNotEq, Value: model.StatusClosed, Table: model.TableName, ArgName: "guard_not_closed"},
			},
		})
		if err != nil {
			return fmt.Errorf("failed to resolve dispute: %w", err)
		}

		if rows == 0 {
			return failure.InvalidState("dispute has already been resolved") // nolint:wrapcheck
		}

		switch req.Action {
		case model.ActionRefund:
			return s.bookingSvc.RefundEscrowTx(ctx, tx, booking, user)
		case model.ActionReleasePayment:
			return s.bookingSvc.ReleaseEscrowTx(ctx, tx, booking, nil, user)
		default:
			return nil
		}
	})
	if err != nil {
		log.Error().Err(err).Str("dispute_id", id).Msg("failed to resolve dispute")

		return res, err
	}

	s.invalidateBookingCaches(ctx)

	message := fmt.Sprintf("Your dispute was resolved: %s", req.Resolution)

	s.notifier.Notify(ctx, dispute.ReporterID, "Dispute resolved", message,
		notificationModel.TypeDisputeResolved, id)
	s.notifier.Notify(ctx, dispute.AgainstID, "Dispute resolved", message,
		notificationModel.TypeDisputeResolved, id)

	return s.freshResponse(ctx, id)
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.DisputeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	dispute, err := s.getDispute(ctx, id)
	if err != nil {
		return res, err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	if user != dispute.ReporterID && user != dispute.AgainstID && role != constant.RoleAdmin {
		return res, failure.Forbidden("you are not a party to this dispute") // nolint:wrapcheck
	}

	s.toResponse(&res, dispute)

	return res, nil
}

// GetAll lists disputes. Non-admin callers only see disputes they are part of.
func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetDisputesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	if role != constant.RoleAdmin {
		ownSide := gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorOr,
			Filters: []any{
				gDto.Filter{Field: model.FieldReporterID, Operator: gDto.FilterOperatorEq, Value: user, Table: model.TableName, ArgName: "own_reporter_id"},
				gDto.Filter{Field: model.FieldAgainstID, Operator: gDto.FilterOperatorEq, Value: user, Table: model.TableName, ArgName: "own_against_id"},
			},
		}

		if len(filter.Filters) == 0 {
			filter = ownSide
		} else {
			filter = gDto.FilterGroup{
				Operator: gDto.FilterGroupOperatorAnd,
				Filters:  []any{filter, ownSide},
			}
		}
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count disputes")

		return res, fmt.Errorf("failed to count disputes: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get disputes")

		return res, fmt.Errorf("failed to get disputes: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	for i := range res.Disputes {
		res.Disputes[i].EvidenceURLs = s.evidenceURLs(res.Disputes[i].EvidenceKeys)
	}

	return res, nil
}

func (s *serviceImpl) getBooking(ctx context.Context, bookingID string) (bookingModel.Booking, error) {
	booking, err := s.bookingRepo.Get(ctx, shared.FilterByID(bookingID, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) getDispute(ctx context.Context, id string) (model.Dispute, error) {
	dispute, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("dispute_id", id).Msg("failed to get dispute")

		return dispute, fmt.Errorf("failed to get dispute: %w", err)
	}

	if dispute.ID == constant.Empty {
		return dispute, failure.NotFound("dispute not found") // nolint:wrapcheck
	}

	return dispute, nil
}

func (s *serviceImpl) freshResponse(ctx context.Context, id string) (res dto.DisputeResponse, err error) {
	dispute, err := s.getDispute(ctx, id)
	if err != nil {
		return res, err
	}

	s.toResponse(&res, dispute)

	return res, nil
}

func (s *serviceImpl) toResponse(res *dto.DisputeResponse, dispute model.Dispute) {
	res.FromModel(dispute)
	res.EvidenceURLs = s.evidenceURLs(res.EvidenceKeys)
}

func (s *serviceImpl) evidenceURLs(keys []string) []string {
	if len(keys) == 0 {
		return nil
	}

	urls := make([]string, len(keys))
	for i, key := range keys {
		urls[i] = s.storage.PublicURL(s.cfg.External.S3.EvidenceDir, key)
	}

	return urls
}

func (s *serviceImpl) invalidateBookingCaches(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheBookingPrefix)
	}()
}
