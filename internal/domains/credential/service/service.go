package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"rendezvous/config"
	"rendezvous/infras/otel"
	"rendezvous/infras/s3"
	bookingModel "rendezvous/internal/domains/booking/model"
	bookingRepo "rendezvous/internal/domains/booking/repository"
	"rendezvous/internal/domains/credential/model"
	notification "rendezvous/internal/domains/notification/service"
	"rendezvous/shared"
	"rendezvous/shared/constant"
	gDto "rendezvous/shared/dto"
	"rendezvous/shared/failure"
	"rendezvous/shared/qrcode"
	"rendezvous/shared/timezone"

	"github.com/rs/zerolog/log"
)

const defaultPageSize = 100

// Credential issues and maintains the scannable artifact of each booking.
type Credential interface {
	Issue(ctx context.Context, booking bookingModel.Booking) (model.Artifact, error)
	IssueOrRegenerate(ctx context.Context, booking bookingModel.Booking) (model.Artifact, error)
	RegenerateMissing(ctx context.Context) (model.SweepResult, error)
	Revoke(ctx context.Context, booking bookingModel.Booking) error
	Image(ctx context.Context, booking bookingModel.Booking) ([]byte, model.Artifact, error)
}

type serviceImpl struct {
	repo     bookingRepo.Booking
	store    s3.S3
	encoder  qrcode.Encoder
	notifier notification.Notification
	cfg      *config.Config
	otel     otel.Otel
}

func New(
	repo bookingRepo.Booking,
	store s3.S3,
	encoder qrcode.Encoder,
	notifier notification.Notification,
	cfg *config.Config,
	otel otel.Otel,
) Credential {
	return &serviceImpl{
		repo:     repo,
		store:    store,
		encoder:  encoder,
		notifier: notifier,
		cfg:      cfg,
		otel:     otel,
	}
}

func (s *serviceImpl) key(booking bookingModel.Booking) string {
	return s3.Key(s.cfg.External.S3.Directory, model.FileName(booking.UniqueCode))
}

// Issue encodes the canonical payload, stores the image under its deterministic key and records the key on the booking.
// Failures are returned as *bookingModel.CredentialEncodingError.
func (s *serviceImpl) Issue(ctx context.Context, booking bookingModel.Booking) (artifact model.Artifact, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".credential.Issue")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("booking.id", booking.ID)

	fail := func(cause error) (model.Artifact, error) {
		return model.Artifact{}, &bookingModel.CredentialEncodingError{UniqueCode: booking.UniqueCode, Err: cause}
	}

	if booking.UniqueCode == "" {
		return fail(errors.New("booking has no unique code"))
	}

	payload, err := booking.Payload().Encode()
	if err != nil {
		return fail(err)
	}

	png, err := s.encoder.Encode(payload)
	if err != nil {
		return fail(err)
	}

	key := s.key(booking)

	url, err := s.store.UploadFileBytes(ctx, key, constant.ContentTypePNG, png)
	if err != nil {
		return fail(err)
	}

	fields := map[string]any{
		bookingModel.FieldCredentialImage: key,
		constant.FieldModifiedAt:          timezone.Now(),
	}

	if _, err = s.repo.Update(ctx, nil, fields, shared.FilterByID(booking.ID, bookingModel.FieldID, bookingModel.TableName)); err != nil {
		return fail(fmt.Errorf("failed to record credential reference: %w", err))
	}

	log.Info().Int64("booking_id", booking.ID).Str("key", key).Msg("credential issued")

	return model.Artifact{Key: key, URL: url, Regenerated: true}, nil
}

// IssueOrRegenerate leaves a recorded, physically present artifact untouched and issues one otherwise.
func (s *serviceImpl) IssueOrRegenerate(ctx context.Context, booking bookingModel.Booking) (artifact model.Artifact, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".credential.IssueOrRegenerate")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if booking.HasCredential() {
		key := *booking.CredentialImage

		exists, err := s.store.Exists(ctx, key)
		if err != nil {
			return model.Artifact{}, &bookingModel.CredentialEncodingError{UniqueCode: booking.UniqueCode, Err: err}
		}

		if exists {
			return model.Artifact{Key: key, URL: s.store.PublicURL(key)}, nil
		}

		log.Warn().Int64("booking_id", booking.ID).Str("key", key).Msg("credential recorded but absent from storage")
	}

	return s.Issue(ctx, booking)
}

// RegenerateMissing walks every booking in id order and fills the gaps.
// A booking that fails is counted and skipped so one bad record does not stop the sweep.
// Each regenerated credential is forwarded downstream before the sweep moves on.
func (s *serviceImpl) RegenerateMissing(ctx context.Context) (result model.SweepResult, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".credential.RegenerateMissing")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	size := s.cfg.Booking.PageSize
	if size <= 0 {
		size = defaultPageSize
	}

	for page := 1; ; page++ {
		if err = ctx.Err(); err != nil {
			return result, fmt.Errorf("credential sweep interrupted: %w", err)
		}

		params := gDto.QueryParams{Page: page, Limit: size, SortBy: bookingModel.FieldID, SortDir: gDto.SortDirAsc}

		bookings, err := s.repo.GetAll(ctx, params, gDto.FilterGroup{})
		if err != nil {
			return result, fmt.Errorf("failed to list bookings: %w", err)
		}

		for _, booking := range bookings {
			result.Scanned++

			artifact, err := s.IssueOrRegenerate(ctx, booking)
			if err != nil {
				result.Failed++

				log.Warn().Err(err).Int64("booking_id", booking.ID).Msg("credential regeneration failed")

				continue
			}

			if !artifact.Regenerated {
				continue
			}

			result.Regenerated++

			if err := s.notifier.Notify(ctx, booking); err != nil {
				log.Warn().Err(err).Int64("booking_id", booking.ID).Msg("failed to notify downstream of regenerated credential")
			}
		}

		if len(bookings) < size {
			break
		}
	}

	scope.SetAttributes(map[string]any{
		"sweep.scanned":     result.Scanned,
		"sweep.regenerated": result.Regenerated,
		"sweep.failed":      result.Failed,
	})

	log.Info().Int("scanned", result.Scanned).Int("regenerated", result.Regenerated).Int("failed", result.Failed).Msg("credential sweep finished")

	return result, nil
}

// Revoke removes the stored artifact. The booking row is left to the caller.
func (s *serviceImpl) Revoke(ctx context.Context, booking bookingModel.Booking) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".credential.Revoke")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !booking.HasCredential() {
		return nil
	}

	return s.store.DeleteFile(ctx, *booking.CredentialImage) //nolint:wrapcheck
}

// Image reads the stored PNG of booking.
func (s *serviceImpl) Image(ctx context.Context, booking bookingModel.Booking) (data []byte, artifact model.Artifact, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".credential.Image")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !booking.HasCredential() {
		return nil, artifact, failure.NotFound("credential not issued for this booking") // nolint:wrapcheck
	}

	key := *booking.CredentialImage

	data, err = s.store.GetFile(ctx, key)
	if err != nil {
		if errors.Is(err, s3.ErrObjectNotFound) {
			return nil, artifact, failure.NotFound("credential image not found") // nolint:wrapcheck
		}

		return nil, artifact, fmt.Errorf("failed to read credential image: %w", err)
	}

	return data, model.Artifact{Key: key, URL: s.store.PublicURL(key)}, nil
}
