package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"rendezvous/config"
	"rendezvous/infras/kafka"
	"rendezvous/infras/otel"
	"rendezvous/internal/domains/booking/model"
	"rendezvous/internal/domains/booking/model/dto"
	"rendezvous/internal/domains/booking/repository"
	"rendezvous/internal/domains/booking/rules"
	credDto "rendezvous/internal/domains/credential/model/dto"
	credential "rendezvous/internal/domains/credential/service"
	notification "rendezvous/internal/domains/notification/service"
	"rendezvous/shared"
	"rendezvous/shared/cache"
	"rendezvous/shared/constant"
	gDto "rendezvous/shared/dto"
	"rendezvous/shared/failure"
	"rendezvous/shared/timezone"
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

// maxTransitionAttempts bounds the re-read loop when a concurrent writer changes the status first.
const maxTransitionAttempts = 3

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	Get(ctx context.Context, id int64) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Mine(ctx context.Context, req gDto.QueryParams) (dto.GetBookingsResponse, error)
	Today(ctx context.Context) (dto.GetBookingsResponse, error)
	Upcoming(ctx context.Context) (dto.GetBookingsResponse, error)
	FindConflicts(ctx context.Context, plate, date, at string, excludeID int64) (dto.ConflictsResponse, error)
	Transition(ctx context.Context, id int64, action model.Action) (dto.BookingResponse, error)
	BulkTransition(ctx context.Context, action model.Action, ids []int64) (dto.BulkTransitionResponse, error)
	Edit(ctx context.Context, id int64, req dto.UpdateBookingRequest) (dto.BookingResponse, error)
	Delete(ctx context.Context, id int64) error
	Credential(ctx context.Context, id int64) (credDto.CredentialResponse, error)
	CredentialImage(ctx context.Context, id int64) ([]byte, error)
	RegenerateCredentials(ctx context.Context) (credDto.RegenerateResponse, error)
}

type serviceImpl struct {
	repo       repository.Booking
	credential credential.Credential
	notifier   notification.Notification
	events     kafka.Client
	cache      cache.RedisCache
	clock      timezone.Clock
	cfg        *config.Config
	otel       otel.Otel
}

func New(
	repo repository.Booking,
	credential credential.Credential,
	notifier notification.Notification,
	events kafka.Client,
	cache cache.RedisCache,
	clock timezone.Clock,
	cfg *config.Config,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:       repo,
		credential: credential,
		notifier:   notifier,
		events:     events,
		cache:      cache,
		clock:      clock,
		cfg:        cfg,
		otel:       otel,
	}
}

func (s *serviceImpl) today() time.Time {
	return timezone.Day(s.clock.Now())
}

// Create validates the request, rejects overlapping active bookings of the same truck and stores the booking
// as pending. The credential is issued afterwards; a failure there is logged and does not undo the booking.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	schedule, err := req.ToSchedule()
	if err != nil {
		return res, err
	}

	if err = rules.Validate(&schedule, s.today()); err != nil {
		return res, err
	}

	user, _ := shared.CurrentUser(ctx)
	now := s.clock.Now()

	booking := model.Booking{
		UniqueCode: uuid.NewString(),
		Status:     model.StatusPending,
	}
	booking.Apply(schedule)
	booking.CreatedAt = now
	booking.ModifiedAt = now
	booking.CreatedBy = cmp.Or(user, constant.ContextGuest)
	booking.ModifiedBy = booking.CreatedBy

	if user != "" {
		booking.OwnerID = &user
	}

	err = s.repo.WithPlateLock(ctx, booking.Plate, booking.ScheduledDate, func(ctx context.Context, tx *sqlx.Tx) error {
		if err := s.checkConflicts(ctx, tx, schedule, 0); err != nil {
			return err
		}

		id, err := s.repo.Insert(ctx, tx, booking)
		if err != nil {
			return err
		}

		booking.ID = id

		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrWindowTaken) {
			return res, &model.SchedulingConflictError{Plate: booking.Plate, Window: booking.Window()}
		}

		var conflict *model.SchedulingConflictError
		if errors.As(err, &conflict) {
			return res, err
		}

		log.Error().Err(err).Str("plate", booking.Plate).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	scope.SetAttribute("booking.id", booking.ID)
	log.Info().Int64("booking_id", booking.ID).Str("plate", booking.Plate).Str("interval", booking.Interval()).Msg("booking created")

	s.issueCredential(ctx, &booking)

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		s.publish(c, booking, model.EventCreated)
		s.invalidate(c, 0)
	}()

	return res, nil
}

// issueCredential makes sure booking has a stored artifact and forwards a fresh one downstream.
func (s *serviceImpl) issueCredential(ctx context.Context, booking *model.Booking) {
	artifact, err := s.credential.IssueOrRegenerate(ctx, *booking)
	if err != nil {
		log.Warn().Err(err).Int64("booking_id", booking.ID).Msg("booking stored without credential")

		return
	}

	booking.CredentialImage = &artifact.Key

	if !artifact.Regenerated {
		return
	}

	issued := *booking

	go func() {
		if err := s.notifier.Notify(context.WithoutCancel(ctx), issued); err != nil {
			log.Warn().Err(err).Int64("booking_id", issued.ID).Msg("failed to notify downstream of issued credential")
		}
	}()
}

// checkConflicts fails with *model.SchedulingConflictError when an active booking of the plate overlaps schedule.
func (s *serviceImpl) checkConflicts(ctx context.Context, tx *sqlx.Tx, schedule model.Schedule, excludeID int64) error {
	existing, err := s.repo.FindActive(ctx, tx, schedule.Plate, schedule.ScheduledDate, excludeID)
	if err != nil {
		return fmt.Errorf("failed to list active bookings: %w", err)
	}

	window := model.NewWindow(schedule.ScheduledDate, schedule.ScheduledTime)

	hits := model.Overlapping(window, existing)
	if len(hits) == 0 {
		return nil
	}

	return &model.SchedulingConflictError{Plate: schedule.Plate, Window: hits[0].Window(), BookingID: hits[0].ID}
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetBooking, strconv.FormatInt(id, 10))

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		if err = s.authorizeRead(ctx, res.ID, res.OwnerID); err != nil {
			return dto.BookingResponse{}, err
		}

		return res, nil
	}

	booking, err := s.load(ctx, id)
	if err != nil {
		return res, err
	}

	if err = s.authorizeRead(ctx, booking.ID, ownerOf(booking)); err != nil {
		return res, err
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

// Mine lists the bookings owned by the caller.
func (s *serviceImpl) Mine(ctx context.Context, req gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	user, _ := shared.CurrentUser(ctx)
	if user == "" {
		return res, failure.Unauthorized("login required to list your bookings") // nolint:wrapcheck
	}

	return s.GetAll(ctx, req, gDto.All(gDto.Eq(model.TableName, model.FieldOwnerID, user)))
}

// Today lists every booking scheduled for the current day in start order.
func (s *serviceImpl) Today(ctx context.Context) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Today")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.schedule(ctx, gDto.All(gDto.Eq(model.TableName, model.FieldScheduledDate, s.today())))
}

// Upcoming lists the active bookings of today and tomorrow in start order.
func (s *serviceImpl) Upcoming(ctx context.Context) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Upcoming")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	today := s.today()

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldScheduledDate, ArgName: "date_from", Value: today, Operator: gDto.FilterOperatorGreaterEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldScheduledDate, ArgName: "date_to", Value: today.AddDate(0, 0, 1), Operator: gDto.FilterOperatorLessEq, Table: model.TableName},
			repository.ActiveStatus(),
		},
	}

	return s.schedule(ctx, filter)
}

// schedule returns every booking matching filter ordered by window start. Day views are small, so they are not paged.
func (s *serviceImpl) schedule(ctx context.Context, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	models, err := s.repo.GetAll(ctx, gDto.QueryParams{SortBy: model.FieldScheduledDate, SortDir: gDto.SortDirAsc}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get scheduled bookings")

		return res, fmt.Errorf("failed to get scheduled bookings: %w", err)
	}

	slices.SortStableFunc(models, func(a, b model.Booking) int {
		return a.Window().Start.Compare(b.Window().Start)
	})

	res.FromModels(models, len(models), len(models))

	return res, nil
}

// FindConflicts reports the active bookings of plate overlapping the window starting at date and at.
func (s *serviceImpl) FindConflicts(ctx context.Context, plate, date, at string, excludeID int64) (res dto.ConflictsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.FindConflicts")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	plate = rules.Normalize(plate)
	if plate == "" {
		return res, failure.BadRequestFromString("plate is required") // nolint:wrapcheck
	}

	day, err := dto.ParseDate(date)
	if err != nil {
		return res, err
	}

	start, err := model.ParseClockTime(at)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	existing, err := s.repo.FindActive(ctx, nil, plate, day, excludeID)
	if err != nil {
		log.Error().Err(err).Str("plate", plate).Msg("failed to list active bookings")

		return res, fmt.Errorf("failed to list active bookings: %w", err)
	}

	window := model.NewWindow(day, start)
	res.FromModels(plate, window, model.Overlapping(window, existing))

	return res, nil
}

// Transition applies a status-changing action. The write is conditional on the status that was read,
// so a concurrent transition is detected and the action re-evaluated against the new status.
func (s *serviceImpl) Transition(ctx context.Context, id int64, action model.Action) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Transition")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttributes(map[string]any{"booking.id": id, "booking.action": string(action)})

	if !action.IsTransition() {
		return res, failure.BadRequestFromString(fmt.Sprintf("unknown action %q", action)) // nolint:wrapcheck
	}

	user, _ := shared.CurrentUser(ctx)

	for range maxTransitionAttempts {
		booking, err := s.load(ctx, id)
		if err != nil {
			return res, err
		}

		next, err := booking.Status.Apply(action)
		if err != nil {
			return res, err
		}

		now := s.clock.Now()
		fields := map[string]any{
			model.FieldStatus:        next,
			constant.FieldModifiedAt: now,
			constant.FieldModifiedBy: user,
		}

		affected, err := s.repo.Update(ctx, nil, fields, byIDAndStatus(id, booking.Status))
		if err != nil {
			log.Error().Err(err).Int64("booking_id", id).Msg("failed to update booking status")

			return res, fmt.Errorf("failed to update booking status: %w", err)
		}

		if affected == 0 {
			log.Debug().Int64("booking_id", id).Str("action", string(action)).Msg("booking status changed concurrently, retrying")

			continue
		}

		from := booking.Status
		booking.Status = next
		booking.ModifiedAt = now
		booking.ModifiedBy = user

		log.Info().Int64("booking_id", id).Str("from", string(from)).Str("to", string(next)).Msg("booking status changed")

		res.FromModel(booking)

		go func() {
			c := context.WithoutCancel(ctx)

			s.publish(c, booking, model.EventFor(action))
			s.invalidate(c, id)
		}()

		return res, nil
	}

	return res, fmt.Errorf("failed to %s booking %d: status keeps changing", action, id)
}

// BulkTransition applies action to every listed booking whose current status allows it and skips the rest.
func (s *serviceImpl) BulkTransition(ctx context.Context, action model.Action, ids []int64) (res dto.BulkTransitionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.BulkTransition")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res.Action = string(action)

	if !action.IsTransition() {
		return res, failure.BadRequestFromString(fmt.Sprintf("unknown action %q", action)) // nolint:wrapcheck
	}

	if len(ids) == 0 {
		return res, nil
	}

	user, _ := shared.CurrentUser(ctx)

	filter := gDto.All(
		gDto.Filter{Field: model.FieldID, Value: ids, Operator: gDto.FilterOperatorIn, Table: model.TableName},
		repository.StatusIn(action.Sources()...),
	)

	fields := map[string]any{
		model.FieldStatus:        action.Target(),
		constant.FieldModifiedAt: s.clock.Now(),
		constant.FieldModifiedBy: user,
	}

	res.Updated, err = s.repo.Update(ctx, nil, fields, filter)
	if err != nil {
		log.Error().Err(err).Str("action", string(action)).Msg("failed to update bookings")

		return res, fmt.Errorf("failed to update bookings: %w", err)
	}

	log.Info().Str("action", string(action)).Int("requested", len(ids)).Int64("updated", res.Updated).Msg("bulk transition applied")

	go func() {
		c := context.WithoutCancel(ctx)

		for _, id := range ids {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, strconv.FormatInt(id, 10))); err != nil {
				log.Error().Err(err).Msg("failed to delete booking from cache")
			}
		}

		s.invalidate(c, 0)
	}()

	return res, nil
}

// Edit changes the supplied fields of an active booking. A new slot goes through the same conflict check as Create,
// ignoring the booking itself.
func (s *serviceImpl) Edit(ctx context.Context, id int64, req dto.UpdateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Edit")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.load(ctx, id)
	if err != nil {
		return res, err
	}

	if err = s.authorize(ctx, booking); err != nil {
		return res, err
	}

	if !booking.Status.Editable() {
		return res, &model.IllegalTransitionError{From: booking.Status, Action: model.ActionEdit}
	}

	current := booking.Schedule()

	merged, changes, err := req.Merge(current)
	if err != nil {
		return res, err
	}

	if !changes.Any() {
		return res, failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	if err = rules.ValidatePartial(&merged, changes, s.today()); err != nil {
		return res, err
	}

	user, _ := shared.CurrentUser(ctx)
	now := s.clock.Now()
	fields := scheduleFields(merged)
	fields[constant.FieldModifiedAt] = now
	fields[constant.FieldModifiedBy] = user
	filter := byIDAndStatus(id, booking.Status)

	var affected int64

	if merged.SameSlot(current) {
		affected, err = s.repo.Update(ctx, nil, fields, filter)
	} else {
		err = s.repo.WithPlateLock(ctx, merged.Plate, merged.ScheduledDate, func(ctx context.Context, tx *sqlx.Tx) error {
			if err := s.checkConflicts(ctx, tx, merged, id); err != nil {
				return err
			}

			n, err := s.repo.Update(ctx, tx, fields, filter)
			affected = n

			return err
		})
	}

	if err != nil {
		if errors.Is(err, repository.ErrWindowTaken) {
			return res, &model.SchedulingConflictError{Plate: merged.Plate, Window: model.NewWindow(merged.ScheduledDate, merged.ScheduledTime)}
		}

		var conflict *model.SchedulingConflictError
		if errors.As(err, &conflict) {
			return res, err
		}

		log.Error().Err(err).Int64("booking_id", id).Msg("failed to update booking")

		return res, fmt.Errorf("failed to update booking: %w", err)
	}

	if affected == 0 {
		return res, s.refused(ctx, id, model.ActionEdit)
	}

	booking.Apply(merged)
	booking.ModifiedAt = now
	booking.ModifiedBy = user

	s.issueCredential(ctx, &booking)

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		s.publish(c, booking, model.EventEdited)
		s.invalidate(c, id)
	}()

	return res, nil
}

// Delete removes a booking that is not completed. The stored credential is removed on a best-effort basis.
func (s *serviceImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	if err = s.authorize(ctx, booking); err != nil {
		return err
	}

	if !booking.Status.Deletable() {
		return &model.IllegalTransitionError{From: booking.Status, Action: model.ActionDelete}
	}

	filter := gDto.All(
		gDto.Eq(model.TableName, model.FieldID, id),
		gDto.Filter{Field: model.FieldStatus, Value: model.StatusCompleted, Operator: gDto.FilterOperatorNotEq, Table: model.TableName},
	)

	affected, err := s.repo.Delete(ctx, filter)
	if err != nil {
		log.Error().Err(err).Int64("booking_id", id).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	if affected == 0 {
		return s.refused(ctx, id, model.ActionDelete)
	}

	log.Info().Int64("booking_id", id).Msg("booking deleted")

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.credential.Revoke(c, booking); err != nil {
			log.Warn().Err(err).Int64("booking_id", id).Msg("failed to remove credential of deleted booking")
		}

		s.publish(c, booking, model.EventDeleted)
		s.invalidate(c, id)
	}()

	return nil
}

// Credential returns the stored artifact of a booking with the payload it encodes.
func (s *serviceImpl) Credential(ctx context.Context, id int64) (res credDto.CredentialResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Credential")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.load(ctx, id)
	if err != nil {
		return res, err
	}

	if err = s.authorizeRead(ctx, booking.ID, ownerOf(booking)); err != nil {
		return res, err
	}

	image, artifact, err := s.credential.Image(ctx, booking)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	if err = res.FromModel(booking, artifact, image); err != nil {
		return res, fmt.Errorf("failed to build credential response: %w", err)
	}

	return res, nil
}

// CredentialImage returns the raw PNG of a booking credential.
func (s *serviceImpl) CredentialImage(ctx context.Context, id int64) (image []byte, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.CredentialImage")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = s.authorizeRead(ctx, booking.ID, ownerOf(booking)); err != nil {
		return nil, err
	}

	image, _, err = s.credential.Image(ctx, booking)

	return image, err //nolint:wrapcheck
}

// RegenerateCredentials runs the credential sweep over every booking.
func (s *serviceImpl) RegenerateCredentials(ctx context.Context) (res credDto.RegenerateResponse, err error) {
	result, err := s.credential.RegenerateMissing(ctx)
	res.FromModel(result)

	if err != nil {
		return res, err //nolint:wrapcheck
	}

	if result.Regenerated > 0 {
		go func() {
			c := context.WithoutCancel(ctx)

			if err := s.cache.Clear(c, shared.BuildCacheKey(cacheGetBooking, constant.Asterix)); err != nil {
				log.Error().Err(err).Msg("failed to invalidate booking caches")
			}

			s.invalidate(c, 0)
		}()
	}

	return res, nil
}

// load reads one booking from the primary, or fails with *model.NotFoundError.
func (s *serviceImpl) load(ctx context.Context, id int64) (model.Booking, error) {
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	booking, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Int64("booking_id", id).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == 0 {
		return booking, &model.NotFoundError{ID: id}
	}

	return booking, nil
}

// refused explains why a conditional write matched no row: the booking is gone or its status moved on.
func (s *serviceImpl) refused(ctx context.Context, id int64, action model.Action) error {
	latest, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	return &model.IllegalTransitionError{From: latest.Status, Action: action}
}

// authorize lets staff change any booking and everyone else only their own.
func (s *serviceImpl) authorize(ctx context.Context, booking model.Booking) error {
	return s.authorizeOwner(ctx, booking.ID, ownerOf(booking))
}

// authorizeRead also lets anyone read an anonymous booking, so portal visitors can fetch their credential.
func (s *serviceImpl) authorizeRead(ctx context.Context, id int64, owner string) error {
	if owner == "" {
		return nil
	}

	return s.authorizeOwner(ctx, id, owner)
}

func (s *serviceImpl) authorizeOwner(ctx context.Context, id int64, owner string) error {
	user, role := shared.CurrentUser(ctx)
	if shared.IsStaff(role) {
		return nil
	}

	if owner == "" || owner != user {
		return &model.PermissionError{BookingID: id, UserID: user}
	}

	return nil
}

func (s *serviceImpl) publish(ctx context.Context, booking model.Booking, eventType model.EventType) {
	msg := kafka.Message{
		Key:   strconv.FormatInt(booking.ID, 10),
		Value: booking.Event(eventType, s.clock.Now()),
	}

	if err := s.events.SendMessages(ctx, s.cfg.Kafka.Topic, msg); err != nil {
		log.Error().Err(err).Int64("booking_id", booking.ID).Str("event", string(eventType)).Msg("failed to publish booking event")
	}
}

// invalidate drops the listing caches and, when id is set, the cached booking itself.
func (s *serviceImpl) invalidate(ctx context.Context, id int64) {
	if id > 0 {
		if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetBooking, strconv.FormatInt(id, 10))); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}
	}

	shared.InvalidateCaches(ctx, s.cache, cacheGetAllBooking)
	shared.InvalidateCaches(ctx, s.cache, cacheCountBooking)
}

func ownerOf(booking model.Booking) string {
	if booking.OwnerID == nil {
		return ""
	}

	return *booking.OwnerID
}

func byIDAndStatus(id int64, status model.Status) gDto.FilterGroup {
	return gDto.All(
		gDto.Eq(model.TableName, model.FieldID, id),
		gDto.Eq(model.TableName, model.FieldStatus, status),
	)
}

func scheduleFields(s model.Schedule) map[string]any {
	return map[string]any{
		model.FieldDriverCode:       s.DriverCode,
		model.FieldPlate:            s.Plate,
		model.FieldContainerNumber:  s.ContainerNumber,
		model.FieldTrafficDirection: s.TrafficDirection,
		model.FieldContainerState:   s.ContainerState,
		model.FieldOperation:        s.Operation,
		model.FieldScheduledDate:    s.ScheduledDate,
		model.FieldScheduledTime:    s.ScheduledTime,
	}
}
