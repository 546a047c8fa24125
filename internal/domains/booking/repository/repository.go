package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"rendezvous/infras/otel"
	"rendezvous/infras/postgres"
	"rendezvous/internal/domains/booking/model"
	"rendezvous/shared/constant"
	gDto "rendezvous/shared/dto"
	gRepo "rendezvous/shared/repository"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

// ErrWindowTaken is returned when the database exclusion constraint rejects an overlapping active booking.
var ErrWindowTaken = errors.New("overlapping active booking for this plate")

// TxFunc runs inside a transaction that holds the plate/day lock.
type TxFunc func(ctx context.Context, tx *sqlx.Tx) error

type Booking interface {
	Insert(ctx context.Context, tx *sqlx.Tx, booking model.Booking) (int64, error)
	Get(ctx context.Context, filter gDto.FilterGroup) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.Booking, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, tx *sqlx.Tx, fields map[string]any, filter gDto.FilterGroup) (int64, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) (int64, error)
	FindActive(ctx context.Context, tx *sqlx.Tx, plate string, date time.Time, excludeID int64) ([]model.Booking, error)
	WithPlateLock(ctx context.Context, plate string, date time.Time, fn TxFunc) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// Insert needs a transaction so the conflict read and the write are covered by the same lock.
func (r *repositoryImpl) Insert(ctx context.Context, tx *sqlx.Tx, booking model.Booking) (int64, error) {
	id, err := r.Repository.InsertTx(ctx, tx, booking)

	return id, translate(err)
}

func (r *repositoryImpl) Get(ctx context.Context, filter gDto.FilterGroup) (model.Booking, error) {
	return r.Repository.Get(ctx, filter) //nolint:wrapcheck
}

func (r *repositoryImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.Booking, error) {
	return r.Repository.GetAll(ctx, params, filter) //nolint:wrapcheck
}

// Update writes through tx when given, otherwise on the write pool.
func (r *repositoryImpl) Update(ctx context.Context, tx *sqlx.Tx, fields map[string]any, filter gDto.FilterGroup) (int64, error) {
	var (
		affected int64
		err      error
	)

	if tx != nil {
		affected, err = r.Repository.UpdateTx(ctx, tx, fields, filter)
	} else {
		affected, err = r.Repository.Update(ctx, fields, filter)
	}

	return affected, translate(err)
}

// FindActive lists the pending or validated bookings of plate on date, skipping excludeID.
func (r *repositoryImpl) FindActive(ctx context.Context, tx *sqlx.Tx, plate string, date time.Time, excludeID int64) ([]model.Booking, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.FindActive")
	defer scope.End()

	filter := ActiveOn(plate, date)
	if excludeID > 0 {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldID,
			Value:    excludeID,
			Operator: gDto.FilterOperatorNotEq,
			Table:    model.TableName,
		})
	}

	params := gDto.QueryParams{SortBy: model.FieldScheduledTime, SortDir: gDto.SortDirAsc}

	if tx != nil {
		return r.Repository.GetAllTx(ctx, tx, params, filter) //nolint:wrapcheck
	}

	return r.Repository.GetAll(ctx, params, filter) //nolint:wrapcheck
}

// WithPlateLock runs fn in a transaction holding an advisory lock on (plate, day).
// Concurrent requests for the same truck and day are serialized, so check-then-insert is atomic.
func (r *repositoryImpl) WithPlateLock(ctx context.Context, plate string, date time.Time, fn TxFunc) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.WithPlateLock")
	defer scope.End()

	tx, err := r.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		scope.TraceError(err)

		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err == nil {
			return
		}

		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error().Err(rbErr).Str("plate", plate).Msg("failed to rollback booking transaction")
		}
	}()

	key := fmt.Sprintf("%s|%s", plate, date.Format(constant.DayFormat))
	if _, err = tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtextextended($1, 0))", key); err != nil {
		scope.TraceError(err)

		return fmt.Errorf("failed to acquire plate lock: %w", err)
	}

	if err = fn(ctx, tx); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		scope.TraceError(err)

		return fmt.Errorf("failed to commit booking transaction: %w", translate(err))
	}

	return nil
}

// ActiveOn filters the active bookings of plate on one calendar day.
func ActiveOn(plate string, date time.Time) gDto.FilterGroup {
	return gDto.All(
		gDto.Eq(model.TableName, model.FieldPlate, plate),
		gDto.Eq(model.TableName, model.FieldScheduledDate, date),
		ActiveStatus(),
	)
}

// ActiveStatus matches pending and validated bookings.
func ActiveStatus() gDto.Filter {
	return StatusIn(model.ActiveStatuses...)
}

// StatusIn matches any of statuses.
func StatusIn(statuses ...model.Status) gDto.Filter {
	values := make([]string, len(statuses))
	for i, status := range statuses {
		values[i] = string(status)
	}

	return gDto.Filter{
		Field:    model.FieldStatus,
		Value:    values,
		Operator: gDto.FilterOperatorIn,
		Table:    model.TableName,
	}
}

func translate(err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeExclusionViolation {
		return fmt.Errorf("%w: %s", ErrWindowTaken, pqErr.Message)
	}

	return err
}
