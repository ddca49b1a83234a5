package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"innkeeper/infras/otel"
	"innkeeper/infras/postgres"
	"innkeeper/internal/domains/booking/model"
	"innkeeper/shared/constant"
	gDto "innkeeper/shared/dto"
	"innkeeper/shared/logger"
	gRepo "innkeeper/shared/repository"
)

var (
	ErrRoomMissing = errors.New("room does not exist")
)

// activeBookingClause selects bookings that still block a room: confirmed
// ones, and pending ones whose hold has not lapsed. Overlap uses half-open
// interval semantics, so a stay ending exactly when another starts is fine.
const activeOverlapQuery = `
		SELECT id FROM bookings
		WHERE room_id = $1
		  AND check_in < $3
		  AND check_out > $2
		  AND (status = 'confirmed' OR (status = 'pending' AND hold_expires > $4))
		ORDER BY check_in`

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	ActiveForRoom(ctx context.Context, roomID string, start, end, now time.Time) ([]string, error)
	Reserve(ctx context.Context, booking model.Booking, now time.Time) (conflicts []string, err error)
	ExpireHolds(ctx context.Context, now time.Time) ([]model.Booking, error)
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

// ActiveForRoom returns the IDs of bookings that block the room over the
// requested window. Read-only path, no locks taken.
func (repo *repositoryImpl) ActiveForRoom(ctx context.Context, roomID string, start, end, now time.Time) ([]string, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".ActiveForRoom")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, activeOverlapQuery)

	var ids []string

	err := repo.db.Read.SelectContext(ctx, &ids, activeOverlapQuery, roomID, start, end, now)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get active bookings (%s): %w", model.EntityName, err)
	}

	return ids, nil
}

// Reserve atomically checks the room for conflicting bookings and inserts the
// hold. The room row is locked for the duration of the transaction so that
// two concurrent attempts for the same room serialize; whichever runs second
// sees the first one's insert. A non-empty conflicts slice means nothing was
// inserted.
func (repo *repositoryImpl) Reserve(ctx context.Context, booking model.Booking, now time.Time) (conflicts []string, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".Reserve")
	defer scope.End()
	defer scope.TraceIfError(err)

	if booking.RoomID == nil {
		return nil, ErrRoomMissing
	}

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to begin reservation transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				logger.ErrorWithStack(rbErr)
			}
		}
	}()

	var lockedRoomID string

	err = tx.GetContext(ctx, &lockedRoomID, "SELECT id FROM rooms WHERE id = $1 FOR UPDATE", *booking.RoomID)
	if errors.Is(err, sql.ErrNoRows) {
		err = ErrRoomMissing

		return nil, err
	}

	if err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to lock room row: %w", err)
	}

	err = tx.SelectContext(ctx, &conflicts, activeOverlapQuery, *booking.RoomID, booking.CheckIn, booking.CheckOut, now)
	if err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to check booking conflicts: %w", err)
	}

	if len(conflicts) > 0 {
		if err = tx.Rollback(); err != nil {
			logger.ErrorWithStack(err)

			return conflicts, fmt.Errorf("failed to rollback reservation transaction: %w", err)
		}

		return conflicts, nil
	}

	err = repo.InsertTx(ctx, tx, booking)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	err = tx.Commit()
	if err != nil {
		// The exclusion constraint on (room_id, stay) is the backstop for
		// writes that bypass the row lock. Report it as a conflict, not an
		// internal error.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeExclusionViolation {
			err = nil

			return []string{}, nil
		}

		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to commit reservation transaction: %w", err)
	}

	return nil, nil
}

// ExpireHolds cancels every pending booking whose hold has lapsed and returns
// the affected rows. A single statement, so concurrent sweepers cannot expire
// the same hold twice.
func (repo *repositoryImpl) ExpireHolds(ctx context.Context, now time.Time) ([]model.Booking, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".ExpireHolds")
	defer scope.End()

	query := `
		UPDATE bookings
		SET status = $1, modified_at = $2, modified_by = $3
		WHERE status = $4 AND hold_expires IS NOT NULL AND hold_expires <= $2
		RETURNING id, hotel_id, room_id, guest_name, guest_email, guest_phone,
		          check_in, check_out, status, hold_expires, payment_ref,
		          checked_in, checked_out, created_by, modified_by`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var expired []model.Booking

	err := repo.db.Write.SelectContext(ctx, &expired, query, model.StatusCancelled, now, constant.ContextSystem, model.StatusPending)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to expire booking holds: %w", err)
	}

	return expired, nil
}
