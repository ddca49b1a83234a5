package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"innkeeper/infras/otel/mocks"
	"innkeeper/infras/postgres"
	"innkeeper/internal/domains/booking/model"
	"innkeeper/internal/domains/booking/repository"
	"innkeeper/shared/constant"
)

func newBookingRepository(t *testing.T) (repository.Booking, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "postgres")
	conn := &postgres.Connection{Read: sqlxDB, Write: sqlxDB}

	return repository.New(conn, mocks.NewOtel()), mock
}

func heldBooking(id string, now time.Time) model.Booking {
	roomID := "room-1"
	hold := now.Add(30 * time.Minute)

	return model.Booking{
		ID:          id,
		HotelID:     "hotel-1",
		RoomID:      &roomID,
		GuestName:   "Ada Guest",
		GuestEmail:  "ada@example.com",
		CheckIn:     now.AddDate(0, 0, 2),
		CheckOut:    now.AddDate(0, 0, 5),
		Status:      model.StatusPending,
		HoldExpires: &hold,
	}
}

// Two reserve attempts for the same room and window: the room row lock
// serializes them, so the second transaction observes the first one's insert
// during its conflict check and backs off without writing. Exactly one
// attempt wins.
func TestBookingRepository_Reserve_FirstCommitterWins(t *testing.T) {
	repo, mock := newBookingRepository(t)
	now := time.Now()

	winner := heldBooking("booking-early", now)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM rooms").
		WithArgs("room-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("room-1"))
	mock.ExpectQuery("SELECT id FROM bookings").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	conflicts, err := repo.Reserve(context.Background(), winner, now)

	assert.NoError(t, err)
	assert.Nil(t, conflicts)

	loser := heldBooking("booking-late", now)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM rooms").
		WithArgs("room-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("room-1"))
	mock.ExpectQuery("SELECT id FROM bookings").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(winner.ID))
	mock.ExpectRollback()

	conflicts, err = repo.Reserve(context.Background(), loser, now)

	assert.NoError(t, err)
	assert.Equal(t, []string{winner.ID}, conflicts)

	assert.NoError(t, mock.ExpectationsWereMet())
}

// A write that bypassed the row lock trips the exclusion constraint at commit
// time. That is still a conflict, not an internal error, even though the
// conflicting booking IDs are no longer observable.
func TestBookingRepository_Reserve_ExclusionViolationAtCommit(t *testing.T) {
	repo, mock := newBookingRepository(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM rooms").
		WithArgs("room-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("room-1"))
	mock.ExpectQuery("SELECT id FROM bookings").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit().
		WillReturnError(&pq.Error{Code: pq.ErrorCode(constant.PqErrorCodeExclusionViolation)})

	conflicts, err := repo.Reserve(context.Background(), heldBooking("booking-racy", now), now)

	assert.NoError(t, err)
	assert.NotNil(t, conflicts)
	assert.Empty(t, conflicts)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_Reserve_RoomMissing(t *testing.T) {
	repo, mock := newBookingRepository(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM rooms").
		WithArgs("room-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := repo.Reserve(context.Background(), heldBooking("booking-new", now), now)

	assert.ErrorIs(t, err, repository.ErrRoomMissing)
	assert.NoError(t, mock.ExpectationsWereMet())
}
