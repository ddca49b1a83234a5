package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"innkeeper/config"
	kafkaMocks "innkeeper/infras/kafka/mocks"
	"innkeeper/infras/otel/mocks"
	bookingMocks "innkeeper/internal/domains/booking/mocks"
	"innkeeper/internal/domains/booking/model"
	"innkeeper/internal/domains/booking/model/dto"
	"innkeeper/internal/domains/booking/service"
	roomMocks "innkeeper/internal/domains/room/mocks"
	roomModel "innkeeper/internal/domains/room/model"
	"innkeeper/permissions"
	cacheMocks "innkeeper/shared/cache/mocks"
	"innkeeper/shared/constant"
	"innkeeper/shared/failure"
)

type bookingServiceMocks struct {
	repo     *bookingMocks.MockBooking
	roomRepo *roomMocks.MockRoom
	cache    *cacheMocks.MockRedisCache
	kafka    *kafkaMocks.MockClient
}

func newBookingService(t *testing.T) (service.Booking, *bookingServiceMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)

	m := &bookingServiceMocks{
		repo:     bookingMocks.NewMockBooking(ctrl),
		roomRepo: roomMocks.NewMockRoom(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
		kafka:    kafkaMocks.NewMockClient(ctrl),
	}

	// Events and cache invalidation run on background goroutines; they are
	// best effort and not part of the behavior under test.
	m.kafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Booking.HoldSeconds = 1800
	cfg.Booking.MaxStayNights = 90

	svc := service.New(m.repo, m.roomRepo, cfg, m.cache, m.kafka, mocks.NewOtel())

	return svc, m
}

func futureDate(days int) string {
	return time.Now().AddDate(0, 0, days).Format(time.RFC3339)
}

func reservationRequest() dto.CreateReservationRequest {
	return dto.CreateReservationRequest{
		HotelID:    "hotel-1",
		RoomID:     "room-1",
		GuestName:  "Ada Guest",
		GuestEmail: "ada@example.com",
		CheckIn:    futureDate(2),
		CheckOut:   futureDate(5),
	}
}

func bookableRoom() roomModel.Room {
	return roomModel.Room{
		ID:      "room-1",
		HotelID: "hotel-1",
		Number:  "101",
		Status:  roomModel.StatusAvailable,
	}
}

func TestBookingService_Reserve(t *testing.T) {
	tests := []struct {
		name      string
		req       func() dto.CreateReservationRequest
		setupMock func(m *bookingServiceMocks)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful reservation",
			req:  reservationRequest,
			setupMock: func(m *bookingServiceMocks) {
				m.roomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(bookableRoom(), nil)

				m.repo.EXPECT().
					Reserve(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, nil)
			},
			wantErr: false,
		},
		{
			name: "conflicting booking",
			req:  reservationRequest,
			setupMock: func(m *bookingServiceMocks) {
				m.roomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(bookableRoom(), nil)

				m.repo.EXPECT().
					Reserve(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]string{"existing-booking"}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "check_out before check_in",
			req: func() dto.CreateReservationRequest {
				req := reservationRequest()
				req.CheckIn = futureDate(5)
				req.CheckOut = futureDate(2)

				return req
			},
			setupMock: func(m *bookingServiceMocks) {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "stay entirely in the past",
			req: func() dto.CreateReservationRequest {
				req := reservationRequest()
				req.CheckIn = futureDate(-10)
				req.CheckOut = futureDate(-5)

				return req
			},
			setupMock: func(m *bookingServiceMocks) {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "stay exceeds the maximum length",
			req: func() dto.CreateReservationRequest {
				req := reservationRequest()
				req.CheckOut = futureDate(120)

				return req
			},
			setupMock: func(m *bookingServiceMocks) {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "room not found",
			req:  reservationRequest,
			setupMock: func(m *bookingServiceMocks) {
				m.roomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(roomModel.Room{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "room belongs to another hotel",
			req:  reservationRequest,
			setupMock: func(m *bookingServiceMocks) {
				room := bookableRoom()
				room.HotelID = "hotel-2"

				m.roomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(room, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "room under maintenance",
			req:  reservationRequest,
			setupMock: func(m *bookingServiceMocks) {
				room := bookableRoom()
				room.Status = roomModel.StatusMaintenance

				m.roomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(room, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "repository error",
			req:  reservationRequest,
			setupMock: func(m *bookingServiceMocks) {
				m.roomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(bookableRoom(), nil)

				m.repo.EXPECT().
					Reserve(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newBookingService(t)
			tt.setupMock(m)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			res, err := svc.Reserve(ctx, tt.req())

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, model.StatusPending, res.Status)
			assert.NotNil(t, res.HoldExpires)
		})
	}
}

func TestBookingService_Reserve_ConflictDetails(t *testing.T) {
	svc, m := newBookingService(t)

	m.roomRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(bookableRoom(), nil)

	m.repo.EXPECT().
		Reserve(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]string{"booking-a", "booking-b"}, nil)

	_, err := svc.Reserve(context.Background(), reservationRequest())

	assert.Error(t, err)
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	assert.Equal(t, []string{"booking-a", "booking-b"}, failure.GetDetails(err))
}

func TestBookingService_CheckAvailability(t *testing.T) {
	tests := []struct {
		name          string
		checkIn       string
		checkOut      string
		setupMock     func(m *bookingServiceMocks)
		wantErr       bool
		wantAvailable bool
		wantConflicts []string
	}{
		{
			name:     "room is free",
			checkIn:  futureDate(2),
			checkOut: futureDate(5),
			setupMock: func(m *bookingServiceMocks) {
				m.roomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(bookableRoom(), nil)

				m.repo.EXPECT().
					ActiveForRoom(gomock.Any(), "room-1", gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, nil)
			},
			wantAvailable: true,
		},
		{
			name:     "room has conflicting bookings",
			checkIn:  futureDate(2),
			checkOut: futureDate(5),
			setupMock: func(m *bookingServiceMocks) {
				m.roomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(bookableRoom(), nil)

				m.repo.EXPECT().
					ActiveForRoom(gomock.Any(), "room-1", gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]string{"other-booking"}, nil)
			},
			wantAvailable: false,
			wantConflicts: []string{"other-booking"},
		},
		{
			name:     "room under maintenance is never available",
			checkIn:  futureDate(2),
			checkOut: futureDate(5),
			setupMock: func(m *bookingServiceMocks) {
				room := bookableRoom()
				room.Status = roomModel.StatusMaintenance

				m.roomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(room, nil)

				m.repo.EXPECT().
					ActiveForRoom(gomock.Any(), "room-1", gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, nil)
			},
			wantAvailable: false,
		},
		{
			name:      "invalid window",
			checkIn:   futureDate(5),
			checkOut:  futureDate(2),
			setupMock: func(m *bookingServiceMocks) {},
			wantErr:   true,
		},
		{
			name:     "room not found",
			checkIn:  futureDate(2),
			checkOut: futureDate(5),
			setupMock: func(m *bookingServiceMocks) {
				m.roomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(roomModel.Room{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newBookingService(t)
			tt.setupMock(m)

			res, err := svc.CheckAvailability(context.Background(), "room-1", tt.checkIn, tt.checkOut)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantAvailable, res.Available)
			assert.Equal(t, tt.wantConflicts, res.ConflictingBookings)
		})
	}
}

func TestBookingService_BookedDates(t *testing.T) {
	liveHold := time.Now().Add(10 * time.Minute)
	lapsedHold := time.Now().Add(-10 * time.Minute)

	tests := []struct {
		name      string
		setupMock func(m *bookingServiceMocks)
		wantErr   bool
		wantCode  int
		wantDates int
	}{
		{
			name: "confirmed and live pending bookings block",
			setupMock: func(m *bookingServiceMocks) {
				m.roomRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Booking{
						{
							ID:       "b-1",
							Status:   model.StatusConfirmed,
							CheckIn:  time.Now().AddDate(0, 0, 2),
							CheckOut: time.Now().AddDate(0, 0, 5),
						},
						{
							ID:          "b-2",
							Status:      model.StatusPending,
							HoldExpires: &liveHold,
							CheckIn:     time.Now().AddDate(0, 0, 7),
							CheckOut:    time.Now().AddDate(0, 0, 9),
						},
						{
							ID:          "b-3",
							Status:      model.StatusPending,
							HoldExpires: &lapsedHold,
							CheckIn:     time.Now().AddDate(0, 0, 10),
							CheckOut:    time.Now().AddDate(0, 0, 12),
						},
					}, nil)
			},
			wantDates: 2,
		},
		{
			name: "room not found",
			setupMock: func(m *bookingServiceMocks) {
				m.roomRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "repository error",
			setupMock: func(m *bookingServiceMocks) {
				m.roomRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newBookingService(t)
			tt.setupMock(m)

			res, err := svc.BookedDates(context.Background(), "room-1")

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "room-1", res.RoomID)
			assert.Len(t, res.Dates, tt.wantDates)
		})
	}
}

func TestBookingService_Confirm(t *testing.T) {
	liveHold := time.Now().Add(10 * time.Minute)
	lapsedHold := time.Now().Add(-10 * time.Minute)

	pendingBooking := func(holdExpires time.Time) model.Booking {
		roomID := "room-1"

		return model.Booking{
			ID:          "booking-1",
			HotelID:     "hotel-1",
			RoomID:      &roomID,
			Status:      model.StatusPending,
			HoldExpires: &holdExpires,
		}
	}

	tests := []struct {
		name      string
		setupMock func(m *bookingServiceMocks)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful confirmation",
			setupMock: func(m *bookingServiceMocks) {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingBooking(liveHold), nil)

				m.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "hold has expired",
			setupMock: func(m *bookingServiceMocks) {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingBooking(lapsedHold), nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "already confirmed booking cannot be confirmed again",
			setupMock: func(m *bookingServiceMocks) {
				booking := pendingBooking(liveHold)
				booking.Status = model.StatusConfirmed
				booking.HoldExpires = nil

				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booking, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "cancelled booking cannot be confirmed",
			setupMock: func(m *bookingServiceMocks) {
				booking := pendingBooking(liveHold)
				booking.Status = model.StatusCancelled

				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booking, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "booking not found",
			setupMock: func(m *bookingServiceMocks) {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "update error",
			setupMock: func(m *bookingServiceMocks) {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingBooking(liveHold), nil)

				m.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("update error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newBookingService(t)
			tt.setupMock(m)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			res, err := svc.Confirm(ctx, "booking-1", dto.ConfirmBookingRequest{PaymentRef: "pay-123"})

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, model.StatusConfirmed, res.Status)
			assert.Nil(t, res.HoldExpires)
		})
	}
}

func TestBookingService_Cancel(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(m *bookingServiceMocks)
		wantErr   bool
	}{
		{
			name: "cancel pending booking",
			setupMock: func(m *bookingServiceMocks) {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{ID: "booking-1", Status: model.StatusPending}, nil)

				m.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "cancel confirmed booking",
			setupMock: func(m *bookingServiceMocks) {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{ID: "booking-1", Status: model.StatusConfirmed}, nil)

				m.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "completed booking cannot be cancelled",
			setupMock: func(m *bookingServiceMocks) {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{ID: "booking-1", Status: model.StatusCompleted}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newBookingService(t)
			tt.setupMock(m)

			err := svc.Cancel(context.Background(), "booking-1")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_ExpireHolds(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(m *bookingServiceMocks)
		wantErr   bool
		wantCount int
	}{
		{
			name: "expires lapsed holds",
			setupMock: func(m *bookingServiceMocks) {
				expired := []model.Booking{
					{ID: "booking-1", Status: model.StatusCancelled},
					{ID: "booking-2", Status: model.StatusCancelled},
				}

				m.repo.EXPECT().
					ExpireHolds(gomock.Any(), gomock.Any()).
					Return(expired, nil)
			},
			wantCount: 2,
		},
		{
			name: "nothing to expire",
			setupMock: func(m *bookingServiceMocks) {
				m.repo.EXPECT().
					ExpireHolds(gomock.Any(), gomock.Any()).
					Return(nil, nil)
			},
			wantCount: 0,
		},
		{
			name: "repository error",
			setupMock: func(m *bookingServiceMocks) {
				m.repo.EXPECT().
					ExpireHolds(gomock.Any(), gomock.Any()).
					Return(nil, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newBookingService(t)
			tt.setupMock(m)

			count, err := svc.ExpireHolds(context.Background())

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantCount, count)
		})
	}
}

func TestBookingService_CheckInCheckOut(t *testing.T) {
	roomID := "room-1"

	t.Run("check in a confirmed booking", func(t *testing.T) {
		svc, m := newBookingService(t)

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{ID: "booking-1", RoomID: &roomID, Status: model.StatusConfirmed}, nil)

		m.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		m.roomRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		assert.NoError(t, svc.CheckIn(context.Background(), "booking-1"))
	})

	t.Run("cannot check in a pending booking", func(t *testing.T) {
		svc, m := newBookingService(t)

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{ID: "booking-1", Status: model.StatusPending}, nil)

		assert.Error(t, svc.CheckIn(context.Background(), "booking-1"))
	})

	t.Run("check out completes the booking", func(t *testing.T) {
		svc, m := newBookingService(t)

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{ID: "booking-1", RoomID: &roomID, Status: model.StatusConfirmed, CheckedIn: true}, nil)

		m.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		m.roomRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		assert.NoError(t, svc.CheckOut(context.Background(), "booking-1"))
	})

	t.Run("cannot check out before checking in", func(t *testing.T) {
		svc, m := newBookingService(t)

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{ID: "booking-1", Status: model.StatusConfirmed}, nil)

		assert.Error(t, svc.CheckOut(context.Background(), "booking-1"))
	})
}

func TestBookingService_Get(t *testing.T) {
	t.Run("cache miss falls back to repository", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		repo := bookingMocks.NewMockBooking(ctrl)
		roomRepo := roomMocks.NewMockRoom(ctrl)
		redisCache := cacheMocks.NewMockRedisCache(ctrl)
		kafkaClient := kafkaMocks.NewMockClient(ctrl)

		cfg := &config.Config{}
		cfg.Cache.TTL = 3600

		svc := service.New(repo, roomRepo, cfg, redisCache, kafkaClient, mocks.NewOtel())

		redisCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{ID: "booking-1", Status: model.StatusConfirmed}, nil)

		redisCache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := svc.Get(context.Background(), "booking-1")

		assert.NoError(t, err)
		assert.Equal(t, "booking-1", res.ID)
	})

	t.Run("not found", func(t *testing.T) {
		svc, m := newBookingService(t)

		m.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{}, nil)

		_, err := svc.Get(context.Background(), "missing")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestBookingService_TenantIsolation(t *testing.T) {
	hotelBBooking := model.Booking{
		ID:      "booking-b",
		HotelID: "hotel-b",
		Status:  model.StatusConfirmed,
	}

	frontDeskA := &permissions.Principal{
		UserID:  "user-1",
		Email:   "desk@hotel-a.test",
		Role:    permissions.RoleFrontDesk,
		HotelID: "hotel-a",
	}

	platformAdmin := &permissions.Principal{
		UserID: "user-2",
		Email:  "root@platform.test",
		Role:   permissions.RoleSuperAdmin,
	}

	t.Run("front desk cannot cancel another hotel's booking", func(t *testing.T) {
		svc, m := newBookingService(t)

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(hotelBBooking, nil)

		ctx := permissions.NewContext(context.Background(), frontDeskA)
		err := svc.Cancel(ctx, "booking-b")

		assert.Error(t, err)
		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("front desk cannot check in another hotel's booking", func(t *testing.T) {
		svc, m := newBookingService(t)

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(hotelBBooking, nil)

		ctx := permissions.NewContext(context.Background(), frontDeskA)
		err := svc.CheckIn(ctx, "booking-b")

		assert.Error(t, err)
		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("front desk cannot read another hotel's booking", func(t *testing.T) {
		svc, m := newBookingService(t)

		m.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(hotelBBooking, nil)

		ctx := permissions.NewContext(context.Background(), frontDeskA)
		_, err := svc.Get(ctx, "booking-b")

		assert.Error(t, err)
		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("front desk cancels its own hotel's booking", func(t *testing.T) {
		svc, m := newBookingService(t)

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{ID: "booking-a", HotelID: "hotel-a", Status: model.StatusPending}, nil)

		m.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		ctx := permissions.NewContext(context.Background(), frontDeskA)

		assert.NoError(t, svc.Cancel(ctx, "booking-a"))
	})

	t.Run("platform admin spans hotels", func(t *testing.T) {
		svc, m := newBookingService(t)

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(hotelBBooking, nil)

		m.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		ctx := permissions.NewContext(context.Background(), platformAdmin)

		assert.NoError(t, svc.Cancel(ctx, "booking-b"))
	})
}
