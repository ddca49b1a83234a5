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
	"innkeeper/infras/otel/mocks"
	bookingMocks "innkeeper/internal/domains/booking/mocks"
	bookingModel "innkeeper/internal/domains/booking/model"
	bookingDto "innkeeper/internal/domains/booking/model/dto"
	bookingSvcMocks "innkeeper/internal/domains/booking/service/mocks"
	hotelMocks "innkeeper/internal/domains/hotel/mocks"
	hotelModel "innkeeper/internal/domains/hotel/model"
	paymentMocks "innkeeper/internal/domains/payment/mocks"
	"innkeeper/internal/domains/payment/model"
	"innkeeper/internal/domains/payment/model/dto"
	"innkeeper/internal/domains/payment/provider"
	providerMocks "innkeeper/internal/domains/payment/provider/mocks"
	"innkeeper/internal/domains/payment/service"
	roomMocks "innkeeper/internal/domains/room/mocks"
	roomModel "innkeeper/internal/domains/room/model"
	cacheMocks "innkeeper/shared/cache/mocks"
	"innkeeper/shared/constant"
	"innkeeper/shared/failure"
	"innkeeper/shared/timezone"
)

type paymentServiceMocks struct {
	repo        *paymentMocks.MockPayment
	bookingRepo *bookingMocks.MockBooking
	bookingSvc  *bookingSvcMocks.MockBooking
	roomRepo    *roomMocks.MockRoom
	hotelRepo   *hotelMocks.MockHotel
	provider    *providerMocks.MockClient
	cache       *cacheMocks.MockRedisCache
}

func newPaymentService(t *testing.T) (service.Payment, *paymentServiceMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)

	m := &paymentServiceMocks{
		repo:        paymentMocks.NewMockPayment(ctrl),
		bookingRepo: bookingMocks.NewMockBooking(ctrl),
		bookingSvc:  bookingSvcMocks.NewMockBooking(ctrl),
		roomRepo:    roomMocks.NewMockRoom(ctrl),
		hotelRepo:   hotelMocks.NewMockHotel(ctrl),
		provider:    providerMocks.NewMockClient(ctrl),
		cache:       cacheMocks.NewMockRedisCache(ctrl),
	}

	m.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.External.Payment.CallbackURL = "https://innkeeper.test/v1/payments/callback"

	registry := provider.Registry{
		model.ProviderPaystack: m.provider,
	}

	svc := service.New(m.repo, m.bookingRepo, m.bookingSvc, m.roomRepo, m.hotelRepo, registry, cfg, m.cache, mocks.NewOtel())

	return svc, m
}

func pendingBooking(holdExpires time.Time) bookingModel.Booking {
	roomID := "room-1"
	checkIn := timezone.Now().Add(48 * time.Hour).Truncate(24 * time.Hour)

	return bookingModel.Booking{
		ID:          "booking-1",
		HotelID:     "hotel-1",
		RoomID:      &roomID,
		GuestName:   "Ada Guest",
		GuestEmail:  "ada@example.test",
		CheckIn:     checkIn,
		CheckOut:    checkIn.Add(3 * 24 * time.Hour),
		Status:      bookingModel.StatusPending,
		HoldExpires: &holdExpires,
	}
}

func TestPaymentService_Initiate(t *testing.T) {
	liveHold := timezone.Now().Add(30 * time.Minute)

	tests := []struct {
		name      string
		req       dto.InitiatePaymentRequest
		setupMock func(m *paymentServiceMocks)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful initiation charges price times nights",
			req:  dto.InitiatePaymentRequest{BookingID: "booking-1", Provider: model.ProviderPaystack},
			setupMock: func(m *paymentServiceMocks) {
				m.bookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingBooking(liveHold), nil)

				m.roomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(roomModel.Room{ID: "room-1", PricePerNight: 15000}, nil)

				m.hotelRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(hotelModel.Hotel{ID: "hotel-1", Currency: "NGN"}, nil)

				m.provider.EXPECT().
					Initialize(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, req provider.InitRequest) (provider.InitResult, error) {
						assert.Equal(t, int64(45000), req.Amount)
						assert.Equal(t, "NGN", req.Currency)
						assert.Equal(t, "ada@example.test", req.Email)

						return provider.InitResult{
							Reference:   req.Reference,
							CheckoutURL: "https://checkout.paystack.test/abc",
						}, nil
					})

				m.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "booking not found",
			req:  dto.InitiatePaymentRequest{BookingID: "missing", Provider: model.ProviderPaystack},
			setupMock: func(m *paymentServiceMocks) {
				m.bookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(bookingModel.Booking{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "booking already confirmed",
			req:  dto.InitiatePaymentRequest{BookingID: "booking-1", Provider: model.ProviderPaystack},
			setupMock: func(m *paymentServiceMocks) {
				booking := pendingBooking(liveHold)
				booking.Status = bookingModel.StatusConfirmed
				booking.HoldExpires = nil

				m.bookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booking, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "hold already expired",
			req:  dto.InitiatePaymentRequest{BookingID: "booking-1", Provider: model.ProviderPaystack},
			setupMock: func(m *paymentServiceMocks) {
				m.bookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingBooking(timezone.Now().Add(-time.Minute)), nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "provider rejects transaction",
			req:  dto.InitiatePaymentRequest{BookingID: "booking-1", Provider: model.ProviderPaystack},
			setupMock: func(m *paymentServiceMocks) {
				m.bookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingBooking(liveHold), nil)

				m.roomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(roomModel.Room{ID: "room-1", PricePerNight: 15000}, nil)

				m.hotelRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(hotelModel.Hotel{ID: "hotel-1", Currency: "NGN"}, nil)

				m.provider.EXPECT().
					Initialize(gomock.Any(), gomock.Any()).
					Return(provider.InitResult{}, errors.New("provider unavailable"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newPaymentService(t)
			tt.setupMock(m)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			res, err := svc.Initiate(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)
			assert.NotEmpty(t, res.PaymentID)
			assert.NotEmpty(t, res.Reference)
			assert.Equal(t, "https://checkout.paystack.test/abc", res.CheckoutURL)
		})
	}
}

func TestPaymentService_HandleCallback(t *testing.T) {
	initiated := model.Payment{
		ID:        "payment-1",
		HotelID:   "hotel-1",
		BookingID: "booking-1",
		Provider:  model.ProviderPaystack,
		Reference: "ref-1",
		Amount:    45000,
		Currency:  "NGN",
		Status:    model.StatusInitiated,
	}

	t.Run("successful verification confirms the booking", func(t *testing.T) {
		svc, m := newPaymentService(t)

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(initiated, nil)

		m.provider.EXPECT().
			Verify(gomock.Any(), "ref-1").
			Return(provider.VerifyResult{Reference: "ref-1", Succeeded: true, Amount: 45000, Currency: "NGN"}, nil)

		m.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		m.bookingSvc.EXPECT().
			Confirm(gomock.Any(), "booking-1", bookingDto.ConfirmBookingRequest{PaymentRef: "ref-1"}).
			Return(bookingDto.BookingResponse{ID: "booking-1", Status: bookingModel.StatusConfirmed}, nil)

		res, err := svc.HandleCallback(context.Background(), model.ProviderPaystack, dto.CallbackRequest{Reference: "ref-1"})

		assert.NoError(t, err)
		assert.Equal(t, model.StatusSucceeded, res.Status)
	})

	t.Run("failed verification leaves booking pending", func(t *testing.T) {
		svc, m := newPaymentService(t)

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(initiated, nil)

		m.provider.EXPECT().
			Verify(gomock.Any(), "ref-1").
			Return(provider.VerifyResult{Reference: "ref-1", Succeeded: false}, nil)

		m.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		res, err := svc.HandleCallback(context.Background(), model.ProviderPaystack, dto.CallbackRequest{Reference: "ref-1"})

		assert.NoError(t, err)
		assert.Equal(t, model.StatusFailed, res.Status)
	})

	t.Run("settled payment is returned without reverification", func(t *testing.T) {
		svc, m := newPaymentService(t)

		settled := initiated
		settled.Status = model.StatusSucceeded

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(settled, nil)

		res, err := svc.HandleCallback(context.Background(), model.ProviderPaystack, dto.CallbackRequest{Reference: "ref-1"})

		assert.NoError(t, err)
		assert.Equal(t, model.StatusSucceeded, res.Status)
	})

	t.Run("unknown reference", func(t *testing.T) {
		svc, m := newPaymentService(t)

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Payment{}, nil)

		_, err := svc.HandleCallback(context.Background(), model.ProviderPaystack, dto.CallbackRequest{Reference: "nope"})

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("confirm failure does not fail the callback", func(t *testing.T) {
		svc, m := newPaymentService(t)

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(initiated, nil)

		m.provider.EXPECT().
			Verify(gomock.Any(), "ref-1").
			Return(provider.VerifyResult{Reference: "ref-1", Succeeded: true}, nil)

		m.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		m.bookingSvc.EXPECT().
			Confirm(gomock.Any(), "booking-1", gomock.Any()).
			Return(bookingDto.BookingResponse{}, failure.Conflict("hold has expired"))

		res, err := svc.HandleCallback(context.Background(), model.ProviderPaystack, dto.CallbackRequest{Reference: "ref-1"})

		assert.NoError(t, err)
		assert.Equal(t, model.StatusSucceeded, res.Status)
	})
}
