package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"innkeeper/config"
	"innkeeper/infras/otel"
	bookingModel "innkeeper/internal/domains/booking/model"
	bookingDto "innkeeper/internal/domains/booking/model/dto"
	bookingRepo "innkeeper/internal/domains/booking/repository"
	bookingService "innkeeper/internal/domains/booking/service"
	hotelModel "innkeeper/internal/domains/hotel/model"
	hotelRepo "innkeeper/internal/domains/hotel/repository"
	"innkeeper/internal/domains/payment/model"
	"innkeeper/internal/domains/payment/model/dto"
	"innkeeper/internal/domains/payment/provider"
	"innkeeper/internal/domains/payment/repository"
	roomModel "innkeeper/internal/domains/room/model"
	roomRepo "innkeeper/internal/domains/room/repository"
	"innkeeper/permissions"
	"innkeeper/shared"
	"innkeeper/shared/cache"
	"innkeeper/shared/constant"
	gDto "innkeeper/shared/dto"
	"innkeeper/shared/failure"
	"innkeeper/shared/timezone"
)

const (
	cacheGetPayment    = "payment:get"
	cacheGetAllPayment = "payment:gets"
	cacheCountPayment  = "payment:count"

	hoursPerNight   = 24
	defaultCurrency = "USD"
)

type Payment interface {
	Initiate(ctx context.Context, req dto.InitiatePaymentRequest) (dto.InitiatePaymentResponse, error)
	HandleCallback(ctx context.Context, providerName string, req dto.CallbackRequest) (dto.PaymentResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetPaymentsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.PaymentResponse, error)
}

type serviceImpl struct {
	repo        repository.Payment
	bookingRepo bookingRepo.Booking
	bookingSvc  bookingService.Booking
	roomRepo    roomRepo.Room
	hotelRepo   hotelRepo.Hotel
	providers   provider.Registry
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(
	repo repository.Payment,
	bookingRepository bookingRepo.Booking,
	bookingSvc bookingService.Booking,
	roomRepository roomRepo.Room,
	hotelRepository hotelRepo.Hotel,
	providers provider.Registry,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Payment {
	return &serviceImpl{
		repo:        repo,
		bookingRepo: bookingRepository,
		bookingSvc:  bookingSvc,
		roomRepo:    roomRepository,
		hotelRepo:   hotelRepository,
		providers:   providers,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

func (s *serviceImpl) Initiate(ctx context.Context, req dto.InitiatePaymentRequest) (res dto.InitiatePaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Initiate")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	now := timezone.Now()

	booking, err := s.bookingRepo.Get(ctx, shared.FilterByID(req.BookingID, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == "" {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if booking.Status != bookingModel.StatusPending {
		return res, failure.Conflict("booking is not awaiting payment") // nolint:wrapcheck
	}

	if booking.HoldExpired(now) {
		return res, failure.Conflict("hold has expired") // nolint:wrapcheck
	}

	if booking.RoomID == nil {
		return res, failure.Conflict("booking has no room assigned") // nolint:wrapcheck
	}

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(*booking.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	nights := int64(booking.CheckOut.Sub(booking.CheckIn) / (hoursPerNight * time.Hour))
	amount := room.PricePerNight * nights

	currency := defaultCurrency

	hotel, err := s.hotelRepo.Get(ctx, shared.FilterByID(booking.HotelID, hotelModel.FieldID, hotelModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get hotel")

		return res, fmt.Errorf("failed to get hotel: %w", err)
	}

	if hotel.Currency != "" {
		currency = hotel.Currency
	}

	client, err := s.providers.For(req.Provider)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	reference := uuid.NewString()

	initResult, err := client.Initialize(ctx, provider.InitRequest{
		Reference:   reference,
		Amount:      amount,
		Currency:    currency,
		Email:       booking.GuestEmail,
		CallbackURL: s.cfg.External.Payment.CallbackURL,
	})
	if err != nil {
		log.Error().Err(err).Str("provider", req.Provider).Msg("failed to initialize payment")

		return res, fmt.Errorf("failed to initialize payment: %w", err)
	}

	payment := req.ToModel(user, booking.HotelID, initResult.Reference, amount, currency)

	if err = s.repo.Insert(ctx, payment); err != nil {
		log.Error().Err(err).Msg("failed to create payment")

		return res, fmt.Errorf("failed to create payment: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllPayment)
		shared.InvalidateCaches(c, s.cache, cacheCountPayment)
	}()

	res.PaymentID = payment.ID
	res.Reference = payment.Reference
	res.CheckoutURL = initResult.CheckoutURL

	return res, nil
}

func (s *serviceImpl) HandleCallback(ctx context.Context, providerName string, req dto.CallbackRequest) (res dto.PaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".HandleCallback")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldReference,
				Operator: gDto.FilterOperatorEq,
				Value:    req.Reference,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldProvider,
				Operator: gDto.FilterOperatorEq,
				Value:    providerName,
				Table:    model.TableName,
			},
		},
	}

	payment, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get payment")

		return res, fmt.Errorf("failed to get payment: %w", err)
	}

	if payment.ID == "" {
		return res, failure.NotFound("payment not found") // nolint:wrapcheck
	}

	// Providers retry callbacks. A settled payment is returned as-is.
	if payment.Settled() {
		res.FromModel(payment)

		return res, nil
	}

	client, err := s.providers.For(providerName)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	verification, err := client.Verify(ctx, payment.Reference)
	if err != nil {
		log.Error().Err(err).Str("provider", providerName).Msg("failed to verify payment")

		return res, fmt.Errorf("failed to verify payment: %w", err)
	}

	status := model.StatusFailed
	if verification.Succeeded {
		status = model.StatusSucceeded
	}

	fields := map[string]any{
		model.FieldStatus: status,
		"modified_by":     constant.ContextSystem,
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(payment.ID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update payment")

		return res, fmt.Errorf("failed to update payment: %w", err)
	}

	payment.Status = status

	if verification.Succeeded {
		// The charge already went through. A confirm failure here (hold raced
		// to expiry, or a concurrent callback confirmed first) is surfaced in
		// logs for manual follow-up, not returned to the provider.
		if _, err := s.bookingSvc.Confirm(ctx, payment.BookingID, bookingDto.ConfirmBookingRequest{PaymentRef: payment.Reference}); err != nil {
			log.Warn().Err(err).
				Str("booking_id", payment.BookingID).
				Str("reference", payment.Reference).
				Msg("payment succeeded but booking confirmation failed")
		}
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetPayment, payment.ID)); err != nil {
			log.Error().Err(err).Msg("failed to delete payment from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllPayment)
		shared.InvalidateCaches(c, s.cache, cacheCountPayment)
	}()

	res.FromModel(payment)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetPaymentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllPayment, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for payments")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count payments")

		return res, fmt.Errorf("failed to count payments: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get payments")

		return res, fmt.Errorf("failed to get payments: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save payments to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountPayment, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for payment count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count payments")

		return res, fmt.Errorf("failed to count payments: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save payment count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.PaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetPayment, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		if err = permissions.EnsureTenant(ctx, res.HotelID); err != nil {
			return dto.PaymentResponse{}, err // nolint:wrapcheck
		}

		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for payment")

		return res, nil
	}

	payment, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get payment")

		return res, fmt.Errorf("failed to get payment: %w", err)
	}

	if payment.ID == "" {
		return res, failure.NotFound("payment not found") // nolint:wrapcheck
	}

	if err = permissions.EnsureTenant(ctx, payment.HotelID); err != nil {
		return res, err // nolint:wrapcheck
	}

	res.FromModel(payment)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save payment to cache")
		}
	}()

	return res, nil
}
