package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"innkeeper/config"
	"innkeeper/infras/kafka"
	"innkeeper/infras/otel"
	"innkeeper/internal/domains/booking/model"
	"innkeeper/internal/domains/booking/model/dto"
	"innkeeper/internal/domains/booking/repository"
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
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

const (
	hoursPerNight      = 24
	publishTimeoutSecs = 10
)

type Booking interface {
	CheckAvailability(ctx context.Context, roomID, checkIn, checkOut string) (dto.AvailabilityResponse, error)
	BookedDates(ctx context.Context, roomID string) (dto.BookedDatesResponse, error)
	Reserve(ctx context.Context, req dto.CreateReservationRequest) (dto.BookingResponse, error)
	Confirm(ctx context.Context, id string, req dto.ConfirmBookingRequest) (dto.BookingResponse, error)
	Cancel(ctx context.Context, id string) error
	CheckIn(ctx context.Context, id string) error
	CheckOut(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id string) error
	ExpireHolds(ctx context.Context) (int, error)
}

type serviceImpl struct {
	repo     repository.Booking
	roomRepo roomRepo.Room
	cfg      *config.Config
	cache    cache.RedisCache
	kafka    kafka.Client
	otel     otel.Otel
}

func New(repo repository.Booking, roomRepository roomRepo.Room, cfg *config.Config, redisCache cache.RedisCache, kafkaClient kafka.Client, otel otel.Otel) Booking {
	return &serviceImpl{
		repo:     repo,
		roomRepo: roomRepository,
		cfg:      cfg,
		cache:    redisCache,
		kafka:    kafkaClient,
		otel:     otel,
	}
}

func (s *serviceImpl) CheckAvailability(ctx context.Context, roomID, checkIn, checkOut string) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckAvailability")
	defer scope.End()
	defer scope.TraceIfError(err)

	start, err := dto.ParseStayTime(checkIn)
	if err != nil {
		return res, err
	}

	end, err := dto.ParseStayTime(checkOut)
	if err != nil {
		return res, err
	}

	if !end.After(start) {
		return res, failure.BadRequestFromString("check_out must be after check_in") // nolint:wrapcheck
	}

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	conflicts, err := s.repo.ActiveForRoom(ctx, roomID, start, end, timezone.Now())
	if err != nil {
		log.Error().Err(err).Msg("failed to check availability")

		return res, fmt.Errorf("failed to check availability: %w", err)
	}

	res.RoomID = roomID
	res.Available = len(conflicts) == 0 && room.Bookable()
	res.ConflictingBookings = conflicts

	return res, nil
}

// BookedDates returns the stay windows of bookings currently blocking the
// room. Expired pending holds are excluded even before the sweeper cancels
// them.
func (s *serviceImpl) BookedDates(ctx context.Context, roomID string) (res dto.BookedDatesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".BookedDates")
	defer scope.End()
	defer scope.TraceIfError(err)

	exist, err := s.roomRepo.Exist(ctx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check room existence")

		return res, fmt.Errorf("failed to check room existence: %w", err)
	}

	if !exist {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldRoomID,
				Operator: gDto.FilterOperatorEq,
				Value:    roomID,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorIn,
				Value:    []string{model.StatusPending, model.StatusConfirmed},
				Table:    model.TableName,
			},
		},
	}

	params := gDto.QueryParams{SortBy: model.FieldCheckIn, SortDir: "ASC"}

	bookings, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings for room")

		return res, fmt.Errorf("failed to get bookings for room: %w", err)
	}

	now := timezone.Now()
	res.RoomID = roomID
	res.Dates = make([]dto.StayRange, 0, len(bookings))

	for i := range bookings {
		b := &bookings[i]
		if !b.ActiveAt(now) {
			continue
		}

		res.Dates = append(res.Dates, dto.StayRange{CheckIn: b.CheckIn, CheckOut: b.CheckOut})
	}

	return res, nil
}

// Reserve places a time-boxed hold on the room. The conflict check and the
// insert run in one transaction, so two concurrent requests for an
// overlapping window cannot both succeed.
func (s *serviceImpl) Reserve(ctx context.Context, req dto.CreateReservationRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reserve")
	defer scope.End()
	defer scope.TraceIfError(err)

	checkIn, checkOut, err := req.StayWindow()
	if err != nil {
		return res, err
	}

	now := timezone.Now()

	if !checkOut.After(now) {
		return res, failure.BadRequestFromString("stay window is entirely in the past") // nolint:wrapcheck
	}

	maxStay := time.Duration(s.cfg.Booking.MaxStayNights) * hoursPerNight * time.Hour
	if maxStay > 0 && checkOut.Sub(checkIn) > maxStay {
		return res, failure.BadRequestFromString(fmt.Sprintf("stay cannot exceed %d nights", s.cfg.Booking.MaxStayNights)) // nolint:wrapcheck
	}

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty || room.HotelID != req.HotelID {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	if !room.Bookable() {
		return res, failure.Conflict("room is not accepting reservations") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if user == constant.Empty {
		user = req.GuestEmail
	}

	holdFor := time.Duration(s.cfg.Booking.HoldSeconds) * time.Second
	booking := req.ToModel(user, checkIn, checkOut, holdFor, now)

	conflicts, err := s.repo.Reserve(ctx, booking, now)
	if errors.Is(err, repository.ErrRoomMissing) {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to reserve booking")

		return res, fmt.Errorf("failed to reserve booking: %w", err)
	}

	if conflicts != nil {
		return res, failure.ConflictWithDetails("room is not available for the requested dates", conflicts) // nolint:wrapcheck
	}

	s.publishEvent(ctx, dto.EventBookingHeld, booking)
	s.invalidateListCaches(ctx)

	res.FromModel(booking)

	return res, nil
}

// Confirm promotes a pending hold to a confirmed booking. Any other current
// status, an earlier confirmation included, is a state conflict; an expired
// hold cannot be confirmed either.
func (s *serviceImpl) Confirm(ctx context.Context, id string, req dto.ConfirmBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Confirm")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.getByID(ctx, id)
	if err != nil {
		return res, err
	}

	if booking.Status == model.StatusConfirmed {
		return res, failure.Conflict("booking is already confirmed") // nolint:wrapcheck
	}

	if booking.Status != model.StatusPending {
		return res, failure.Conflict(fmt.Sprintf("booking is %s and cannot be confirmed", booking.Status)) // nolint:wrapcheck
	}

	now := timezone.Now()
	if booking.HoldExpired(now) {
		return res, failure.Conflict("hold has expired") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	fields := map[string]any{
		model.FieldStatus:        model.StatusConfirmed,
		model.FieldHoldExpires:   nil,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: user,
	}
	if req.PaymentRef != constant.Empty {
		fields[model.FieldPaymentRef] = req.PaymentRef
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to confirm booking")

		return res, fmt.Errorf("failed to confirm booking: %w", err)
	}

	booking.Status = model.StatusConfirmed
	booking.HoldExpires = nil

	if req.PaymentRef != constant.Empty {
		booking.PaymentRef = &req.PaymentRef
	}

	s.publishEvent(ctx, dto.EventBookingConfirmed, booking)
	s.invalidateBookingCaches(ctx, id)

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.getByID(ctx, id)
	if err != nil {
		return err
	}

	if booking.Status != model.StatusPending && booking.Status != model.StatusConfirmed {
		return failure.Conflict(fmt.Sprintf("booking is %s and cannot be cancelled", booking.Status)) // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	fields := map[string]any{
		model.FieldStatus:        model.StatusCancelled,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to cancel booking")

		return fmt.Errorf("failed to cancel booking: %w", err)
	}

	booking.Status = model.StatusCancelled
	s.publishEvent(ctx, dto.EventBookingCancelled, booking)
	s.invalidateBookingCaches(ctx, id)

	return nil
}

func (s *serviceImpl) CheckIn(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckIn")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.getByID(ctx, id)
	if err != nil {
		return err
	}

	if booking.Status != model.StatusConfirmed || booking.CheckedIn {
		return failure.Conflict("booking cannot be checked in") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	now := timezone.Now()

	fields := map[string]any{
		model.FieldCheckedIn:     true,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to check in booking")

		return fmt.Errorf("failed to check in booking: %w", err)
	}

	if booking.RoomID != nil {
		s.setRoomStatus(ctx, *booking.RoomID, roomModel.StatusOccupied, user, now)
	}

	booking.CheckedIn = true
	s.publishEvent(ctx, dto.EventBookingCheckedIn, booking)
	s.invalidateBookingCaches(ctx, id)

	return nil
}

func (s *serviceImpl) CheckOut(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckOut")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.getByID(ctx, id)
	if err != nil {
		return err
	}

	if !booking.CheckedIn || booking.CheckedOut {
		return failure.Conflict("booking cannot be checked out") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	now := timezone.Now()

	fields := map[string]any{
		model.FieldCheckedOut:    true,
		model.FieldStatus:        model.StatusCompleted,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to check out booking")

		return fmt.Errorf("failed to check out booking: %w", err)
	}

	if booking.RoomID != nil {
		s.setRoomStatus(ctx, *booking.RoomID, roomModel.StatusCleaning, user, now)
	}

	booking.CheckedOut = true
	booking.Status = model.StatusCompleted
	s.publishEvent(ctx, dto.EventBookingCompleted, booking)
	s.invalidateBookingCaches(ctx, id)

	return nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		if err = permissions.EnsureTenant(ctx, res.HotelID); err != nil {
			return dto.BookingResponse{}, err // nolint:wrapcheck
		}

		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.getByID(ctx, id)
	if err != nil {
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

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
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
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
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

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateBookingRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	booking, err := s.getByID(ctx, id)
	if err != nil {
		return err
	}

	if booking.Status == model.StatusCancelled || booking.Status == model.StatusCompleted {
		return failure.Conflict(fmt.Sprintf("booking is %s and cannot be modified", booking.Status)) // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	updatedFields := shared.TransformFields(req, user)

	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update booking")

		return fmt.Errorf("failed to update booking: %w", err)
	}

	s.invalidateBookingCaches(ctx, id)

	return nil
}

// ExpireHolds sweeps lapsed holds. Safe to run concurrently and repeatedly;
// already-cancelled holds are skipped by the underlying statement.
func (s *serviceImpl) ExpireHolds(ctx context.Context) (count int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ExpireHolds")
	defer scope.End()
	defer scope.TraceIfError(err)

	expired, err := s.repo.ExpireHolds(ctx, timezone.Now())
	if err != nil {
		log.Error().Err(err).Msg("failed to expire booking holds")

		return 0, fmt.Errorf("failed to expire booking holds: %w", err)
	}

	if len(expired) == 0 {
		return 0, nil
	}

	for i := range expired {
		s.publishEvent(ctx, dto.EventBookingExpired, expired[i])
	}

	s.invalidateListCaches(ctx)

	log.Info().Int("count", len(expired)).Msg("expired booking holds")

	return len(expired), nil
}

// getByID loads the booking and rejects principals affiliated with another
// hotel. Calls without a principal (public and internal routes) pass.
func (s *serviceImpl) getByID(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if err = permissions.EnsureTenant(ctx, booking.HotelID); err != nil {
		return model.Booking{}, err // nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) setRoomStatus(ctx context.Context, roomID, status, user string, now time.Time) {
	fields := map[string]any{
		roomModel.FieldStatus:    status,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: user,
	}

	if err := s.roomRepo.Update(ctx, fields, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName)); err != nil {
		log.Error().Err(err).Str("room_id", roomID).Msg("failed to update room status")
	}
}

func (s *serviceImpl) invalidateListCaches(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()
}

func (s *serviceImpl) invalidateBookingCaches(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()
}

// publishEvent emits a booking lifecycle event. Delivery is best effort; a
// broker outage must not fail the request.
func (s *serviceImpl) publishEvent(ctx context.Context, eventType string, booking model.Booking) {
	roomID := constant.Empty
	if booking.RoomID != nil {
		roomID = *booking.RoomID
	}

	event := dto.BookingEvent{
		EventType:  eventType,
		BookingID:  booking.ID,
		HotelID:    booking.HotelID,
		RoomID:     roomID,
		Status:     booking.Status,
		OccurredAt: timezone.Format(timezone.Now(), constant.DateFormat),
	}

	go func() {
		c, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeoutSecs*time.Second)
		defer cancel()

		message := kafka.Message{Key: booking.ID, Value: event}
		if err := s.kafka.SendMessages(c, constant.KafkaTopicBookingEvents, message); err != nil {
			log.Error().Err(err).Str("event_type", eventType).Msg("failed to publish booking event")
		}
	}()
}
