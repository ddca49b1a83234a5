package dto

import (
	"time"

	"github.com/google/uuid"

	"innkeeper/internal/domains/booking/model"
	"innkeeper/shared"
	"innkeeper/shared/constant"
	gDto "innkeeper/shared/dto"
	"innkeeper/shared/failure"
	gModel "innkeeper/shared/model"
	"innkeeper/shared/timezone"
)

// ParseStayTime accepts either a full RFC3339 timestamp or a bare date.
// Bare dates are interpreted at midnight in the application timezone.
func ParseStayTime(value string) (time.Time, error) {
	if t, err := time.Parse(constant.DateFormat, value); err == nil {
		return t, nil
	}

	t, err := timezone.Parse(constant.DateOnlyFormat, value)
	if err != nil {
		return time.Time{}, failure.BadRequestFromString("invalid time format, expected RFC3339 or YYYY-MM-DD") // nolint:wrapcheck
	}

	return t, nil
}

type CreateReservationRequest struct {
	HotelID    string `json:"hotel_id"    validate:"required,uuid4"`
	RoomID     string `json:"room_id"     validate:"required,uuid4"`
	GuestName  string `json:"guest_name"  validate:"required,max=255"`
	GuestEmail string `json:"guest_email" validate:"required,email,max=255"`
	GuestPhone string `json:"guest_phone" validate:"omitempty,max=32"`
	CheckIn    string `json:"check_in"    validate:"required"`
	CheckOut   string `json:"check_out"   validate:"required"`
}

// StayWindow parses and orders the requested interval. The window is
// half-open, so CheckOut must be strictly after CheckIn.
func (c *CreateReservationRequest) StayWindow() (checkIn, checkOut time.Time, err error) {
	checkIn, err = ParseStayTime(c.CheckIn)
	if err != nil {
		return checkIn, checkOut, err
	}

	checkOut, err = ParseStayTime(c.CheckOut)
	if err != nil {
		return checkIn, checkOut, err
	}

	if !checkOut.After(checkIn) {
		return checkIn, checkOut, failure.BadRequestFromString("check_out must be after check_in") // nolint:wrapcheck
	}

	return checkIn, checkOut, nil
}

func (c *CreateReservationRequest) ToModel(user string, checkIn, checkOut time.Time, holdFor time.Duration, now time.Time) model.Booking {
	roomID := c.RoomID
	holdExpires := now.Add(holdFor)

	return model.Booking{
		ID:          uuid.NewString(),
		HotelID:     c.HotelID,
		RoomID:      &roomID,
		GuestName:   c.GuestName,
		GuestEmail:  c.GuestEmail,
		GuestPhone:  c.GuestPhone,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		Status:      model.StatusPending,
		HoldExpires: &holdExpires,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type ConfirmBookingRequest struct {
	PaymentRef string `json:"payment_ref" validate:"omitempty,max=255"`
}

type UpdateBookingRequest struct {
	GuestName  string `db:"guest_name"  json:"guest_name"  validate:"omitempty,max=255"`
	GuestEmail string `db:"guest_email" json:"guest_email" validate:"omitempty,email,max=255"`
	GuestPhone string `db:"guest_phone" json:"guest_phone" validate:"omitempty,max=32"`
}

type AvailabilityResponse struct {
	RoomID              string   `json:"room_id"`
	Available           bool     `json:"available"`
	ConflictingBookings []string `json:"conflicting_bookings,omitempty"`
}

type StayRange struct {
	CheckIn  time.Time `json:"check_in"`
	CheckOut time.Time `json:"check_out"`
}

// BookedDatesResponse lists the stay windows currently blocking a room, for
// rendering unavailable dates in a booking calendar.
type BookedDatesResponse struct {
	RoomID string      `json:"room_id"`
	Dates  []StayRange `json:"dates"`
}

type BookingResponse struct {
	ID          string  `json:"id"`
	HotelID     string  `json:"hotel_id"`
	RoomID      *string `json:"room_id"`
	GuestName   string  `json:"guest_name"`
	GuestEmail  string  `json:"guest_email"`
	GuestPhone  string  `json:"guest_phone,omitempty"`
	CheckIn     string  `json:"check_in"`
	CheckOut    string  `json:"check_out"`
	Status      string  `json:"status"`
	HoldExpires *string `json:"hold_expires,omitempty"`
	PaymentRef  *string `json:"payment_ref,omitempty"`
	CheckedIn   bool    `json:"checked_in"`
	CheckedOut  bool    `json:"checked_out"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(mod model.Booking) {
	r.ID = mod.ID
	r.HotelID = mod.HotelID
	r.RoomID = mod.RoomID
	r.GuestName = mod.GuestName
	r.GuestEmail = mod.GuestEmail
	r.GuestPhone = mod.GuestPhone
	r.CheckIn = timezone.Format(mod.CheckIn, constant.DateFormat)
	r.CheckOut = timezone.Format(mod.CheckOut, constant.DateFormat)
	r.Status = mod.Status
	r.PaymentRef = mod.PaymentRef
	r.CheckedIn = mod.CheckedIn
	r.CheckedOut = mod.CheckedOut

	if mod.HoldExpires != nil {
		expires := timezone.Format(*mod.HoldExpires, constant.DateFormat)
		r.HoldExpires = &expires
	}

	r.Metadata.FromModel(mod.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

// BookingEvent is the payload published to the booking events topic whenever
// a booking changes state.
type BookingEvent struct {
	EventType  string `json:"event_type"`
	BookingID  string `json:"booking_id"`
	HotelID    string `json:"hotel_id"`
	RoomID     string `json:"room_id,omitempty"`
	Status     string `json:"status"`
	OccurredAt string `json:"occurred_at"`
}

const (
	EventBookingHeld      = "booking.held"
	EventBookingConfirmed = "booking.confirmed"
	EventBookingCancelled = "booking.cancelled"
	EventBookingExpired   = "booking.expired"
	EventBookingCheckedIn = "booking.checked_in"
	EventBookingCompleted = "booking.completed"
)
