package model

import (
	"time"

	"innkeeper/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID          = "id"
	FieldHotelID     = "hotel_id"
	FieldRoomID      = "room_id"
	FieldGuestName   = "guest_name"
	FieldGuestEmail  = "guest_email"
	FieldGuestPhone  = "guest_phone"
	FieldCheckIn     = "check_in"
	FieldCheckOut    = "check_out"
	FieldStatus      = "status"
	FieldHoldExpires = "hold_expires"
	FieldPaymentRef  = "payment_ref"
	FieldCheckedIn   = "checked_in"
	FieldCheckedOut  = "checked_out"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// Booking is a reservation or a time-boxed hold on a room. Bookings are never
// physically deleted; their lifecycle runs through Status.
type Booking struct {
	ID          string     `db:"id"`
	HotelID     string     `db:"hotel_id"`
	RoomID      *string    `db:"room_id"`
	GuestName   string     `db:"guest_name"`
	GuestEmail  string     `db:"guest_email"`
	GuestPhone  string     `db:"guest_phone"`
	CheckIn     time.Time  `db:"check_in"`
	CheckOut    time.Time  `db:"check_out"`
	Status      string     `db:"status"`
	HoldExpires *time.Time `db:"hold_expires"`
	PaymentRef  *string    `db:"payment_ref"`
	CheckedIn   bool       `db:"checked_in"`
	CheckedOut  bool       `db:"checked_out"`
	model.Metadata
}

// HoldExpired reports whether a pending hold has lapsed at the given instant.
// Bookings without a hold never expire.
func (b *Booking) HoldExpired(now time.Time) bool {
	return b.HoldExpires != nil && !b.HoldExpires.After(now)
}

// ActiveAt reports whether the booking blocks its room at the given instant:
// confirmed bookings always do, pending ones only while their hold lasts.
func (b *Booking) ActiveAt(now time.Time) bool {
	switch b.Status {
	case StatusConfirmed:
		return true
	case StatusPending:
		return !b.HoldExpired(now)
	default:
		return false
	}
}

// Overlaps applies half-open interval semantics to [aStart, aEnd) and
// [bStart, bEnd): back-to-back intervals sharing an endpoint do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// Conflicts returns the IDs of bookings that are active at now and whose stay
// overlaps [start, end). The input is expected to be scoped to a single room.
func Conflicts(bookings []Booking, start, end, now time.Time) []string {
	var ids []string

	for i := range bookings {
		b := &bookings[i]
		if !b.ActiveAt(now) {
			continue
		}

		if Overlaps(b.CheckIn, b.CheckOut, start, end) {
			ids = append(ids, b.ID)
		}
	}

	return ids
}
