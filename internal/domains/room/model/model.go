package model

import (
	"github.com/lib/pq"

	"innkeeper/shared/model"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID            = "id"
	FieldHotelID       = "hotel_id"
	FieldNumber        = "number"
	FieldType          = "type"
	FieldStatus        = "status"
	FieldPricePerNight = "price_per_night"
	FieldMaxGuests     = "max_guests"
	FieldImage         = "image"
)

const (
	StatusAvailable    = "available"
	StatusOccupied     = "occupied"
	StatusCleaning     = "cleaning"
	StatusMaintenance  = "maintenance"
	StatusOutOfService = "out_of_service"
)

const (
	TypeStandard  = "standard"
	TypeDeluxe    = "deluxe"
	TypeSuite     = "suite"
	TypeExecutive = "executive"
)

// Room belongs to exactly one hotel. PricePerNight is stored in the smallest
// currency unit.
type Room struct {
	ID            string         `db:"id"`
	HotelID       string         `db:"hotel_id"`
	Number        string         `db:"number"`
	Type          string         `db:"type"`
	Description   string         `db:"description"`
	Status        string         `db:"status"`
	PricePerNight int64          `db:"price_per_night"`
	MaxGuests     int            `db:"max_guests"`
	Amenities     pq.StringArray `db:"amenities"`
	Image         string         `db:"image"`
	model.Metadata
}

// Bookable reports whether the room can accept new reservations. Occupied and
// cleaning rooms stay bookable for future dates; maintenance and
// out-of-service rooms block.
func (r *Room) Bookable() bool {
	return r.Status != StatusMaintenance && r.Status != StatusOutOfService
}
