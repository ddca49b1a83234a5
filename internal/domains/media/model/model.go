package model

import "innkeeper/shared/model"

const (
	TableName  = "media"
	EntityName = "media"

	FieldID      = "id"
	FieldHotelID = "hotel_id"
	FieldRoomID  = "room_id"
	FieldURL     = "url"
	FieldCaption = "caption"
)

// Media is one uploaded asset. RoomID is nil for hotel-level media such as
// lobby photos.
type Media struct {
	ID      string  `db:"id"`
	HotelID string  `db:"hotel_id"`
	RoomID  *string `db:"room_id"`
	URL     string  `db:"url"`
	Caption string  `db:"caption"`
	model.Metadata
}
