package dto

import (
	"mime/multipart"

	"github.com/google/uuid"

	"innkeeper/internal/domains/room/model"
	"innkeeper/shared"
	gDto "innkeeper/shared/dto"
	gModel "innkeeper/shared/model"
	"innkeeper/shared/timezone"
)

type CreateRoomRequest struct {
	HotelID       string                `json:"hotel_id"        validate:"required,uuid4"`
	Number        string                `json:"number"          validate:"required,max=20"`
	Type          string                `json:"type"            validate:"required,oneof=standard deluxe suite executive"`
	Description   string                `json:"description"     validate:"omitempty,max=1000"`
	PricePerNight int64                 `json:"price_per_night" validate:"required,min=0"`
	MaxGuests     int                   `json:"max_guests"      validate:"omitempty,min=1"`
	Amenities     []string              `json:"amenities"       validate:"omitempty,dive,max=50"`
	Image         *multipart.FileHeader `json:"image"           validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile     multipart.File        `json:"-"`
}

func (c *CreateRoomRequest) ToModel(user string, imageURL string) model.Room {
	maxGuests := c.MaxGuests
	if maxGuests == 0 {
		maxGuests = 2
	}

	return model.Room{
		ID:            uuid.NewString(),
		HotelID:       c.HotelID,
		Number:        c.Number,
		Type:          c.Type,
		Description:   c.Description,
		Status:        model.StatusAvailable,
		PricePerNight: c.PricePerNight,
		MaxGuests:     maxGuests,
		Amenities:     c.Amenities,
		Image:         imageURL,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateRoomRequest struct {
	Number        string                `db:"number"          json:"number"          validate:"omitempty,max=20"`
	Type          string                `db:"type"            json:"type"            validate:"omitempty,oneof=standard deluxe suite executive"`
	Description   string                `db:"description"     json:"description"     validate:"omitempty,max=1000"`
	PricePerNight *int64                `db:"price_per_night" json:"price_per_night" validate:"omitempty,min=0"`
	MaxGuests     *int                  `db:"max_guests"      json:"max_guests"      validate:"omitempty,min=1"`
	Image         *multipart.FileHeader `json:"image"         validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile     multipart.File        `json:"-"`
}

type UpdateRoomStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=available occupied cleaning maintenance out_of_service"`
}

type RoomResponse struct {
	ID            string   `json:"id"`
	HotelID       string   `json:"hotel_id"`
	Number        string   `json:"number"`
	Type          string   `json:"type"`
	Description   string   `json:"description,omitempty"`
	Status        string   `json:"status"`
	PricePerNight int64    `json:"price_per_night"`
	MaxGuests     int      `json:"max_guests"`
	Amenities     []string `json:"amenities,omitempty"`
	Image         string   `json:"image,omitempty"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(mod model.Room) {
	r.ID = mod.ID
	r.HotelID = mod.HotelID
	r.Number = mod.Number
	r.Type = mod.Type
	r.Description = mod.Description
	r.Status = mod.Status
	r.PricePerNight = mod.PricePerNight
	r.MaxGuests = mod.MaxGuests
	r.Amenities = mod.Amenities
	r.Image = mod.Image
	r.Metadata.FromModel(mod.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
