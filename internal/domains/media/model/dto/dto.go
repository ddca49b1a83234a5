package dto

import (
	"mime/multipart"

	"github.com/google/uuid"

	"innkeeper/internal/domains/media/model"
	"innkeeper/shared"
	gDto "innkeeper/shared/dto"
	gModel "innkeeper/shared/model"
	"innkeeper/shared/timezone"
)

type UploadMediaRequest struct {
	HotelID string                `json:"hotel_id"          validate:"required,uuid4"`
	RoomID  *string               `json:"room_id,omitempty" validate:"omitempty,uuid4"`
	Caption string                `json:"caption"           validate:"omitempty,max=255"`
	File    *multipart.FileHeader `json:"file"              validate:"required,mimetypes=image/png image/jpg image/jpeg,maxfilesize=5"`
	Reader  multipart.File        `json:"-"`
}

func (r *UploadMediaRequest) ToModel(user, url string) model.Media {
	return model.Media{
		ID:      uuid.NewString(),
		HotelID: r.HotelID,
		RoomID:  r.RoomID,
		URL:     url,
		Caption: r.Caption,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type MediaResponse struct {
	ID      string  `json:"id"`
	HotelID string  `json:"hotel_id"`
	RoomID  *string `json:"room_id,omitempty"`
	URL     string  `json:"url"`
	Caption string  `json:"caption,omitempty"`
	gDto.Metadata
}

func (r *MediaResponse) FromModel(mod model.Media) {
	r.ID = mod.ID
	r.HotelID = mod.HotelID
	r.RoomID = mod.RoomID
	r.URL = mod.URL
	r.Caption = mod.Caption
	r.Metadata.FromModel(mod.Metadata)
}

type GetMediaResponse struct {
	Media     []MediaResponse `json:"media"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetMediaResponse) FromModels(models []model.Media, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Media = make([]MediaResponse, len(models))
	for i, mod := range models {
		r.Media[i].FromModel(mod)
	}
}
