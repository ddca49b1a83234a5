package dto

import (
	"github.com/google/uuid"

	"innkeeper/internal/domains/oplog/model"
	"innkeeper/shared"
	gDto "innkeeper/shared/dto"
	gModel "innkeeper/shared/model"
	"innkeeper/shared/timezone"
)

type CreateGeneratorLogRequest struct {
	HotelID   string  `json:"hotel_id"       validate:"required,uuid4"`
	Action    string  `json:"action"         validate:"required,oneof=on off"`
	FuelLevel int     `json:"fuel_level"     validate:"gte=0,lte=100"`
	Note      *string `json:"note,omitempty" validate:"omitempty,max=500"`
}

func (r *CreateGeneratorLogRequest) ToModel(user string) model.GeneratorLog {
	return model.GeneratorLog{
		ID:         uuid.NewString(),
		HotelID:    r.HotelID,
		RecordedBy: user,
		Action:     r.Action,
		FuelLevel:  r.FuelLevel,
		Note:       r.Note,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type CreateAttendanceLogRequest struct {
	HotelID string `json:"hotel_id" validate:"required,uuid4"`
	Kind    string `json:"kind"     validate:"required,oneof=clock_in clock_out"`
}

func (r *CreateAttendanceLogRequest) ToModel(user string) model.AttendanceLog {
	return model.AttendanceLog{
		ID:      uuid.NewString(),
		HotelID: r.HotelID,
		UserID:  user,
		Kind:    r.Kind,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type GeneratorLogResponse struct {
	ID         string  `json:"id"`
	HotelID    string  `json:"hotel_id"`
	RecordedBy string  `json:"recorded_by"`
	Action     string  `json:"action"`
	FuelLevel  int     `json:"fuel_level"`
	Note       *string `json:"note,omitempty"`
	gDto.Metadata
}

func (r *GeneratorLogResponse) FromModel(mod model.GeneratorLog) {
	r.ID = mod.ID
	r.HotelID = mod.HotelID
	r.RecordedBy = mod.RecordedBy
	r.Action = mod.Action
	r.FuelLevel = mod.FuelLevel
	r.Note = mod.Note
	r.Metadata.FromModel(mod.Metadata)
}

type GetGeneratorLogsResponse struct {
	Logs      []GeneratorLogResponse `json:"logs"`
	TotalPage int                    `json:"total_page"`
	TotalData int                    `json:"total_data"`
}

func (r *GetGeneratorLogsResponse) FromModels(models []model.GeneratorLog, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Logs = make([]GeneratorLogResponse, len(models))
	for i, mod := range models {
		r.Logs[i].FromModel(mod)
	}
}

type AttendanceLogResponse struct {
	ID      string `json:"id"`
	HotelID string `json:"hotel_id"`
	UserID  string `json:"user_id"`
	Kind    string `json:"kind"`
	gDto.Metadata
}

func (r *AttendanceLogResponse) FromModel(mod model.AttendanceLog) {
	r.ID = mod.ID
	r.HotelID = mod.HotelID
	r.UserID = mod.UserID
	r.Kind = mod.Kind
	r.Metadata.FromModel(mod.Metadata)
}

type GetAttendanceLogsResponse struct {
	Logs      []AttendanceLogResponse `json:"logs"`
	TotalPage int                     `json:"total_page"`
	TotalData int                     `json:"total_data"`
}

func (r *GetAttendanceLogsResponse) FromModels(models []model.AttendanceLog, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Logs = make([]AttendanceLogResponse, len(models))
	for i, mod := range models {
		r.Logs[i].FromModel(mod)
	}
}
