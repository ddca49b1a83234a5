package model

import "innkeeper/shared/model"

const (
	GeneratorTableName  = "generator_logs"
	GeneratorEntityName = "generator_log"

	AttendanceTableName  = "attendance_logs"
	AttendanceEntityName = "attendance_log"

	FieldID         = "id"
	FieldHotelID    = "hotel_id"
	FieldRecordedBy = "recorded_by"
	FieldAction     = "action"
	FieldFuelLevel  = "fuel_level"
	FieldUserID     = "user_id"
	FieldKind       = "kind"

	ActionOn  = "on"
	ActionOff = "off"

	KindClockIn  = "clock_in"
	KindClockOut = "clock_out"
)

// GeneratorLog is one switch event of a hotel's power generator. Rows are
// append-only.
type GeneratorLog struct {
	ID         string  `db:"id"`
	HotelID    string  `db:"hotel_id"`
	RecordedBy string  `db:"recorded_by"`
	Action     string  `db:"action"`
	FuelLevel  int     `db:"fuel_level"`
	Note       *string `db:"note"`
	model.Metadata
}

// AttendanceLog is one staff clock event. Rows are append-only.
type AttendanceLog struct {
	ID      string `db:"id"`
	HotelID string `db:"hotel_id"`
	UserID  string `db:"user_id"`
	Kind    string `db:"kind"`
	model.Metadata
}
