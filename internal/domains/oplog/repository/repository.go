package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"innkeeper/infras/otel"
	"innkeeper/infras/postgres"
	"innkeeper/internal/domains/oplog/model"
	gDto "innkeeper/shared/dto"
	gRepo "innkeeper/shared/repository"
)

// Both log tables are append-only, so neither interface exposes Update or
// Delete.

type GeneratorLog interface {
	Insert(ctx context.Context, model model.GeneratorLog) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.GeneratorLog, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
}

type AttendanceLog interface {
	Insert(ctx context.Context, model model.AttendanceLog) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.AttendanceLog, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
}

type generatorLogImpl struct {
	gRepo.Repository[model.GeneratorLog]
	db   *postgres.Connection
	otel otel.Otel
}

func NewGeneratorLog(db *postgres.Connection, otel otel.Otel) GeneratorLog {
	return &generatorLogImpl{
		Repository: gRepo.NewRepository[model.GeneratorLog](model.GeneratorEntityName, model.GeneratorTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

type attendanceLogImpl struct {
	gRepo.Repository[model.AttendanceLog]
	db   *postgres.Connection
	otel otel.Otel
}

func NewAttendanceLog(db *postgres.Connection, otel otel.Otel) AttendanceLog {
	return &attendanceLogImpl{
		Repository: gRepo.NewRepository[model.AttendanceLog](model.AttendanceEntityName, model.AttendanceTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
