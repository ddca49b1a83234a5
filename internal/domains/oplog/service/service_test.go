package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"innkeeper/config"
	"innkeeper/infras/otel/mocks"
	oplogMocks "innkeeper/internal/domains/oplog/mocks"
	"innkeeper/internal/domains/oplog/model"
	"innkeeper/internal/domains/oplog/model/dto"
	"innkeeper/internal/domains/oplog/service"
	cacheMocks "innkeeper/shared/cache/mocks"
	"innkeeper/shared/constant"
	gDto "innkeeper/shared/dto"
)

type oplogServiceMocks struct {
	generatorRepo  *oplogMocks.MockGeneratorLog
	attendanceRepo *oplogMocks.MockAttendanceLog
	cache          *cacheMocks.MockRedisCache
}

func newOplogService(t *testing.T) (service.Oplog, *oplogServiceMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)

	m := &oplogServiceMocks{
		generatorRepo:  oplogMocks.NewMockGeneratorLog(ctrl),
		attendanceRepo: oplogMocks.NewMockAttendanceLog(ctrl),
		cache:          cacheMocks.NewMockRedisCache(ctrl),
	}

	m.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(m.generatorRepo, m.attendanceRepo, cfg, m.cache, mocks.NewOtel())

	return svc, m
}

func TestOplogService_AppendGeneratorLog(t *testing.T) {
	t.Run("successful append records the acting user", func(t *testing.T) {
		svc, m := newOplogService(t)

		m.generatorRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, entry model.GeneratorLog) error {
				assert.Equal(t, "staff-1", entry.RecordedBy)
				assert.Equal(t, model.ActionOn, entry.Action)
				assert.Equal(t, 80, entry.FuelLevel)

				return nil
			})

		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "staff-1")
		err := svc.AppendGeneratorLog(ctx, dto.CreateGeneratorLogRequest{
			HotelID:   "7b0f0f7e-3c47-4c8a-9a56-0f6d9a2f1c11",
			Action:    model.ActionOn,
			FuelLevel: 80,
		})

		assert.NoError(t, err)
	})

	t.Run("insert error", func(t *testing.T) {
		svc, m := newOplogService(t)

		m.generatorRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(errors.New("database error"))

		err := svc.AppendGeneratorLog(context.Background(), dto.CreateGeneratorLogRequest{
			HotelID: "7b0f0f7e-3c47-4c8a-9a56-0f6d9a2f1c11",
			Action:  model.ActionOff,
		})

		assert.Error(t, err)
	})
}

func TestOplogService_AppendAttendanceLog(t *testing.T) {
	t.Run("clock in is attributed to the authenticated user", func(t *testing.T) {
		svc, m := newOplogService(t)

		m.attendanceRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, entry model.AttendanceLog) error {
				assert.Equal(t, "staff-1", entry.UserID)
				assert.Equal(t, model.KindClockIn, entry.Kind)

				return nil
			})

		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "staff-1")
		err := svc.AppendAttendanceLog(ctx, dto.CreateAttendanceLogRequest{
			HotelID: "7b0f0f7e-3c47-4c8a-9a56-0f6d9a2f1c11",
			Kind:    model.KindClockIn,
		})

		assert.NoError(t, err)
	})
}

func TestOplogService_GetGeneratorLogs(t *testing.T) {
	t.Run("cache miss falls through to repository", func(t *testing.T) {
		svc, m := newOplogService(t)

		m.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		m.generatorRepo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(2, nil)

		m.generatorRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.GeneratorLog{
				{ID: "log-1", Action: model.ActionOn},
				{ID: "log-2", Action: model.ActionOff},
			}, nil)

		res, err := svc.GetGeneratorLogs(context.Background(), gDto.QueryParams{Limit: 10}, gDto.FilterGroup{})

		assert.NoError(t, err)
		assert.Len(t, res.Logs, 2)
		assert.Equal(t, 2, res.TotalData)
	})

	t.Run("repository error", func(t *testing.T) {
		svc, m := newOplogService(t)

		m.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		m.generatorRepo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(0, errors.New("database error"))

		_, err := svc.GetGeneratorLogs(context.Background(), gDto.QueryParams{Limit: 10}, gDto.FilterGroup{})

		assert.Error(t, err)
	})
}

func TestOplogService_GetAttendanceLogs(t *testing.T) {
	t.Run("cache miss falls through to repository", func(t *testing.T) {
		svc, m := newOplogService(t)

		m.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		m.attendanceRepo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(1, nil)

		m.attendanceRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.AttendanceLog{{ID: "log-1", Kind: model.KindClockOut}}, nil)

		res, err := svc.GetAttendanceLogs(context.Background(), gDto.QueryParams{Limit: 10}, gDto.FilterGroup{})

		assert.NoError(t, err)
		assert.Len(t, res.Logs, 1)
	})
}
