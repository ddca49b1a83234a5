package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"innkeeper/config"
	"innkeeper/infras/otel"
	"innkeeper/internal/domains/oplog/model/dto"
	"innkeeper/internal/domains/oplog/repository"
	"innkeeper/permissions"
	"innkeeper/shared"
	"innkeeper/shared/cache"
	"innkeeper/shared/constant"
	gDto "innkeeper/shared/dto"
)

const (
	cacheGetAllGeneratorLogs  = "oplog:generator:gets"
	cacheGetAllAttendanceLogs = "oplog:attendance:gets"
)

type Oplog interface {
	AppendGeneratorLog(ctx context.Context, req dto.CreateGeneratorLogRequest) error
	GetGeneratorLogs(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetGeneratorLogsResponse, error)
	AppendAttendanceLog(ctx context.Context, req dto.CreateAttendanceLogRequest) error
	GetAttendanceLogs(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetAttendanceLogsResponse, error)
}

type serviceImpl struct {
	generatorRepo  repository.GeneratorLog
	attendanceRepo repository.AttendanceLog
	cfg            *config.Config
	cache          cache.RedisCache
	otel           otel.Otel
}

func New(
	generatorRepo repository.GeneratorLog,
	attendanceRepo repository.AttendanceLog,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Oplog {
	return &serviceImpl{
		generatorRepo:  generatorRepo,
		attendanceRepo: attendanceRepo,
		cfg:            cfg,
		cache:          cache,
		otel:           otel,
	}
}

func (s *serviceImpl) AppendGeneratorLog(ctx context.Context, req dto.CreateGeneratorLogRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AppendGeneratorLog")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = permissions.EnsureTenant(ctx, req.HotelID); err != nil {
		return err // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.generatorRepo.Insert(ctx, req.ToModel(user)); err != nil {
		log.Error().Err(err).Msg("failed to append generator log")

		return fmt.Errorf("failed to append generator log: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllGeneratorLogs)
	}()

	return nil
}

func (s *serviceImpl) GetGeneratorLogs(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetGeneratorLogsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetGeneratorLogs")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllGeneratorLogs, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for generator logs")

		return res, nil
	}

	total, err := s.generatorRepo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count generator logs")

		return res, fmt.Errorf("failed to count generator logs: %w", err)
	}

	models, err := s.generatorRepo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get generator logs")

		return res, fmt.Errorf("failed to get generator logs: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save generator logs to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) AppendAttendanceLog(ctx context.Context, req dto.CreateAttendanceLogRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AppendAttendanceLog")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = permissions.EnsureTenant(ctx, req.HotelID); err != nil {
		return err // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.attendanceRepo.Insert(ctx, req.ToModel(user)); err != nil {
		log.Error().Err(err).Msg("failed to append attendance log")

		return fmt.Errorf("failed to append attendance log: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllAttendanceLogs)
	}()

	return nil
}

func (s *serviceImpl) GetAttendanceLogs(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetAttendanceLogsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAttendanceLogs")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllAttendanceLogs, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for attendance logs")

		return res, nil
	}

	total, err := s.attendanceRepo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count attendance logs")

		return res, fmt.Errorf("failed to count attendance logs: %w", err)
	}

	models, err := s.attendanceRepo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get attendance logs")

		return res, fmt.Errorf("failed to get attendance logs: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save attendance logs to cache")
		}
	}()

	return res, nil
}
