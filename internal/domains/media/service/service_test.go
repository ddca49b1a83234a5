package service_test

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"innkeeper/config"
	"innkeeper/infras/otel/mocks"
	s3Mocks "innkeeper/infras/s3/mocks"
	mediaMocks "innkeeper/internal/domains/media/mocks"
	"innkeeper/internal/domains/media/model"
	"innkeeper/internal/domains/media/model/dto"
	"innkeeper/internal/domains/media/service"
	cacheMocks "innkeeper/shared/cache/mocks"
	"innkeeper/shared/constant"
	"innkeeper/shared/failure"
)

type mediaServiceMocks struct {
	repo  *mediaMocks.MockMedia
	cache *cacheMocks.MockRedisCache
	s3    *s3Mocks.MockS3
}

func newMediaService(t *testing.T) (service.Media, *mediaServiceMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)

	m := &mediaServiceMocks{
		repo:  mediaMocks.NewMockMedia(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
		s3:    s3Mocks.NewMockS3(ctrl),
	}

	m.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.External.S3.BucketName = "innkeeper-media"

	svc := service.New(m.repo, cfg, m.cache, mocks.NewOtel(), m.s3)

	return svc, m
}

func TestMediaService_Upload(t *testing.T) {
	req := dto.UploadMediaRequest{
		HotelID: "7b0f0f7e-3c47-4c8a-9a56-0f6d9a2f1c11",
		Caption: "Lobby",
		File:    &multipart.FileHeader{Filename: "lobby.png"},
	}

	t.Run("successful upload", func(t *testing.T) {
		svc, m := newMediaService(t)

		m.s3.EXPECT().
			UploadFile(gomock.Any(), "innkeeper-media", model.EntityName, gomock.Any(), gomock.Any(), "lobby.png").
			Return("https://cdn.test/media/lobby.png", nil)

		m.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(nil)

		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
		res, err := svc.Upload(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, "https://cdn.test/media/lobby.png", res.URL)
		assert.Equal(t, "Lobby", res.Caption)
	})

	t.Run("upload failure", func(t *testing.T) {
		svc, m := newMediaService(t)

		m.s3.EXPECT().
			UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return("", errors.New("s3 unavailable"))

		_, err := svc.Upload(context.Background(), req)

		assert.Error(t, err)
	})

	t.Run("insert failure removes the uploaded object", func(t *testing.T) {
		svc, m := newMediaService(t)

		m.s3.EXPECT().
			UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return("https://cdn.test/media/lobby.png", nil)

		m.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(errors.New("database error"))

		m.s3.EXPECT().
			GetObjectNameFromURL("innkeeper-media", "https://cdn.test/media/lobby.png").
			Return("lobby.png")

		m.s3.EXPECT().
			DeleteFile(gomock.Any(), "innkeeper-media", model.EntityName, "lobby.png").
			Return(nil)

		_, err := svc.Upload(context.Background(), req)

		assert.Error(t, err)
	})
}

func TestMediaService_Delete(t *testing.T) {
	t.Run("successful deletion removes the object", func(t *testing.T) {
		svc, m := newMediaService(t)

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Media{ID: "media-1", URL: "https://cdn.test/media/lobby.png"}, nil)

		m.repo.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil)

		m.s3.EXPECT().
			GetObjectNameFromURL("innkeeper-media", "https://cdn.test/media/lobby.png").
			Return("lobby.png").
			AnyTimes()

		m.s3.EXPECT().
			DeleteFile(gomock.Any(), "innkeeper-media", model.EntityName, "lobby.png").
			Return(nil).
			AnyTimes()

		assert.NoError(t, svc.Delete(context.Background(), "media-1"))
	})

	t.Run("media not found", func(t *testing.T) {
		svc, m := newMediaService(t)

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Media{}, nil)

		err := svc.Delete(context.Background(), "missing")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestMediaService_Get(t *testing.T) {
	t.Run("cache miss falls through to repository", func(t *testing.T) {
		svc, m := newMediaService(t)

		m.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Media{ID: "media-1", URL: "https://cdn.test/media/lobby.png"}, nil)

		res, err := svc.Get(context.Background(), "media-1")

		assert.NoError(t, err)
		assert.Equal(t, "media-1", res.ID)
	})
}
