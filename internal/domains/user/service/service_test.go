package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"innkeeper/config"
	"innkeeper/infras/otel/mocks"
	userMocks "innkeeper/internal/domains/user/mocks"
	"innkeeper/internal/domains/user/model"
	"innkeeper/internal/domains/user/model/dto"
	"innkeeper/internal/domains/user/service"
	"innkeeper/permissions"
	cacheMocks "innkeeper/shared/cache/mocks"
	"innkeeper/shared/constant"
	"innkeeper/shared/failure"
)

type userServiceMocks struct {
	repo  *userMocks.MockUser
	cache *cacheMocks.MockRedisCache
}

func newUserService(t *testing.T) (service.User, *userServiceMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)

	m := &userServiceMocks{
		repo:  userMocks.NewMockUser(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
	}

	m.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(m.repo, cfg, m.cache, mocks.NewOtel())

	return svc, m
}

func strPtr(s string) *string {
	return &s
}

func TestUserService_Create(t *testing.T) {
	hotelID := "7b0f0f7e-3c47-4c8a-9a56-0f6d9a2f1c11"

	tests := []struct {
		name      string
		req       dto.CreateUserRequest
		setupMock func(m *userServiceMocks)
		wantErr   bool
		wantCode  int
		wantRole  string
	}{
		{
			name: "hotel staff with hotel assignment",
			req: dto.CreateUserRequest{
				Email:    "desk@grand.test",
				Password: "s3cret-pass",
				FullName: "Desk Clerk",
				Role:     string(permissions.RoleFrontDesk),
				HotelID:  &hotelID,
			},
			setupMock: func(m *userServiceMocks) {
				m.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				m.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantRole: string(permissions.RoleFrontDesk),
		},
		{
			name: "role defaults to guest",
			req: dto.CreateUserRequest{
				Email:    "guest@example.test",
				Password: "s3cret-pass",
				FullName: "Walk In",
			},
			setupMock: func(m *userServiceMocks) {
				m.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				m.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantRole: string(permissions.RoleGuest),
		},
		{
			name: "unknown role",
			req: dto.CreateUserRequest{
				Email:    "x@example.test",
				Password: "s3cret-pass",
				FullName: "X",
				Role:     "WIZARD",
			},
			setupMock: func(m *userServiceMocks) {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "hotel role without hotel",
			req: dto.CreateUserRequest{
				Email:    "desk@grand.test",
				Password: "s3cret-pass",
				FullName: "Desk Clerk",
				Role:     string(permissions.RoleFrontDesk),
			},
			setupMock: func(m *userServiceMocks) {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "guest with hotel assignment",
			req: dto.CreateUserRequest{
				Email:    "guest@example.test",
				Password: "s3cret-pass",
				FullName: "Walk In",
				Role:     string(permissions.RoleGuest),
				HotelID:  &hotelID,
			},
			setupMock: func(m *userServiceMocks) {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "email already registered",
			req: dto.CreateUserRequest{
				Email:    "taken@example.test",
				Password: "s3cret-pass",
				FullName: "Taken",
			},
			setupMock: func(m *userServiceMocks) {
				m.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "insert error",
			req: dto.CreateUserRequest{
				Email:    "guest@example.test",
				Password: "s3cret-pass",
				FullName: "Walk In",
			},
			setupMock: func(m *userServiceMocks) {
				m.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				m.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newUserService(t)
			tt.setupMock(m)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			res, err := svc.Create(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantRole, res.Role)
			assert.True(t, res.Active)
		})
	}
}

func TestUserService_Update(t *testing.T) {
	hotelID := "7b0f0f7e-3c47-4c8a-9a56-0f6d9a2f1c11"

	tests := []struct {
		name      string
		req       dto.UpdateUserRequest
		setupMock func(m *userServiceMocks)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful profile update",
			req:  dto.UpdateUserRequest{FullName: strPtr("New Name")},
			setupMock: func(m *userServiceMocks) {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.User{ID: "user-1", Role: string(permissions.RoleGuest)}, nil)

				m.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "promote to hotel staff",
			req:  dto.UpdateUserRequest{Role: strPtr(string(permissions.RoleFrontDesk)), HotelID: &hotelID},
			setupMock: func(m *userServiceMocks) {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.User{ID: "user-1", Role: string(permissions.RoleGuest)}, nil)

				m.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "hotel role without hotel is rejected",
			req:  dto.UpdateUserRequest{Role: strPtr(string(permissions.RoleFrontDesk))},
			setupMock: func(m *userServiceMocks) {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.User{ID: "user-1", Role: string(permissions.RoleGuest)}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name:      "empty request",
			req:       dto.UpdateUserRequest{},
			setupMock: func(m *userServiceMocks) {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "user not found",
			req:  dto.UpdateUserRequest{FullName: strPtr("New Name")},
			setupMock: func(m *userServiceMocks) {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.User{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newUserService(t)
			tt.setupMock(m)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			err := svc.Update(ctx, tt.req, "user-1")

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestUserService_Get(t *testing.T) {
	t.Run("cache miss falls through to repository", func(t *testing.T) {
		svc, m := newUserService(t)

		m.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.User{ID: "user-1", Email: "guest@example.test", Role: string(permissions.RoleGuest)}, nil)

		res, err := svc.Get(context.Background(), "user-1")

		assert.NoError(t, err)
		assert.Equal(t, "user-1", res.ID)
	})

	t.Run("user not found", func(t *testing.T) {
		svc, m := newUserService(t)

		m.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.User{}, nil)

		_, err := svc.Get(context.Background(), "missing")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestUserService_Deactivate(t *testing.T) {
	t.Run("successful deactivation", func(t *testing.T) {
		svc, m := newUserService(t)

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.User{ID: "user-1", Role: string(permissions.RoleFrontDesk), HotelID: strPtr("hotel-1")}, nil)

		m.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
		assert.NoError(t, svc.Deactivate(ctx, "user-1"))
	})

	t.Run("user not found", func(t *testing.T) {
		svc, m := newUserService(t)

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.User{}, nil)

		err := svc.Deactivate(context.Background(), "missing")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
