package dto

import (
	"github.com/google/uuid"

	"innkeeper/internal/domains/user/model"
	"innkeeper/permissions"
	"innkeeper/shared"
	gDto "innkeeper/shared/dto"
	gModel "innkeeper/shared/model"
	"innkeeper/shared/timezone"
)

type CreateUserRequest struct {
	Email    string  `json:"email"              validate:"required,email,max=255"`
	Password string  `json:"password"           validate:"required,min=8"`
	FullName string  `json:"full_name"          validate:"required,max=255"`
	Phone    *string `json:"phone,omitempty"    validate:"omitempty,max=32"`
	Role     string  `json:"role"               validate:"omitempty,max=32"`
	HotelID  *string `json:"hotel_id,omitempty" validate:"omitempty,uuid4"`
}

func (r *CreateUserRequest) ToModel(user, hashedPassword string) model.User {
	role := r.Role
	if role == "" {
		role = string(permissions.RoleGuest)
	}

	return model.User{
		ID:       uuid.NewString(),
		Email:    r.Email,
		Password: hashedPassword,
		FullName: r.FullName,
		Phone:    r.Phone,
		Role:     role,
		HotelID:  r.HotelID,
		Active:   true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateUserRequest struct {
	FullName *string `db:"full_name" json:"full_name,omitempty" validate:"omitempty,max=255"`
	Phone    *string `db:"phone"     json:"phone,omitempty"     validate:"omitempty,max=32"`
	Role     *string `db:"role"      json:"role,omitempty"      validate:"omitempty,max=32"`
	HotelID  *string `db:"hotel_id"  json:"hotel_id,omitempty"  validate:"omitempty,uuid4"`
	Active   *bool   `db:"active"    json:"active,omitempty"`
}

type UserResponse struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	FullName  string  `json:"full_name"`
	Phone     *string `json:"phone,omitempty"`
	Role      string  `json:"role"`
	HotelID   *string `json:"hotel_id,omitempty"`
	LastLogin *string `json:"last_login,omitempty"`
	Active    bool    `json:"active"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(mod model.User) {
	r.ID = mod.ID
	r.Email = mod.Email
	r.FullName = mod.FullName
	r.Phone = mod.Phone
	r.Role = mod.Role
	r.HotelID = mod.HotelID
	r.LastLogin = mod.LastLogin
	r.Active = mod.Active
	r.Metadata.FromModel(mod.Metadata)
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}
