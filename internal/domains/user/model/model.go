package model

import (
	"innkeeper/permissions"
	"innkeeper/shared/model"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID        = "id"
	FieldEmail     = "email"
	FieldPassword  = "password"
	FieldFullName  = "full_name"
	FieldPhone     = "phone"
	FieldRole      = "role"
	FieldHotelID   = "hotel_id"
	FieldLastLogin = "last_login"
	FieldActive    = "active"
)

type User struct {
	ID        string  `db:"id"`
	Email     string  `db:"email"`
	Password  string  `db:"password"`
	FullName  string  `db:"full_name"`
	Phone     *string `db:"phone"`
	Role      string  `db:"role"`
	HotelID   *string `db:"hotel_id"`
	LastLogin *string `db:"last_login"`
	Active    bool    `db:"active"`
	model.Metadata
}

// Affiliated reports whether the user's hotel assignment is consistent with
// its role: hotel-scoped roles must carry a hotel id, platform and guest
// roles must not.
func (u User) Affiliated() bool {
	role := permissions.Role(u.Role)

	if role.IsHotelScoped() {
		return u.HotelID != nil && *u.HotelID != ""
	}

	return u.HotelID == nil || *u.HotelID == ""
}
