package dto

import (
	"mime/multipart"

	"github.com/google/uuid"

	"innkeeper/internal/domains/hotel/model"
	"innkeeper/shared"
	gDto "innkeeper/shared/dto"
	gModel "innkeeper/shared/model"
	"innkeeper/shared/timezone"
)

type CreateHotelRequest struct {
	Name         string                `json:"name"          validate:"required,max=255"`
	Slug         string                `json:"slug"          validate:"omitempty,max=100,lowercase"`
	CustomDomain string                `json:"custom_domain" validate:"omitempty,fqdn,max=255"`
	OwnerUserID  string                `json:"owner_user_id" validate:"omitempty,uuid4"`
	Description  string                `json:"description"   validate:"omitempty,max=2000"`
	Address      string                `json:"address"       validate:"omitempty,max=500"`
	City         string                `json:"city"          validate:"omitempty,max=100"`
	Country      string                `json:"country"       validate:"omitempty,max=100"`
	Phone        string                `json:"phone"         validate:"omitempty,max=32"`
	Email        string                `json:"email"         validate:"omitempty,email,max=255"`
	Timezone     string                `json:"timezone"      validate:"omitempty,max=64"`
	Currency     string                `json:"currency"      validate:"omitempty,len=3,uppercase"`
	Logo         *multipart.FileHeader `json:"logo"          validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	LogoFile     multipart.File        `json:"-"`
}

func (c *CreateHotelRequest) ToModel(user, logoURL string) model.Hotel {
	slug := c.Slug
	if slug == "" {
		slug = model.Slugify(c.Name)
	}

	currency := c.Currency
	if currency == "" {
		currency = "USD"
	}

	hotel := model.Hotel{
		ID:          uuid.NewString(),
		Name:        c.Name,
		Slug:        slug,
		Description: c.Description,
		Address:     c.Address,
		City:        c.City,
		Country:     c.Country,
		Phone:       c.Phone,
		Email:       c.Email,
		Timezone:    c.Timezone,
		Currency:    currency,
		Logo:        logoURL,
		Active:      true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}

	if c.CustomDomain != "" {
		domain := c.CustomDomain
		hotel.CustomDomain = &domain
	}

	if c.OwnerUserID != "" {
		owner := c.OwnerUserID
		hotel.OwnerUserID = &owner
	}

	return hotel
}

// UpdateHotelRequest deliberately has no slug field; slugs are immutable.
type UpdateHotelRequest struct {
	Name         string                `db:"name"          json:"name"          validate:"omitempty,max=255"`
	CustomDomain *string               `db:"custom_domain" json:"custom_domain" validate:"omitempty,fqdn,max=255"`
	OwnerUserID  *string               `db:"owner_user_id" json:"owner_user_id" validate:"omitempty,uuid4"`
	Description  string                `db:"description"   json:"description"   validate:"omitempty,max=2000"`
	Address      string                `db:"address"       json:"address"       validate:"omitempty,max=500"`
	City         string                `db:"city"          json:"city"          validate:"omitempty,max=100"`
	Country      string                `db:"country"       json:"country"       validate:"omitempty,max=100"`
	Phone        string                `db:"phone"         json:"phone"         validate:"omitempty,max=32"`
	Email        string                `db:"email"         json:"email"         validate:"omitempty,email,max=255"`
	Timezone     string                `db:"timezone"      json:"timezone"      validate:"omitempty,max=64"`
	Currency     string                `db:"currency"      json:"currency"      validate:"omitempty,len=3,uppercase"`
	Active       *bool                 `db:"active"        json:"active"        validate:"omitempty"`
	Logo         *multipart.FileHeader `json:"logo"        validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	LogoFile     multipart.File        `json:"-"`
}

type HotelResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Slug         string  `json:"slug"`
	CustomDomain *string `json:"custom_domain,omitempty"`
	OwnerUserID  *string `json:"owner_user_id,omitempty"`
	Description  string  `json:"description,omitempty"`
	Address      string  `json:"address,omitempty"`
	City         string  `json:"city,omitempty"`
	Country      string  `json:"country,omitempty"`
	Phone        string  `json:"phone,omitempty"`
	Email        string  `json:"email,omitempty"`
	Timezone     string  `json:"timezone,omitempty"`
	Currency     string  `json:"currency"`
	Logo         string  `json:"logo,omitempty"`
	Active       bool    `json:"active"`
	gDto.Metadata
}

func (r *HotelResponse) FromModel(mod model.Hotel) {
	r.ID = mod.ID
	r.Name = mod.Name
	r.Slug = mod.Slug
	r.CustomDomain = mod.CustomDomain
	r.OwnerUserID = mod.OwnerUserID
	r.Description = mod.Description
	r.Address = mod.Address
	r.City = mod.City
	r.Country = mod.Country
	r.Phone = mod.Phone
	r.Email = mod.Email
	r.Timezone = mod.Timezone
	r.Currency = mod.Currency
	r.Logo = mod.Logo
	r.Active = mod.Active
	r.Metadata.FromModel(mod.Metadata)
}

type GetHotelsResponse struct {
	Hotels    []HotelResponse `json:"hotels"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetHotelsResponse) FromModels(models []model.Hotel, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Hotels = make([]HotelResponse, len(models))
	for i, mod := range models {
		r.Hotels[i].FromModel(mod)
	}
}
