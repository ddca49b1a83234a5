package model

import (
	"regexp"
	"strings"

	"innkeeper/shared/model"
)

const (
	TableName  = "hotels"
	EntityName = "hotel"

	FieldID           = "id"
	FieldName         = "name"
	FieldSlug         = "slug"
	FieldCustomDomain = "custom_domain"
	FieldOwnerUserID  = "owner_user_id"
	FieldCity         = "city"
	FieldActive       = "active"
	FieldLogo         = "logo"
)

// Hotel is the tenant root. Every room, booking, and staff member hangs off
// exactly one hotel. Slug is assigned at creation and never changes; it is
// the public identifier used in booking links. CustomDomain is an optional
// second identifier for hotels serving their booking page off their own
// domain.
type Hotel struct {
	ID           string  `db:"id"`
	Name         string  `db:"name"`
	Slug         string  `db:"slug"`
	CustomDomain *string `db:"custom_domain"`
	OwnerUserID  *string `db:"owner_user_id"`
	Description  string  `db:"description"`
	Address      string  `db:"address"`
	City         string  `db:"city"`
	Country      string  `db:"country"`
	Phone        string  `db:"phone"`
	Email        string  `db:"email"`
	Timezone     string  `db:"timezone"`
	Currency     string  `db:"currency"`
	Logo         string  `db:"logo"`
	Active       bool    `db:"active"`
	model.Metadata
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL-safe slug from a hotel name.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugStrip.ReplaceAllString(slug, "-")

	return strings.Trim(slug, "-")
}
