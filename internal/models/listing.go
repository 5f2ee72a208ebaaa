package models

import (
	"strings"
	"time"
)

// PropertyType is the kind of rental property
type PropertyType string

const (
	PropertyApartment PropertyType = "APARTMENT"
	PropertyHouse     PropertyType = "HOUSE"
	PropertyStudio    PropertyType = "STUDIO"
)

// AnyPropertyType is the sentinel clients send to disable the type filter
const AnyPropertyType = "ANY"

// ParsePropertyType matches a property type case-insensitively
func ParsePropertyType(s string) (PropertyType, bool) {
	switch t := PropertyType(strings.ToUpper(strings.TrimSpace(s))); t {
	case PropertyApartment, PropertyHouse, PropertyStudio:
		return t, true
	}
	return "", false
}

// Listing is a rental property. Listings are seeded and never edited through the API.
type Listing struct {
	ID          uint         `json:"id" gorm:"primaryKey"`
	Title       string       `json:"title" gorm:"not null"`
	Address     string       `json:"address" gorm:"not null"`
	Price       int          `json:"price" gorm:"not null;index"`
	Type        PropertyType `json:"type" gorm:"type:varchar(16);not null;index"`
	Bedrooms    int          `json:"bedrooms" gorm:"not null"`
	Bathrooms   int          `json:"bathrooms" gorm:"not null"`
	Furnished   bool         `json:"furnished"`
	ImageURL    string       `json:"imageUrl"`
	Source      string       `json:"source"`
	Description string       `json:"description" gorm:"type:text"`
	CreatedAt   time.Time    `json:"createdAt" gorm:"index"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// SavedListing is the bookmark relation. The pair is the whole state.
type SavedListing struct {
	UserID    uint    `json:"userId" gorm:"primaryKey;autoIncrement:false"`
	ListingID uint    `json:"listingId" gorm:"primaryKey;autoIncrement:false;index"`
	User      User    `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Listing   Listing `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// ExplainMatchRequest is the body of POST /listings/:id/explain-match
type ExplainMatchRequest struct {
	UserPreferences string `json:"userPreferences" validate:"required,max=1000"`
}

// ToggleSavedResponse reports the state of the relation after a toggle
type ToggleSavedResponse struct {
	Message string `json:"message"`
	Saved   bool   `json:"saved"`
}
