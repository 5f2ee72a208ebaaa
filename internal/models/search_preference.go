package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SearchPreference is a saved search stored in MongoDB
type SearchPreference struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID      uint               `json:"userId" bson:"user_id"`
	Name        string             `json:"name" bson:"name"`
	Location    string             `json:"location" bson:"location"`
	MinPrice    int                `json:"minPrice" bson:"min_price"`
	MaxPrice    int                `json:"maxPrice" bson:"max_price"`
	Type        string             `json:"type" bson:"type"` // property type or "ANY"
	MinBedrooms int                `json:"minBedrooms" bson:"min_bedrooms"`
	CreatedAt   time.Time          `json:"createdAt" bson:"created_at"`
}

// CreateSearchPreferenceRequest defines the body for saving a search
type CreateSearchPreferenceRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=80"`
	Location    string `json:"location" validate:"max=120"`
	MinPrice    int    `json:"minPrice" validate:"min=0"`
	MaxPrice    int    `json:"maxPrice" validate:"omitempty,gtefield=MinPrice"`
	Type        string `json:"type" validate:"omitempty,property_type"`
	MinBedrooms int    `json:"minBedrooms" validate:"min=0,max=20"`
}
