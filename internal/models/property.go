package models

import (
	"time"
)

// PropertyType classifies a rental listing.
type PropertyType string

const (
	PropertyTypeApartment PropertyType = "apartment"
	PropertyTypeHouse     PropertyType = "house"
	PropertyTypeStudio    PropertyType = "studio"
	PropertyTypePenthouse PropertyType = "penthouse"
	PropertyTypeTownhouse PropertyType = "townhouse"
)

// PropertyStatus is the availability state of a listing, managed by the backend.
type PropertyStatus string

const (
	PropertyStatusAvailable PropertyStatus = "available"
	PropertyStatusRented    PropertyStatus = "rented"
	PropertyStatusPending   PropertyStatus = "pending"
)

// Property represents a rental listing owned by the remote backend.
// This service only ever reads properties; no local mutation persists.
// All optional fields use pointers to distinguish zero values from absent ones.
type Property struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Description   string         `json:"description,omitempty"`
	Address       string         `json:"address"`
	City          string         `json:"city"`
	Postcode      string         `json:"postcode"`
	PropertyType  PropertyType   `json:"property_type"`
	PricePerMonth float64        `json:"price_per_month"`
	Deposit       *float64       `json:"deposit,omitempty"`
	Bedrooms      int            `json:"bedrooms"`
	Bathrooms     int            `json:"bathrooms"`
	SquareFeet    *int           `json:"square_feet,omitempty"`
	Furnished     bool           `json:"furnished"`
	PetsAllowed   bool           `json:"pets_allowed"`
	Parking       bool           `json:"parking"`
	Images        []string       `json:"images,omitempty"`
	Features      []string       `json:"features,omitempty"`
	Status        PropertyStatus `json:"status"`
	AvailableFrom *time.Time     `json:"available_from,omitempty"`
	CreatedDate   time.Time      `json:"created_date"`
}
