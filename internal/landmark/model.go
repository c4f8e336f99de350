// Package landmark provides the campus landmark catalog.
package landmark

import (
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when no landmark has the given name.
	ErrNotFound = errors.New("landmark not found")

	// ErrExists is returned when adding a name already in the catalog.
	ErrExists = errors.New("landmark already exists")
)

// Landmark is a place on campus users can check in at. Its name is the
// identity used by visits.
type Landmark struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	CreatedAt   time.Time `json:"created_at"`
}

// Input holds the fields for a new landmark.
type Input struct {
	Name        string  `json:"name" validate:"required,max=200"`
	Description string  `json:"description" validate:"max=2000"`
	Latitude    float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude   float64 `json:"longitude" validate:"gte=-180,lte=180"`
}
