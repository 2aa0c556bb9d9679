package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"-"`
	Location         string    `json:"location,omitempty"`
	LocationType     string    `json:"location_type,omitempty"`
	AvailabilityType string    `json:"availability_type,omitempty"`
	About            string    `json:"about,omitempty"`
	Rating           *float64  `json:"rating,omitempty"`
	IsPublic         bool      `json:"is_public"`
	ShowLocation     bool      `json:"show_location"`
	ShowEmail        bool      `json:"show_email"`
	IsBanned         bool      `json:"-"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"-"`
}

// ProfileUpdate carries the about/privacy fields of a profile edit. Nil
// pointers mean "leave unchanged".
type ProfileUpdate struct {
	About        *string
	IsPublic     *bool
	ShowLocation *bool
	ShowEmail    *bool
}

type AvailabilityUpdate struct {
	AvailabilityType string
	LocationType     *string
	Location         *string
}
