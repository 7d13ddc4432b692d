package models

import (
	"time"
)

// Room represents a single gift exchange
type Room struct {
	// ID is the shareable identifier for the room
	ID string

	// Name is the display name of the exchange
	Name string

	// OrganizerName is the display name of the person who created the room
	OrganizerName string

	// OrganizerEmail is the email address of the organizer
	OrganizerEmail string

	// AdminKey is the capability token for organizer actions. Anyone holding
	// it can administer the room, so it is only ever disclosed in the
	// create response.
	AdminKey string

	// IsDrawn records whether names have been drawn. It only ever moves
	// from false to true.
	IsDrawn bool

	// CreatedAt is when the room was created
	CreatedAt time.Time
}
