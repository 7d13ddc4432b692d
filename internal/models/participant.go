package models

import (
	"time"
)

// Participant represents a person signed up in a room
type Participant struct {
	// ID is the unique identifier for this participant, assigned by the
	// store in join order
	ID int64

	// RoomID is the ID of the room the participant joined
	RoomID string

	// Name is the display name of the participant
	Name string

	// Email is where the participant's assignment is sent. No two
	// participants in the same room share an email.
	Email string

	// Note holds optional gift preferences, free text
	Note string

	// AssignedToID is the ID of the participant this person gives a gift
	// to. It is nil until the room's draw has happened.
	AssignedToID *int64

	// CreatedAt is when the participant joined
	CreatedAt time.Time
}
