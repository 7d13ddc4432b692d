package room

import (
	"github.com/KirkDiggler/santad/internal/models"
)

// CreateRoomInput contains parameters for creating a room
type CreateRoomInput struct {
	Name           string
	OrganizerName  string
	OrganizerEmail string
}

// CreateRoomOutput contains the created room. This is the only place the
// admin key ever leaves the service.
type CreateRoomOutput struct {
	Room *models.Room
}

// GetRoomInput contains parameters for the public room view
type GetRoomInput struct {
	RoomID string
}

// GetRoomOutput contains the public view of a room. Room.AdminKey is
// always blank.
type GetRoomOutput struct {
	Room         *models.Room
	Participants []*models.Participant
}

// GetAdminRoomInput contains parameters for the organizer's room view
type GetAdminRoomInput struct {
	RoomID   string
	AdminKey string
}

// AdminParticipant pairs a participant with their assigned recipient.
// AssignedTo is nil until the room's draw has happened.
type AdminParticipant struct {
	Participant *models.Participant
	AssignedTo  *models.Participant
}

// GetAdminRoomOutput contains the organizer's view of a room
type GetAdminRoomOutput struct {
	Room         *models.Room
	Participants []*AdminParticipant
}

// JoinRoomInput contains parameters for joining a room
type JoinRoomInput struct {
	RoomID string
	Name   string
	Email  string
	Note   string
}

// JoinRoomOutput contains the newly added participant
type JoinRoomOutput struct {
	Participant *models.Participant
}

// DrawNamesInput contains parameters for performing the draw
type DrawNamesInput struct {
	RoomID   string
	AdminKey string
}

// DrawNamesOutput contains the result of a successful draw
type DrawNamesOutput struct {
	// ParticipantCount is how many participants were assigned and
	// notified (best effort; delivery failures do not reduce it)
	ParticipantCount int
}
