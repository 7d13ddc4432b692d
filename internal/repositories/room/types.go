package room

import (
	"time"

	"github.com/KirkDiggler/santad/internal/models"
)

type CreateRoomInput struct {
	Room *models.Room
}

type GetRoomInput struct {
	RoomID string
}

type AddParticipantInput struct {
	RoomID   string
	Name     string
	Email    string
	Note     string
	JoinedAt time.Time
}

type GetParticipantsInput struct {
	RoomID string
}

type CommitDrawInput struct {
	RoomID      string
	Assignments []models.Assignment
}
