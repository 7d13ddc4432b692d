package web

import (
	"time"

	"github.com/KirkDiggler/santad/internal/models"
	roomService "github.com/KirkDiggler/santad/internal/services/room"
)

type createRoomRequest struct {
	Name           string `json:"name" binding:"required,min=3,max=100"`
	OrganizerName  string `json:"organizerName" binding:"required,min=2,max=100"`
	OrganizerEmail string `json:"organizerEmail" binding:"required,email"`
}

type joinRoomRequest struct {
	Name  string `json:"name" binding:"required,min=2,max=100"`
	Email string `json:"email" binding:"required,email"`
	Note  string `json:"note" binding:"omitempty,max=1000"`
}

type drawNamesRequest struct {
	AdminKey string `json:"adminKey" binding:"required,max=100"`
}

type roomResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	OrganizerName  string    `json:"organizerName"`
	OrganizerEmail string    `json:"organizerEmail"`
	IsDrawn        bool      `json:"isDrawn"`
	CreatedAt      time.Time `json:"createdAt"`
}

// createRoomResponse is the only payload that carries the admin key
type createRoomResponse struct {
	roomResponse
	AdminKey string `json:"adminKey"`
}

type participantResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Note  string `json:"note,omitempty"`
}

type assignedToResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type adminParticipantResponse struct {
	participantResponse
	AssignedToID *int64              `json:"assignedToId"`
	AssignedTo   *assignedToResponse `json:"assignedTo,omitempty"`
}

type roomViewResponse struct {
	Room         roomResponse          `json:"room"`
	Participants []participantResponse `json:"participants"`
}

type adminRoomViewResponse struct {
	Room         roomResponse               `json:"room"`
	Participants []adminParticipantResponse `json:"participants"`
}

type drawNamesResponse struct {
	Success          bool   `json:"success"`
	Message          string `json:"message"`
	ParticipantCount int    `json:"participantCount"`
}

func newRoomResponse(room *models.Room) roomResponse {
	return roomResponse{
		ID:             room.ID,
		Name:           room.Name,
		OrganizerName:  room.OrganizerName,
		OrganizerEmail: room.OrganizerEmail,
		IsDrawn:        room.IsDrawn,
		CreatedAt:      room.CreatedAt,
	}
}

func newParticipantResponse(participant *models.Participant) participantResponse {
	return participantResponse{
		ID:    participant.ID,
		Name:  participant.Name,
		Email: participant.Email,
		Note:  participant.Note,
	}
}

func newAdminParticipantResponse(entry *roomService.AdminParticipant) adminParticipantResponse {
	response := adminParticipantResponse{
		participantResponse: newParticipantResponse(entry.Participant),
		AssignedToID:        entry.Participant.AssignedToID,
	}
	if entry.AssignedTo != nil {
		response.AssignedTo = &assignedToResponse{
			Name:  entry.AssignedTo.Name,
			Email: entry.AssignedTo.Email,
		}
	}
	return response
}
