package room

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/santad/internal/services/room Service

import "context"

// Service defines the interface for room operations
type Service interface {
	// CreateRoom creates a room and enrolls the organizer as its first
	// participant
	CreateRoom(ctx context.Context, input *CreateRoomInput) (*CreateRoomOutput, error)

	// GetRoom returns the public view of a room and its roster
	GetRoom(ctx context.Context, input *GetRoomInput) (*GetRoomOutput, error)

	// GetAdminRoom returns the organizer's view of a room. Once the draw
	// has happened it includes each participant's assigned recipient.
	GetAdminRoom(ctx context.Context, input *GetAdminRoomInput) (*GetAdminRoomOutput, error)

	// JoinRoom adds a participant to a room
	JoinRoom(ctx context.Context, input *JoinRoomInput) (*JoinRoomOutput, error)

	// DrawNames computes the gift assignments, commits them together with
	// the room's drawn flag, and emails every giver their assignment
	DrawNames(ctx context.Context, input *DrawNamesInput) (*DrawNamesOutput, error)
}
