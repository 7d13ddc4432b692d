package room

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/santad/internal/repositories/room Repository

import (
	"context"

	"github.com/KirkDiggler/santad/internal/models"
)

// Repository defines the interface for room and participant persistence
type Repository interface {
	// CreateRoom persists a new room
	CreateRoom(ctx context.Context, input *CreateRoomInput) error

	// GetRoom retrieves a room by ID
	GetRoom(ctx context.Context, input *GetRoomInput) (*models.Room, error)

	// AddParticipant appends a participant to a room's roster, enforcing
	// the per-room email uniqueness constraint
	AddParticipant(ctx context.Context, input *AddParticipantInput) (*models.Participant, error)

	// GetParticipants retrieves a room's roster in join order
	GetParticipants(ctx context.Context, input *GetParticipantsInput) ([]*models.Participant, error)

	// CommitDraw atomically stores every assignment link and marks the
	// room drawn. Concurrent commits for the same room serialize so that
	// exactly one succeeds.
	CommitDraw(ctx context.Context, input *CommitDrawInput) error
}
