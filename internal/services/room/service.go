package room

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/KirkDiggler/santad/internal/common/clock"
	"github.com/KirkDiggler/santad/internal/common/token"
	"github.com/KirkDiggler/santad/internal/draw"
	"github.com/KirkDiggler/santad/internal/models"
	roomRepo "github.com/KirkDiggler/santad/internal/repositories/room"
	"github.com/KirkDiggler/santad/internal/services/mailer"
)

// service implements the Service interface
type service struct {
	repo   roomRepo.Repository
	engine draw.Engine
	mailer mailer.Service
	tokens token.Generator
	clock  clock.Clock
	logger *slog.Logger
}

// Config holds the collaborators for the room service
type Config struct {
	RoomRepo       roomRepo.Repository
	DrawEngine     draw.Engine
	Mailer         mailer.Service
	TokenGenerator token.Generator
	Clock          clock.Clock

	// Logger for notification failures (optional, defaults to slog.Default)
	Logger *slog.Logger
}

// New creates a new room service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.RoomRepo == nil {
		return nil, ErrNilRoomRepo
	}

	if cfg.DrawEngine == nil {
		return nil, ErrNilDrawEngine
	}

	if cfg.Mailer == nil {
		return nil, ErrNilMailer
	}

	if cfg.TokenGenerator == nil {
		return nil, ErrNilTokenGenerator
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &service{
		repo:   cfg.RoomRepo,
		engine: cfg.DrawEngine,
		mailer: cfg.Mailer,
		tokens: cfg.TokenGenerator,
		clock:  cfg.Clock,
		logger: logger,
	}, nil
}

// CreateRoom creates a new room and enrolls the organizer as its first
// participant
func (s *service) CreateRoom(ctx context.Context, input *CreateRoomInput) (*CreateRoomOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	now := s.clock.Now()
	room := &models.Room{
		ID:             s.tokens.NewRoomID(),
		Name:           input.Name,
		OrganizerName:  input.OrganizerName,
		OrganizerEmail: input.OrganizerEmail,
		AdminKey:       s.tokens.NewAdminKey(),
		CreatedAt:      now,
	}

	if err := s.repo.CreateRoom(ctx, &roomRepo.CreateRoomInput{Room: room}); err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	// The organizer takes part like everyone else
	_, err := s.repo.AddParticipant(ctx, &roomRepo.AddParticipantInput{
		RoomID:   room.ID,
		Name:     input.OrganizerName,
		Email:    input.OrganizerEmail,
		JoinedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add organizer to room: %w", err)
	}

	return &CreateRoomOutput{Room: room}, nil
}

// GetRoom returns the public view of a room
func (s *service) GetRoom(ctx context.Context, input *GetRoomInput) (*GetRoomOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	room, err := s.getRoom(ctx, input.RoomID)
	if err != nil {
		return nil, err
	}

	participants, err := s.repo.GetParticipants(ctx, &roomRepo.GetParticipantsInput{
		RoomID: input.RoomID,
	})
	if err != nil {
		return nil, err
	}

	// The public view never carries the admin key
	public := *room
	public.AdminKey = ""

	return &GetRoomOutput{
		Room:         &public,
		Participants: participants,
	}, nil
}

// GetAdminRoom returns the organizer's view of a room
func (s *service) GetAdminRoom(ctx context.Context, input *GetAdminRoomInput) (*GetAdminRoomOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	room, err := s.authorize(ctx, input.RoomID, input.AdminKey)
	if err != nil {
		return nil, err
	}

	participants, err := s.repo.GetParticipants(ctx, &roomRepo.GetParticipantsInput{
		RoomID: input.RoomID,
	})
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]*models.Participant, len(participants))
	for _, p := range participants {
		byID[p.ID] = p
	}

	view := make([]*AdminParticipant, 0, len(participants))
	for _, p := range participants {
		entry := &AdminParticipant{Participant: p}
		if room.IsDrawn && p.AssignedToID != nil {
			entry.AssignedTo = byID[*p.AssignedToID]
		}
		view = append(view, entry)
	}

	return &GetAdminRoomOutput{
		Room:         room,
		Participants: view,
	}, nil
}

// JoinRoom adds a participant to a room
func (s *service) JoinRoom(ctx context.Context, input *JoinRoomInput) (*JoinRoomOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if _, err := s.getRoom(ctx, input.RoomID); err != nil {
		return nil, err
	}

	participant, err := s.repo.AddParticipant(ctx, &roomRepo.AddParticipantInput{
		RoomID:   input.RoomID,
		Name:     input.Name,
		Email:    input.Email,
		Note:     input.Note,
		JoinedAt: s.clock.Now(),
	})
	if err != nil {
		if errors.Is(err, roomRepo.ErrEmailTaken) {
			return nil, ErrDuplicateEmail
		}
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	return &JoinRoomOutput{Participant: participant}, nil
}

// DrawNames validates the draw preconditions, computes the assignment,
// commits it atomically with the room's drawn flag, and then emails every
// giver. Emails go out only after the commit; their failure never fails
// the draw.
func (s *service) DrawNames(ctx context.Context, input *DrawNamesInput) (*DrawNamesOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	room, err := s.authorize(ctx, input.RoomID, input.AdminKey)
	if err != nil {
		return nil, err
	}

	if room.IsDrawn {
		return nil, ErrAlreadyDrawn
	}

	participants, err := s.repo.GetParticipants(ctx, &roomRepo.GetParticipantsInput{
		RoomID: input.RoomID,
	})
	if err != nil {
		return nil, err
	}

	if len(participants) < draw.MinParticipants {
		return nil, ErrInsufficientParticipants
	}

	assignments, err := s.engine.Compute(participants)
	if err != nil {
		if errors.Is(err, draw.ErrInsufficientParticipants) {
			return nil, ErrInsufficientParticipants
		}
		return nil, err
	}

	err = s.repo.CommitDraw(ctx, &roomRepo.CommitDrawInput{
		RoomID:      input.RoomID,
		Assignments: assignments,
	})
	if err != nil {
		// A concurrent draw may have won the room between the check
		// above and the commit
		if errors.Is(err, roomRepo.ErrAlreadyDrawn) {
			return nil, ErrAlreadyDrawn
		}
		return nil, fmt.Errorf("failed to commit draw: %w", err)
	}

	s.notifyGivers(ctx, room, participants, assignments)

	return &DrawNamesOutput{ParticipantCount: len(assignments)}, nil
}

// notifyGivers fans the committed assignment out by email, best effort
func (s *service) notifyGivers(ctx context.Context, room *models.Room, participants []*models.Participant, assignments []models.Assignment) {
	// The draw is already committed; delivery must not die with the
	// request, so detach from the caller's cancellation
	ctx = context.WithoutCancel(ctx)

	byID := make(map[int64]*models.Participant, len(participants))
	for _, p := range participants {
		byID[p.ID] = p
	}

	details := make([]*mailer.AssignmentDetail, 0, len(assignments))
	for _, assignment := range assignments {
		giver := byID[assignment.GiverID]
		receiver := byID[assignment.ReceiverID]
		if giver == nil || receiver == nil {
			s.logger.Error("assignment references unknown participant",
				"room_id", room.ID,
				"giver_id", assignment.GiverID,
				"receiver_id", assignment.ReceiverID)
			continue
		}

		details = append(details, &mailer.AssignmentDetail{
			GiverName:    giver.Name,
			GiverEmail:   giver.Email,
			ReceiverName: receiver.Name,
			ReceiverNote: receiver.Note,
		})
	}

	output, err := s.mailer.DispatchAssignments(ctx, &mailer.DispatchAssignmentsInput{
		RoomName:    room.Name,
		Assignments: details,
	})
	if err != nil {
		s.logger.Warn("assignment notification dispatch failed",
			"room_id", room.ID,
			"error", err)
		return
	}

	if output.Failed > 0 {
		s.logger.Warn("some assignment notifications failed",
			"room_id", room.ID,
			"sent", output.Sent,
			"failed", output.Failed)
	}
}

func (s *service) getRoom(ctx context.Context, roomID string) (*models.Room, error) {
	room, err := s.repo.GetRoom(ctx, &roomRepo.GetRoomInput{RoomID: roomID})
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return room, nil
}

// authorize looks the room up and checks the caller's admin key. Holding
// the key is the only thing that makes someone an admin.
func (s *service) authorize(ctx context.Context, roomID, adminKey string) (*models.Room, error) {
	room, err := s.getRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	if adminKey == "" || room.AdminKey != adminKey {
		return nil, ErrUnauthorized
	}

	return room, nil
}
