package room

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/santad/internal/models"
)

const (
	// Key prefixes for Redis
	roomKeyPrefix        = "room:"
	participantKeyPrefix = "participant:"

	// participantSeqKey is the store-wide counter participant IDs come from
	participantSeqKey = "participant:next_id"

	// maxCommitRetries bounds the optimistic locking loop in CommitDraw
	maxCommitRetries = 3
)

// ErrRoomNotFound is returned when a room is not found
var ErrRoomNotFound = errors.New("room not found")

// ErrParticipantNotFound is returned when a participant is not found
var ErrParticipantNotFound = errors.New("participant not found")

// ErrEmailTaken is returned when the email already joined the room
var ErrEmailTaken = errors.New("email has already joined this room")

// ErrAlreadyDrawn is returned when the room's draw has already been committed
var ErrAlreadyDrawn = errors.New("room has already been drawn")

// Config holds configuration for the Redis room repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed room repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	// Validate config
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

func roomKey(roomID string) string {
	return fmt.Sprintf("%s%s", roomKeyPrefix, roomID)
}

func roomParticipantsKey(roomID string) string {
	return fmt.Sprintf("%s%s:participants", roomKeyPrefix, roomID)
}

func roomEmailsKey(roomID string) string {
	return fmt.Sprintf("%s%s:emails", roomKeyPrefix, roomID)
}

func participantKey(participantID int64) string {
	return fmt.Sprintf("%s%d", participantKeyPrefix, participantID)
}

// CreateRoom persists a room to Redis
func (r *redisRepository) CreateRoom(ctx context.Context, input *CreateRoomInput) error {
	if input == nil || input.Room == nil {
		return errors.New("input and room cannot be nil")
	}

	if input.Room.ID == "" {
		return errors.New("room ID cannot be empty")
	}

	roomJSON, err := json.Marshal(input.Room)
	if err != nil {
		return fmt.Errorf("failed to marshal room: %w", err)
	}

	// Room IDs are random tokens, but refuse to clobber one on the off
	// chance of a collision.
	ok, err := r.client.SetNX(ctx, roomKey(input.Room.ID), roomJSON, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to save room: %w", err)
	}
	if !ok {
		return fmt.Errorf("room %s already exists", input.Room.ID)
	}

	return nil
}

// GetRoom retrieves a room by ID from Redis
func (r *redisRepository) GetRoom(ctx context.Context, input *GetRoomInput) (*models.Room, error) {
	if input == nil || input.RoomID == "" {
		return nil, errors.New("input and room ID cannot be empty")
	}

	roomJSON, err := r.client.Get(ctx, roomKey(input.RoomID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	var room models.Room
	if err := json.Unmarshal([]byte(roomJSON), &room); err != nil {
		return nil, fmt.Errorf("failed to unmarshal room: %w", err)
	}

	return &room, nil
}

// AddParticipant appends a participant to a room's roster
func (r *redisRepository) AddParticipant(ctx context.Context, input *AddParticipantInput) (*models.Participant, error) {
	if input == nil || input.RoomID == "" {
		return nil, errors.New("input and room ID cannot be empty")
	}

	if input.Name == "" || input.Email == "" {
		return nil, errors.New("name and email cannot be empty")
	}

	// The room must exist before anything is reserved under it
	if _, err := r.GetRoom(ctx, &GetRoomInput{RoomID: input.RoomID}); err != nil {
		return nil, err
	}

	// SADD is the uniqueness constraint: of any number of concurrent joins
	// with the same email, exactly one adds a new member.
	added, err := r.client.SAdd(ctx, roomEmailsKey(input.RoomID), strings.ToLower(input.Email)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to reserve email: %w", err)
	}
	if added == 0 {
		return nil, ErrEmailTaken
	}

	// IDs come from a store-wide counter, so they are monotonic in join order
	participantID, err := r.client.Incr(ctx, participantSeqKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to allocate participant ID: %w", err)
	}

	participant := &models.Participant{
		ID:        participantID,
		RoomID:    input.RoomID,
		Name:      input.Name,
		Email:     input.Email,
		Note:      input.Note,
		CreatedAt: input.JoinedAt,
	}

	participantJSON, err := json.Marshal(participant)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal participant: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, participantKey(participantID), participantJSON, 0)
	pipe.ZAdd(ctx, roomParticipantsKey(input.RoomID), redis.Z{
		Score:  float64(participantID),
		Member: strconv.FormatInt(participantID, 10),
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to save participant: %w", err)
	}

	return participant, nil
}

// GetParticipants retrieves a room's roster from Redis in join order
func (r *redisRepository) GetParticipants(ctx context.Context, input *GetParticipantsInput) ([]*models.Participant, error) {
	if input == nil || input.RoomID == "" {
		return nil, errors.New("input and room ID cannot be empty")
	}

	memberIDs, err := r.client.ZRange(ctx, roomParticipantsKey(input.RoomID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get participant IDs: %w", err)
	}

	if len(memberIDs) == 0 {
		return []*models.Participant{}, nil
	}

	// Fetch all participants in one round trip, preserving roster order
	pipe := r.client.Pipeline()
	commands := make([]*redis.StringCmd, len(memberIDs))
	for i, memberID := range memberIDs {
		participantID, err := strconv.ParseInt(memberID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid participant ID %q: %w", memberID, err)
		}
		commands[i] = pipe.Get(ctx, participantKey(participantID))
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}

	participants := make([]*models.Participant, 0, len(memberIDs))
	for i, cmd := range commands {
		participantJSON, err := cmd.Result()
		if err != nil {
			return nil, fmt.Errorf("failed to get participant %s: %w", memberIDs[i], err)
		}

		var participant models.Participant
		if err := json.Unmarshal([]byte(participantJSON), &participant); err != nil {
			return nil, fmt.Errorf("failed to unmarshal participant %s: %w", memberIDs[i], err)
		}

		participants = append(participants, &participant)
	}

	return participants, nil
}

// CommitDraw stores the assignment links and flips the room's drawn flag in
// a single transaction. The room key is watched, so of any concurrent
// commits exactly one applies; the rest observe the committed flag and fail
// with ErrAlreadyDrawn.
func (r *redisRepository) CommitDraw(ctx context.Context, input *CommitDrawInput) error {
	if input == nil || input.RoomID == "" {
		return errors.New("input and room ID cannot be empty")
	}

	if len(input.Assignments) == 0 {
		return errors.New("assignments cannot be empty")
	}

	key := roomKey(input.RoomID)

	commit := func(tx *redis.Tx) error {
		roomJSON, err := tx.Get(ctx, key).Result()
		if err != nil {
			if err == redis.Nil {
				return ErrRoomNotFound
			}
			return fmt.Errorf("failed to get room: %w", err)
		}

		var room models.Room
		if err := json.Unmarshal([]byte(roomJSON), &room); err != nil {
			return fmt.Errorf("failed to unmarshal room: %w", err)
		}

		if room.IsDrawn {
			return ErrAlreadyDrawn
		}
		room.IsDrawn = true

		// Re-read every giver inside the watch so the writes below are
		// based on current state
		updated := make([]*models.Participant, 0, len(input.Assignments))
		for _, assignment := range input.Assignments {
			participantJSON, err := tx.Get(ctx, participantKey(assignment.GiverID)).Result()
			if err != nil {
				if err == redis.Nil {
					return ErrParticipantNotFound
				}
				return fmt.Errorf("failed to get participant %d: %w", assignment.GiverID, err)
			}

			var participant models.Participant
			if err := json.Unmarshal([]byte(participantJSON), &participant); err != nil {
				return fmt.Errorf("failed to unmarshal participant %d: %w", assignment.GiverID, err)
			}

			receiverID := assignment.ReceiverID
			participant.AssignedToID = &receiverID
			updated = append(updated, &participant)
		}

		newRoomJSON, err := json.Marshal(&room)
		if err != nil {
			return fmt.Errorf("failed to marshal room: %w", err)
		}

		// All links and the drawn flag commit together or not at all
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, newRoomJSON, 0)
			for _, participant := range updated {
				participantJSON, err := json.Marshal(participant)
				if err != nil {
					return fmt.Errorf("failed to marshal participant %d: %w", participant.ID, err)
				}
				pipe.Set(ctx, participantKey(participant.ID), participantJSON, 0)
			}
			return nil
		})
		return err
	}

	for attempt := 0; attempt < maxCommitRetries; attempt++ {
		err := r.client.Watch(ctx, commit, key)
		if err == nil {
			return nil
		}

		if errors.Is(err, redis.TxFailedErr) {
			// Lost the race on the room key. If the winner was another
			// draw, report that; otherwise try again.
			room, getErr := r.GetRoom(ctx, &GetRoomInput{RoomID: input.RoomID})
			if getErr == nil && room.IsDrawn {
				return ErrAlreadyDrawn
			}
			continue
		}

		return err
	}

	return fmt.Errorf("draw for room %s did not commit after %d attempts", input.RoomID, maxCommitRetries)
}
