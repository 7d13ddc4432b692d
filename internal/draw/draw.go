package draw

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/KirkDiggler/santad/internal/models"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_engine.go github.com/KirkDiggler/santad/internal/draw Engine

// MinParticipants is the smallest roster that can be drawn. With two people
// both would always end up gifting each other, which spoils the secret.
const MinParticipants = 3

// ErrInsufficientParticipants is returned when the roster is too small to draw
var ErrInsufficientParticipants = errors.New("at least 3 participants are required to draw names")

// Engine computes gift assignments for a roster
type Engine interface {
	// Compute returns one giver-to-receiver edge per participant
	Compute(participants []*models.Participant) ([]models.Assignment, error)
}

// engine implements the Engine interface using an unbiased shuffle
type engine struct {
	// mu serializes access to random: one engine is shared by every
	// request, and rand.Rand is not safe for concurrent use
	mu     sync.Mutex
	random *rand.Rand
}

// Config for the draw engine
type Config struct {
	// Optional seed for testing
	Seed int64
}

// New creates a new draw engine
func New(cfg *Config) Engine {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	source := rand.NewSource(seed)
	random := rand.New(source)

	return &engine{
		random: random,
	}
}

// Compute shuffles the roster uniformly and links it into a single cycle:
// each participant gives to the next one in shuffled order and the last
// gives to the first. With MinParticipants or more, nobody can be assigned
// to themselves, and everyone gives and receives exactly once.
func (e *engine) Compute(participants []*models.Participant) ([]models.Assignment, error) {
	if len(participants) < MinParticipants {
		return nil, ErrInsufficientParticipants
	}

	// Shuffle a copy, the caller's roster order is not ours to change
	shuffled := make([]*models.Participant, len(participants))
	copy(shuffled, participants)
	e.mu.Lock()
	e.random.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	e.mu.Unlock()

	assignments := make([]models.Assignment, len(shuffled))
	for i, giver := range shuffled {
		receiver := shuffled[(i+1)%len(shuffled)]
		assignments[i] = models.Assignment{
			GiverID:    giver.ID,
			ReceiverID: receiver.ID,
		}
	}

	return assignments, nil
}
