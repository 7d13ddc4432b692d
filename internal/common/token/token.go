package token

import gonanoid "github.com/matoous/go-nanoid/v2"

//go:generate mockgen -package=mocks -destination=mocks/mock_token.go github.com/KirkDiggler/santad/internal/common/token Generator

const (
	// roomIDLength keeps room links short enough to share by hand
	roomIDLength = 10

	// adminKeyLength gives the admin capability token enough entropy that
	// it cannot be brute forced or derived from the room ID
	adminKeyLength = 32
)

// Generator produces the opaque tokens used for room identity and admin access
type Generator interface {
	NewRoomID() string
	NewAdminKey() string
}

// DefaultGenerator implements the Generator interface using nanoid tokens

type DefaultGenerator struct{}

func New() *DefaultGenerator {
	return &DefaultGenerator{}
}

// NewRoomID returns a new shareable room identifier
func (d *DefaultGenerator) NewRoomID() string {
	return gonanoid.Must(roomIDLength)
}

// NewAdminKey returns a new admin capability token
func (d *DefaultGenerator) NewAdminKey() string {
	return gonanoid.Must(adminKeyLength)
}
