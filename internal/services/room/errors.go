package room

import "errors"

// Define errors
var (
	ErrRoomNotFound             = errors.New("room not found")
	ErrUnauthorized             = errors.New("invalid room or admin key")
	ErrAlreadyDrawn             = errors.New("names have already been drawn for this room")
	ErrInsufficientParticipants = errors.New("at least 3 participants are required to draw names")
	ErrDuplicateEmail           = errors.New("this email has already joined this room")

	ErrNilConfig         = errors.New("config cannot be nil")
	ErrNilRoomRepo       = errors.New("room repository cannot be nil")
	ErrNilDrawEngine     = errors.New("draw engine cannot be nil")
	ErrNilMailer         = errors.New("mailer cannot be nil")
	ErrNilTokenGenerator = errors.New("token generator cannot be nil")
	ErrNilClock          = errors.New("clock cannot be nil")
)
