package models

// Assignment is a single giver-to-receiver edge produced by a draw
type Assignment struct {
	// GiverID is the participant who gives the gift
	GiverID int64

	// ReceiverID is the participant who receives it
	ReceiverID int64
}
