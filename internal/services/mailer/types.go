package mailer

// AssignmentDetail carries everything one giver's email needs. It names the
// giver's receiver, never the giver's own giver.
type AssignmentDetail struct {
	// GiverName is the display name of the person the email goes to
	GiverName string

	// GiverEmail is the address the email goes to
	GiverEmail string

	// ReceiverName is who the giver must give a gift to
	ReceiverName string

	// ReceiverNote holds the receiver's gift preferences, may be empty
	ReceiverNote string
}

// DispatchAssignmentsInput contains the assignments to deliver
type DispatchAssignmentsInput struct {
	// RoomName is the display name of the exchange, used in the subject
	RoomName string

	// Assignments is one entry per giver
	Assignments []*AssignmentDetail
}

// DispatchAssignmentsOutput reports how delivery went
type DispatchAssignmentsOutput struct {
	// Sent is the number of emails accepted by the provider
	Sent int

	// Failed is the number of emails that could not be sent
	Failed int
}

// Email is a single rendered outbound message
type Email struct {
	// To is the recipient address
	To string

	// Subject is the subject line
	Subject string

	// HTML is the rendered message body
	HTML string
}
