package mailer

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/santad/internal/services/mailer Service
//go:generate mockgen -package=mocks -destination=mocks/mock_sender.go github.com/KirkDiggler/santad/internal/services/mailer Sender

import "context"

// Service defines the interface for assignment notification delivery
type Service interface {
	// DispatchAssignments emails every giver who they give a gift to.
	// Delivery is best effort: individual failures are logged and counted
	// but never abort the dispatch.
	DispatchAssignments(ctx context.Context, input *DispatchAssignmentsInput) (*DispatchAssignmentsOutput, error)
}

// Sender delivers a single rendered email
type Sender interface {
	Send(ctx context.Context, email *Email) error
}
