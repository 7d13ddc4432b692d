package mailer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"sync"
	"time"
)

const (
	// defaultBatchSize is how many emails go out concurrently per batch
	defaultBatchSize = 2

	// defaultBatchDelay is the pause between batches, keeping the service
	// under the email provider's rate limit
	defaultBatchDelay = time.Second
)

// Define errors
var (
	ErrNilConfig = errors.New("config cannot be nil")
	ErrNilSender = errors.New("sender cannot be nil")
)

// assignmentTemplate renders the body of one assignment email. All
// participant-supplied text passes through html/template, so hostile names
// and notes come out escaped.
var assignmentTemplate = template.Must(template.New("assignment").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h1 style="color: #dc2626;">🎅 Secret Santa Assignment</h1>
  <p>Hi {{.GiverName}},</p>
  <p>The names have been drawn for <strong>{{.RoomName}}</strong>!</p>
  <div style="background-color: #f3f4f6; padding: 20px; border-radius: 8px; margin: 20px 0;">
    <h2 style="margin-top: 0; color: #059669;">You are Secret Santa for:</h2>
    <p style="font-size: 24px; font-weight: bold; color: #1f2937; margin: 10px 0;">
      {{.ReceiverName}}
    </p>
    {{if .ReceiverNote}}<div style="padding: 15px; background-color: white; border-radius: 5px; white-space: pre-wrap;">Gift Preferences:
{{.ReceiverNote}}</div>{{end}}
  </div>
  <p style="color: #6b7280; font-size: 14px;">
    Remember: Keep it a secret! 🤫
  </p>
</div>
`))

// service implements the Service interface
type service struct {
	sender     Sender
	batchSize  int
	batchDelay time.Duration
	logger     *slog.Logger
}

// Config holds configuration for the mailer service
type Config struct {
	// Sender delivers the rendered emails
	Sender Sender

	// BatchSize overrides the default batch size (optional)
	BatchSize int

	// BatchDelay overrides the default pause between batches (optional)
	BatchDelay time.Duration

	// Logger for delivery failures (optional, defaults to slog.Default)
	Logger *slog.Logger
}

// New creates a new mailer service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Sender == nil {
		return nil, ErrNilSender
	}

	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	batchDelay := cfg.BatchDelay
	if batchDelay <= 0 {
		batchDelay = defaultBatchDelay
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &service{
		sender:     cfg.Sender,
		batchSize:  batchSize,
		batchDelay: batchDelay,
		logger:     logger,
	}, nil
}

// DispatchAssignments renders one email per giver and sends them in fixed
// size batches. Sends within a batch run concurrently; between batches the
// service waits batchDelay.
func (s *service) DispatchAssignments(ctx context.Context, input *DispatchAssignmentsInput) (*DispatchAssignmentsOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	emails := make([]*Email, 0, len(input.Assignments))
	for _, assignment := range input.Assignments {
		email, err := renderAssignmentEmail(input.RoomName, assignment)
		if err != nil {
			return nil, fmt.Errorf("failed to render email for %s: %w", assignment.GiverEmail, err)
		}
		emails = append(emails, email)
	}

	output := &DispatchAssignmentsOutput{}

	for start := 0; start < len(emails); start += s.batchSize {
		if start > 0 {
			select {
			case <-ctx.Done():
				return output, ctx.Err()
			case <-time.After(s.batchDelay):
			}
		}

		end := min(start+s.batchSize, len(emails))
		batch := emails[start:end]

		sendErrs := make([]error, len(batch))
		var wg sync.WaitGroup
		for i, email := range batch {
			wg.Add(1)
			go func(i int, email *Email) {
				defer wg.Done()
				sendErrs[i] = s.sender.Send(ctx, email)
			}(i, email)
		}
		wg.Wait()

		for i, err := range sendErrs {
			if err != nil {
				output.Failed++
				s.logger.Warn("failed to send assignment email",
					"to", batch[i].To,
					"error", err)
				continue
			}
			output.Sent++
		}
	}

	return output, nil
}

func renderAssignmentEmail(roomName string, assignment *AssignmentDetail) (*Email, error) {
	var body bytes.Buffer
	err := assignmentTemplate.Execute(&body, struct {
		GiverName    string
		RoomName     string
		ReceiverName string
		ReceiverNote string
	}{
		GiverName:    assignment.GiverName,
		RoomName:     roomName,
		ReceiverName: assignment.ReceiverName,
		ReceiverNote: assignment.ReceiverNote,
	})
	if err != nil {
		return nil, err
	}

	return &Email{
		To:      assignment.GiverEmail,
		Subject: fmt.Sprintf("🎅 Secret Santa Assignment - %s", roomName),
		HTML:    body.String(),
	}, nil
}
