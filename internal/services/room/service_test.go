package room

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	clockMocks "github.com/KirkDiggler/santad/internal/common/clock/mocks"
	tokenMocks "github.com/KirkDiggler/santad/internal/common/token/mocks"
	drawMocks "github.com/KirkDiggler/santad/internal/draw/mocks"
	"github.com/KirkDiggler/santad/internal/models"
	roomRepo "github.com/KirkDiggler/santad/internal/repositories/room"
	repoMocks "github.com/KirkDiggler/santad/internal/repositories/room/mocks"
	"github.com/KirkDiggler/santad/internal/services/mailer"
	mailerMocks "github.com/KirkDiggler/santad/internal/services/mailer/mocks"
)

type RoomServiceTestSuite struct {
	suite.Suite
	mockCtrl   *gomock.Controller
	mockRepo   *repoMocks.MockRepository
	mockEngine *drawMocks.MockEngine
	mockMailer *mailerMocks.MockService
	mockTokens *tokenMocks.MockGenerator
	mockClock  *clockMocks.MockClock
	service    Service
	ctx        context.Context

	// Test data
	testTime     time.Time
	testRoomID   string
	testAdminKey string

	expectedRoom *models.Room
	testRoster   []*models.Participant
	testCycle    []models.Assignment
	drawInput    *DrawNamesInput
	dispatchedOK *mailer.DispatchAssignmentsOutput
}

func (s *RoomServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockRepo = repoMocks.NewMockRepository(s.mockCtrl)
	s.mockEngine = drawMocks.NewMockEngine(s.mockCtrl)
	s.mockMailer = mailerMocks.NewMockService(s.mockCtrl)
	s.mockTokens = tokenMocks.NewMockGenerator(s.mockCtrl)
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)

	service, err := New(&Config{
		RoomRepo:       s.mockRepo,
		DrawEngine:     s.mockEngine,
		Mailer:         s.mockMailer,
		TokenGenerator: s.mockTokens,
		Clock:          s.mockClock,
	})
	s.Require().NoError(err)
	s.service = service

	s.ctx = context.Background()

	s.testTime = time.Date(2025, 12, 1, 10, 0, 0, 0, time.UTC)
	s.testRoomID = "test-room-id"
	s.testAdminKey = "test-admin-key"

	s.expectedRoom = &models.Room{
		ID:             s.testRoomID,
		Name:           "Office Party",
		OrganizerName:  "Alice",
		OrganizerEmail: "alice@example.com",
		AdminKey:       s.testAdminKey,
		CreatedAt:      s.testTime,
	}

	s.testRoster = []*models.Participant{
		{ID: 1, RoomID: s.testRoomID, Name: "Alice", Email: "alice@example.com"},
		{ID: 2, RoomID: s.testRoomID, Name: "Bob", Email: "bob@example.com", Note: "Socks"},
		{ID: 3, RoomID: s.testRoomID, Name: "Carol", Email: "carol@example.com"},
	}

	s.testCycle = []models.Assignment{
		{GiverID: 1, ReceiverID: 2},
		{GiverID: 2, ReceiverID: 3},
		{GiverID: 3, ReceiverID: 1},
	}

	s.drawInput = &DrawNamesInput{
		RoomID:   s.testRoomID,
		AdminKey: s.testAdminKey,
	}

	s.dispatchedOK = &mailer.DispatchAssignmentsOutput{Sent: 3}
}

func (s *RoomServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestRoomServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RoomServiceTestSuite))
}

func (s *RoomServiceTestSuite) expectGetRoom(room *models.Room) {
	s.mockRepo.EXPECT().
		GetRoom(s.ctx, &roomRepo.GetRoomInput{RoomID: s.testRoomID}).
		Return(room, nil)
}

func (s *RoomServiceTestSuite) TestNewValidatesConfig() {
	_, err := New(nil)
	s.Require().ErrorIs(err, ErrNilConfig)

	_, err = New(&Config{})
	s.Require().ErrorIs(err, ErrNilRoomRepo)

	_, err = New(&Config{RoomRepo: s.mockRepo})
	s.Require().ErrorIs(err, ErrNilDrawEngine)
}

func (s *RoomServiceTestSuite) TestCreateRoom() {
	s.mockTokens.EXPECT().NewRoomID().Return(s.testRoomID)
	s.mockTokens.EXPECT().NewAdminKey().Return(s.testAdminKey)
	s.mockClock.EXPECT().Now().Return(s.testTime)

	s.mockRepo.EXPECT().
		CreateRoom(s.ctx, &roomRepo.CreateRoomInput{Room: s.expectedRoom}).
		Return(nil)

	// The organizer joins automatically
	s.mockRepo.EXPECT().
		AddParticipant(s.ctx, &roomRepo.AddParticipantInput{
			RoomID:   s.testRoomID,
			Name:     "Alice",
			Email:    "alice@example.com",
			JoinedAt: s.testTime,
		}).
		Return(s.testRoster[0], nil)

	output, err := s.service.CreateRoom(s.ctx, &CreateRoomInput{
		Name:           "Office Party",
		OrganizerName:  "Alice",
		OrganizerEmail: "alice@example.com",
	})
	s.Require().NoError(err)
	s.Require().NotNil(output)

	s.Equal(s.testRoomID, output.Room.ID)
	s.Equal(s.testAdminKey, output.Room.AdminKey)
	s.False(output.Room.IsDrawn)
}

func (s *RoomServiceTestSuite) TestGetRoomNotFound() {
	s.mockRepo.EXPECT().
		GetRoom(s.ctx, gomock.Any()).
		Return(nil, roomRepo.ErrRoomNotFound)

	_, err := s.service.GetRoom(s.ctx, &GetRoomInput{RoomID: s.testRoomID})
	s.Require().ErrorIs(err, ErrRoomNotFound)
}

func (s *RoomServiceTestSuite) TestGetRoomHidesAdminKey() {
	s.expectGetRoom(s.expectedRoom)
	s.mockRepo.EXPECT().
		GetParticipants(s.ctx, &roomRepo.GetParticipantsInput{RoomID: s.testRoomID}).
		Return(s.testRoster, nil)

	output, err := s.service.GetRoom(s.ctx, &GetRoomInput{RoomID: s.testRoomID})
	s.Require().NoError(err)

	s.Empty(output.Room.AdminKey)
	s.Len(output.Participants, 3)

	// The stored room must keep its key
	s.Equal(s.testAdminKey, s.expectedRoom.AdminKey)
}

func (s *RoomServiceTestSuite) TestGetAdminRoomWrongKey() {
	s.expectGetRoom(s.expectedRoom)

	_, err := s.service.GetAdminRoom(s.ctx, &GetAdminRoomInput{
		RoomID:   s.testRoomID,
		AdminKey: "wrong-key",
	})
	s.Require().ErrorIs(err, ErrUnauthorized)
}

func (s *RoomServiceTestSuite) TestGetAdminRoomBeforeDraw() {
	s.expectGetRoom(s.expectedRoom)
	s.mockRepo.EXPECT().
		GetParticipants(s.ctx, gomock.Any()).
		Return(s.testRoster, nil)

	output, err := s.service.GetAdminRoom(s.ctx, &GetAdminRoomInput{
		RoomID:   s.testRoomID,
		AdminKey: s.testAdminKey,
	})
	s.Require().NoError(err)

	s.Len(output.Participants, 3)
	for _, p := range output.Participants {
		s.Nil(p.AssignedTo)
	}
}

func (s *RoomServiceTestSuite) TestGetAdminRoomAfterDraw() {
	drawnRoom := *s.expectedRoom
	drawnRoom.IsDrawn = true

	two, three, one := int64(2), int64(3), int64(1)
	drawnRoster := []*models.Participant{
		{ID: 1, RoomID: s.testRoomID, Name: "Alice", AssignedToID: &two},
		{ID: 2, RoomID: s.testRoomID, Name: "Bob", AssignedToID: &three},
		{ID: 3, RoomID: s.testRoomID, Name: "Carol", AssignedToID: &one},
	}

	s.expectGetRoom(&drawnRoom)
	s.mockRepo.EXPECT().
		GetParticipants(s.ctx, gomock.Any()).
		Return(drawnRoster, nil)

	output, err := s.service.GetAdminRoom(s.ctx, &GetAdminRoomInput{
		RoomID:   s.testRoomID,
		AdminKey: s.testAdminKey,
	})
	s.Require().NoError(err)

	s.Require().Len(output.Participants, 3)
	s.Equal("Bob", output.Participants[0].AssignedTo.Name)
	s.Equal("Carol", output.Participants[1].AssignedTo.Name)
	s.Equal("Alice", output.Participants[2].AssignedTo.Name)
}

func (s *RoomServiceTestSuite) TestJoinRoom() {
	s.expectGetRoom(s.expectedRoom)
	s.mockClock.EXPECT().Now().Return(s.testTime)

	s.mockRepo.EXPECT().
		AddParticipant(s.ctx, &roomRepo.AddParticipantInput{
			RoomID:   s.testRoomID,
			Name:     "Dave",
			Email:    "dave@example.com",
			Note:     "No candles please",
			JoinedAt: s.testTime,
		}).
		Return(&models.Participant{ID: 4, RoomID: s.testRoomID, Name: "Dave"}, nil)

	output, err := s.service.JoinRoom(s.ctx, &JoinRoomInput{
		RoomID: s.testRoomID,
		Name:   "Dave",
		Email:  "dave@example.com",
		Note:   "No candles please",
	})
	s.Require().NoError(err)
	s.Equal(int64(4), output.Participant.ID)
}

func (s *RoomServiceTestSuite) TestJoinRoomDuplicateEmail() {
	s.expectGetRoom(s.expectedRoom)
	s.mockClock.EXPECT().Now().Return(s.testTime)

	s.mockRepo.EXPECT().
		AddParticipant(s.ctx, gomock.Any()).
		Return(nil, roomRepo.ErrEmailTaken)

	_, err := s.service.JoinRoom(s.ctx, &JoinRoomInput{
		RoomID: s.testRoomID,
		Name:   "Dave",
		Email:  "alice@example.com",
	})
	s.Require().ErrorIs(err, ErrDuplicateEmail)
}

func (s *RoomServiceTestSuite) TestJoinRoomNotFound() {
	s.mockRepo.EXPECT().
		GetRoom(s.ctx, gomock.Any()).
		Return(nil, roomRepo.ErrRoomNotFound)

	_, err := s.service.JoinRoom(s.ctx, &JoinRoomInput{
		RoomID: "missing-room-id",
		Name:   "Dave",
		Email:  "dave@example.com",
	})
	s.Require().ErrorIs(err, ErrRoomNotFound)
}

func (s *RoomServiceTestSuite) TestDrawNames() {
	s.expectGetRoom(s.expectedRoom)
	s.mockRepo.EXPECT().
		GetParticipants(s.ctx, gomock.Any()).
		Return(s.testRoster, nil)
	s.mockEngine.EXPECT().
		Compute(s.testRoster).
		Return(s.testCycle, nil)

	// Emails must go out only after the commit succeeded
	commit := s.mockRepo.EXPECT().
		CommitDraw(s.ctx, &roomRepo.CommitDrawInput{
			RoomID:      s.testRoomID,
			Assignments: s.testCycle,
		}).
		Return(nil)
	dispatch := s.mockMailer.EXPECT().
		DispatchAssignments(gomock.Any(), &mailer.DispatchAssignmentsInput{
			RoomName: "Office Party",
			Assignments: []*mailer.AssignmentDetail{
				{GiverName: "Alice", GiverEmail: "alice@example.com", ReceiverName: "Bob", ReceiverNote: "Socks"},
				{GiverName: "Bob", GiverEmail: "bob@example.com", ReceiverName: "Carol"},
				{GiverName: "Carol", GiverEmail: "carol@example.com", ReceiverName: "Alice"},
			},
		}).
		Return(s.dispatchedOK, nil)
	gomock.InOrder(commit, dispatch)

	output, err := s.service.DrawNames(s.ctx, s.drawInput)
	s.Require().NoError(err)
	s.Equal(3, output.ParticipantCount)
}

func (s *RoomServiceTestSuite) TestDrawNamesRoomNotFound() {
	s.mockRepo.EXPECT().
		GetRoom(s.ctx, gomock.Any()).
		Return(nil, roomRepo.ErrRoomNotFound)

	_, err := s.service.DrawNames(s.ctx, s.drawInput)
	s.Require().ErrorIs(err, ErrRoomNotFound)
}

func (s *RoomServiceTestSuite) TestDrawNamesWrongKey() {
	s.expectGetRoom(s.expectedRoom)

	// No roster read, no compute, no commit, no emails
	_, err := s.service.DrawNames(s.ctx, &DrawNamesInput{
		RoomID:   s.testRoomID,
		AdminKey: "wrong-key",
	})
	s.Require().ErrorIs(err, ErrUnauthorized)
}

func (s *RoomServiceTestSuite) TestDrawNamesAlreadyDrawn() {
	drawnRoom := *s.expectedRoom
	drawnRoom.IsDrawn = true
	s.expectGetRoom(&drawnRoom)

	_, err := s.service.DrawNames(s.ctx, s.drawInput)
	s.Require().ErrorIs(err, ErrAlreadyDrawn)
}

func (s *RoomServiceTestSuite) TestDrawNamesInsufficientParticipants() {
	s.expectGetRoom(s.expectedRoom)
	s.mockRepo.EXPECT().
		GetParticipants(s.ctx, gomock.Any()).
		Return(s.testRoster[:2], nil)

	_, err := s.service.DrawNames(s.ctx, s.drawInput)
	s.Require().ErrorIs(err, ErrInsufficientParticipants)
}

func (s *RoomServiceTestSuite) TestDrawNamesLostCommitRace() {
	s.expectGetRoom(s.expectedRoom)
	s.mockRepo.EXPECT().
		GetParticipants(s.ctx, gomock.Any()).
		Return(s.testRoster, nil)
	s.mockEngine.EXPECT().
		Compute(s.testRoster).
		Return(s.testCycle, nil)
	s.mockRepo.EXPECT().
		CommitDraw(s.ctx, gomock.Any()).
		Return(roomRepo.ErrAlreadyDrawn)

	// The loser of a concurrent draw reports AlreadyDrawn and sends nothing
	_, err := s.service.DrawNames(s.ctx, s.drawInput)
	s.Require().ErrorIs(err, ErrAlreadyDrawn)
}

func (s *RoomServiceTestSuite) TestDrawNamesSucceedsWhenDispatchFails() {
	s.expectGetRoom(s.expectedRoom)
	s.mockRepo.EXPECT().
		GetParticipants(s.ctx, gomock.Any()).
		Return(s.testRoster, nil)
	s.mockEngine.EXPECT().
		Compute(s.testRoster).
		Return(s.testCycle, nil)
	s.mockRepo.EXPECT().
		CommitDraw(s.ctx, gomock.Any()).
		Return(nil)
	s.mockMailer.EXPECT().
		DispatchAssignments(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("provider is down"))

	// Delivery is best effort; the committed draw stands
	output, err := s.service.DrawNames(s.ctx, s.drawInput)
	s.Require().NoError(err)
	s.Equal(3, output.ParticipantCount)
}

func (s *RoomServiceTestSuite) TestDrawNamesDispatchSurvivesCallerCancel() {
	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()

	s.mockRepo.EXPECT().
		GetRoom(ctx, gomock.Any()).
		Return(s.expectedRoom, nil)
	s.mockRepo.EXPECT().
		GetParticipants(ctx, gomock.Any()).
		Return(s.testRoster, nil)
	s.mockEngine.EXPECT().
		Compute(s.testRoster).
		Return(s.testCycle, nil)

	// The caller goes away the moment the draw is durable
	s.mockRepo.EXPECT().
		CommitDraw(ctx, gomock.Any()).
		DoAndReturn(func(context.Context, *roomRepo.CommitDrawInput) error {
			cancel()
			return nil
		})
	s.mockMailer.EXPECT().
		DispatchAssignments(gomock.Any(), gomock.Any()).
		DoAndReturn(func(dispatchCtx context.Context, _ *mailer.DispatchAssignmentsInput) (*mailer.DispatchAssignmentsOutput, error) {
			s.NoError(dispatchCtx.Err(), "dispatch must not inherit the caller's cancellation")
			return s.dispatchedOK, nil
		})

	output, err := s.service.DrawNames(ctx, s.drawInput)
	s.Require().NoError(err)
	s.Equal(3, output.ParticipantCount)
}
