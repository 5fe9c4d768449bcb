package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/wordsnpics/wordsnpics/internal/dependencies/mocks"
	"github.com/wordsnpics/wordsnpics/internal/model"
	"github.com/wordsnpics/wordsnpics/internal/storage/memory"
	"github.com/wordsnpics/wordsnpics/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC))
	s.service = New(s.storage, s.clock, DefaultConfig(), testutil.NopLogger())
	s.ctx = context.Background()
}

// Guest tests

func (s *ServiceSuite) TestCreateGuestPlayer() {
	session, err := s.service.CreateGuestPlayer(s.ctx, "Visitor")
	s.Require().NoError(err)

	s.NotEmpty(session.Token)
	s.True(session.Player.IsGuest)
	s.Equal("Visitor", session.Player.DisplayName)
	s.NotEmpty(session.ProfileID)

	// Player and default profile are persisted
	player, err := s.storage.GetPlayer(s.ctx, session.PlayerID)
	s.Require().NoError(err)
	s.True(player.IsGuest)

	profiles, err := s.storage.GetProfilesForPlayer(s.ctx, session.PlayerID)
	s.Require().NoError(err)
	s.Require().Len(profiles, 1)
	s.True(profiles[0].IsDefault)
}

// Register and login tests

func (s *ServiceSuite) TestRegisterPlayer() {
	session, err := s.service.RegisterPlayer(s.ctx, "alice", "hunter22", "Alice")
	s.Require().NoError(err)

	s.False(session.Player.IsGuest)
	s.Equal("Alice", session.Player.DisplayName)

	// Password hash never stores the plaintext
	registered, err := s.storage.GetRegisteredPlayerByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.NotEqual("hunter22", registered.PasswordHash)
	s.NotEmpty(registered.PasswordHash)
}

func (s *ServiceSuite) TestRegisterDuplicateUsername() {
	_, err := s.service.RegisterPlayer(s.ctx, "alice", "hunter22", "Alice")
	s.Require().NoError(err)

	_, err = s.service.RegisterPlayer(s.ctx, "alice", "other", "Imposter")
	s.ErrorIs(err, ErrUsernameExists)
}

func (s *ServiceSuite) TestLoginSucceeds() {
	_, err := s.service.RegisterPlayer(s.ctx, "alice", "hunter22", "Alice")
	s.Require().NoError(err)

	session, err := s.service.Login(s.ctx, "alice", "hunter22")
	s.Require().NoError(err)
	s.Equal("Alice", session.Player.DisplayName)
	s.NotEmpty(session.ProfileID)
}

func (s *ServiceSuite) TestLoginWrongPassword() {
	_, err := s.service.RegisterPlayer(s.ctx, "alice", "hunter22", "Alice")
	s.Require().NoError(err)

	_, err = s.service.Login(s.ctx, "alice", "wrong")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestLoginUnknownUser() {
	_, err := s.service.Login(s.ctx, "nobody", "whatever")
	s.ErrorIs(err, ErrInvalidCredentials)
}

// Session tests

func (s *ServiceSuite) TestValidateSession() {
	created, err := s.service.CreateGuestPlayer(s.ctx, "Visitor")
	s.Require().NoError(err)

	session, err := s.service.ValidateSession(created.Token)
	s.Require().NoError(err)
	s.Equal(created.PlayerID, session.PlayerID)
}

func (s *ServiceSuite) TestValidateSessionUnknownToken() {
	_, err := s.service.ValidateSession("bogus")
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestValidateSessionExpired() {
	created, err := s.service.CreateGuestPlayer(s.ctx, "Visitor")
	s.Require().NoError(err)

	s.clock.Advance(25 * time.Hour)

	_, err = s.service.ValidateSession(created.Token)
	s.ErrorIs(err, ErrInvalidSession)
}

// Profile tests

func (s *ServiceSuite) TestCreateProfile() {
	session, err := s.service.CreateGuestPlayer(s.ctx, "Visitor")
	s.Require().NoError(err)

	profile, err := s.service.CreateProfile(s.ctx, session.PlayerID, "Kid")
	s.Require().NoError(err)
	s.Equal("Kid", profile.Name)
	s.False(profile.IsDefault)

	profiles, err := s.service.GetProfiles(s.ctx, session.PlayerID)
	s.Require().NoError(err)
	s.Len(profiles, 2)
}

func (s *ServiceSuite) TestCreateProfileUnknownPlayer() {
	_, err := s.service.CreateProfile(s.ctx, model.PlayerID("ghost"), "Kid")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}
