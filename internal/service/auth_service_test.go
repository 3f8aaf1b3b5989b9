package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"instudio/internal/domain"
)

type AuthServiceSuite struct {
	ServiceSuite
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceSuite))
}

func (s *AuthServiceSuite) TestRegisterReturnsActiveUserWithoutPassword() {
	resp, err := s.auth.Register(s.ctx, domain.RegisterUserRequest{
		Username: "alice",
		Password: "secret1",
		Role:     "customer",
	})
	s.Require().NoError(err)
	s.Equal("alice", resp.Username)
	s.Equal(domain.StatusActive, resp.Status)
}

func (s *AuthServiceSuite) TestRegisterRejectsBadUsernameForAnyPassword() {
	for _, pw := range []string{"secret1", "x", "SECRET1", ""} {
		for _, username := range []string{"abc", "ABCDEFG", "12345678"} {
			_, err := s.auth.Register(s.ctx, domain.RegisterUserRequest{Username: username, Password: pw, Role: "customer"})
			s.ErrorIs(err, domain.ErrValidation, "username %q password %q", username, pw)
		}
	}
}

func (s *AuthServiceSuite) TestRegisterNamesFailingField() {
	_, err := s.auth.Register(s.ctx, domain.RegisterUserRequest{Username: "ABCDE", Password: "secret1", Role: "customer"})
	s.EqualError(err, msgBadUsername)

	_, err = s.auth.Register(s.ctx, domain.RegisterUserRequest{Username: "alice", Password: "SECRET", Role: "customer"})
	s.EqualError(err, msgBadPassword)

	_, err = s.auth.Register(s.ctx, domain.RegisterUserRequest{Username: "ABCDE", Password: "abc", Role: "customer"})
	s.EqualError(err, msgBadCredentials)
}

func (s *AuthServiceSuite) TestRegisterTwiceConflicts() {
	first := s.register("alice", domain.RoleCustomer)

	_, err := s.auth.Register(s.ctx, domain.RegisterUserRequest{Username: "alice", Password: "other12", Role: "admin"})
	s.ErrorIs(err, domain.ErrConflict)

	user, err := s.users.Get(s.ctx, first)
	s.Require().NoError(err)
	s.Equal(domain.RoleCustomer, user.Role)
}

func (s *AuthServiceSuite) TestUsernameMatchIsCaseSensitive() {
	s.register("alice", domain.RoleCustomer)
	_, err := s.auth.Register(s.ctx, domain.RegisterUserRequest{Username: "Alice", Password: "secret1", Role: "customer"})
	s.NoError(err)
}

func (s *AuthServiceSuite) TestLoginFailuresAreIndistinguishable() {
	s.register("alice", domain.RoleCustomer)

	_, wrongPassword := s.auth.Login(s.ctx, domain.LoginUserRequest{Username: "alice", Password: "wrong12"})
	_, unknownUser := s.auth.Login(s.ctx, domain.LoginUserRequest{Username: "nobody", Password: "secret1"})

	s.ErrorIs(wrongPassword, domain.ErrUnauthorized)
	s.ErrorIs(unknownUser, domain.ErrUnauthorized)
	s.Equal(wrongPassword.Error(), unknownUser.Error())
	s.Equal(msgLoginFailed, wrongPassword.Error())
}

func (s *AuthServiceSuite) TestLoginRejectsDeactivatedUser() {
	id := s.register("alice", domain.RoleCustomer)
	s.deactivate(id)

	_, err := s.auth.Login(s.ctx, domain.LoginUserRequest{Username: "alice", Password: "secret1"})
	s.EqualError(err, msgLoginFailed)
}

func (s *AuthServiceSuite) TestLoginIssuesTokenAndLogoutRevokesIt() {
	id := s.register("alice", domain.RoleCustomer)

	resp, err := s.auth.Login(s.ctx, domain.LoginUserRequest{Username: "alice", Password: "secret1"})
	s.Require().NoError(err)
	s.Equal(id, resp.ID)
	s.NotEmpty(resp.Token)

	claims, err := s.tokens.Parse(s.ctx, resp.Token)
	s.Require().NoError(err)
	s.Equal(id, claims.UserID)

	s.Require().NoError(s.auth.Logout(s.ctx, resp.Token))
	_, err = s.tokens.Parse(s.ctx, resp.Token)
	s.ErrorIs(err, domain.ErrUnauthorized)
}

func TestMatchesPattern(t *testing.T) {
	assert.True(t, matchesPattern("abcde", 5))
	assert.True(t, matchesPattern("ABCDe", 5))
	assert.False(t, matchesPattern("abcd", 5))
	assert.False(t, matchesPattern("ABCDE", 5))
	assert.False(t, matchesPattern("abc\nde", 5))
}
