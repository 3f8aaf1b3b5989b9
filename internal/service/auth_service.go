package service

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"instudio/internal/domain"
	"instudio/pkg/logger"
	"instudio/pkg/metrics"
)

const (
	minUsernameLength = 5
	minPasswordLength = 6

	msgBadUsername      = "Wrong regex. Please re-enter the username."
	msgBadPassword      = "Wrong regex. Please re-enter the password."
	msgBadCredentials   = "Wrong regex. Please re-enter the username and the password."
	msgLoginFailed      = "Login Failed: Username & password doesn't match."
	msgTokenNotSupplied = "Token is required."
)

type AuthService struct {
	base
	hasher domain.PasswordHasher
	tokens domain.TokenManager
}

func NewAuthService(
	uow domain.UnitOfWork,
	validate domain.Validator,
	hasher domain.PasswordHasher,
	tokens domain.TokenManager,
	logger logger.Logger,
	opts ...Option,
) *AuthService {
	return &AuthService{
		base:   newBase(uow, validate, logger, opts),
		hasher: hasher,
		tokens: tokens,
	}
}

// matchesPattern reports whether s has at least minLen characters on a
// single line and contains a lowercase ASCII letter.
func matchesPattern(s string, minLen int) bool {
	if utf8.RuneCountInString(s) < minLen || strings.ContainsAny(s, "\n\r") {
		return false
	}
	return strings.IndexFunc(s, func(r rune) bool {
		return r <= unicode.MaxASCII && unicode.IsLower(r)
	}) >= 0
}

func checkCredentialPatterns(username, password string) error {
	userOK := matchesPattern(username, minUsernameLength)
	passOK := matchesPattern(password, minPasswordLength)

	switch {
	case !userOK && !passOK:
		return domain.NewValidationError(msgBadCredentials)
	case !userOK:
		return domain.NewValidationError(msgBadUsername)
	case !passOK:
		return domain.NewValidationError(msgBadPassword)
	}
	return nil
}

func (s *AuthService) Register(ctx context.Context, req domain.RegisterUserRequest) (*domain.UserResponse, error) {
	if err := s.validate.Validate(&req); err != nil {
		return nil, err
	}
	if err := checkCredentialPatterns(req.Username, req.Password); err != nil {
		s.logger.WarnContext(ctx, "Registration rejected", map[string]interface{}{"reason": err.Error()})
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           s.newID(),
		Username:     req.Username,
		PasswordHash: hash,
		Role:         domain.Role(req.Role),
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		Status:       domain.StatusActive,
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, repos domain.Repositories) error {
		taken, err := repos.Users().ExistsByUsername(ctx, req.Username)
		if err != nil {
			return err
		}
		if taken {
			return domain.NewConflictError(domain.MsgUsernameTaken)
		}
		if err := repos.Users().Create(ctx, user); err != nil {
			return err
		}
		return s.audit(ctx, repos, domain.EntityTypeUser, user.ID, domain.ActionTypeCreate, user.ID, "registered "+user.Username)
	})
	if err != nil {
		metrics.RecordAuthAttempt("register", "failure")
		return nil, err
	}

	metrics.RecordAuthAttempt("register", "success")
	s.logger.InfoContext(ctx, "User registered", map[string]interface{}{"user_id": user.ID, "role": user.Role})
	return domain.NewUserResponse(user), nil
}

// Login answers every credential failure with the same error, whether the
// username is unknown, the password is wrong, or the account is inactive.
func (s *AuthService) Login(ctx context.Context, req domain.LoginUserRequest) (*domain.TokenResponse, error) {
	if err := s.validate.Validate(&req); err != nil {
		return nil, err
	}

	var user *domain.User
	err := s.uow.ReadOnly(ctx, func(ctx context.Context, repos domain.Repositories) error {
		var err error
		user, err = repos.Users().FindByUsername(ctx, req.Username)
		return err
	})
	if err != nil {
		return nil, err
	}

	if user == nil || !s.hasher.Compare(user.PasswordHash, req.Password) || !user.IsActive() {
		metrics.RecordAuthAttempt("login", "failure")
		s.logger.WarnContext(ctx, "Login failed", map[string]interface{}{"username": req.Username})
		return nil, domain.NewUnauthorizedError(msgLoginFailed)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	metrics.RecordAuthAttempt("login", "success")
	s.logger.InfoContext(ctx, "User logged in", map[string]interface{}{"user_id": user.ID})

	return &domain.TokenResponse{
		ID:       user.ID,
		Token:    token,
		Username: user.Username,
		Name:     user.Name,
		Role:     user.Role,
		Status:   user.Status,
	}, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return domain.NewValidationError(msgTokenNotSupplied)
	}
	if err := s.tokens.Revoke(ctx, token); err != nil {
		return err
	}
	metrics.RecordAuthAttempt("logout", "success")
	return nil
}
