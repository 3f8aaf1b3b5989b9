package service

import (
	"context"

	"instudio/internal/domain"
	"instudio/pkg/logger"
)

type UserService struct {
	base
}

func NewUserService(uow domain.UnitOfWork, validate domain.Validator, logger logger.Logger, opts ...Option) *UserService {
	return &UserService{base: newBase(uow, validate, logger, opts)}
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.UserResponse, error) {
	var user *domain.User
	err := s.uow.ReadOnly(ctx, func(ctx context.Context, repos domain.Repositories) error {
		var err error
		user, err = s.loadUser(ctx, repos, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return domain.NewUserResponse(user), nil
}

func (s *UserService) Update(ctx context.Context, id string, req domain.UpdateUserRequest) (*domain.UserResponse, error) {
	var user *domain.User
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos domain.Repositories) error {
		var err error
		if user, err = s.loadUser(ctx, repos, id); err != nil {
			return err
		}
		if err := s.validate.Validate(&req); err != nil {
			return err
		}

		if req.Name != nil {
			user.Name = *req.Name
		}
		if req.Email != nil {
			user.Email = *req.Email
		}
		if req.Phone != nil {
			user.Phone = *req.Phone
		}
		if req.Address != nil {
			user.Address = *req.Address
		}

		if err := repos.Users().Update(ctx, user); err != nil {
			return err
		}
		return s.audit(ctx, repos, domain.EntityTypeUser, user.ID, domain.ActionTypeUpdate, user.ID, "profile updated")
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "User updated", map[string]interface{}{"user_id": id})
	return domain.NewUserResponse(user), nil
}

// Delete deactivates the user. Products, images and orders it owns stay as they are.
func (s *UserService) Delete(ctx context.Context, id string) error {
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos domain.Repositories) error {
		user, err := s.loadUser(ctx, repos, id)
		if err != nil {
			return err
		}
		user.Status = domain.StatusInactive
		if err := repos.Users().Update(ctx, user); err != nil {
			return err
		}
		return s.audit(ctx, repos, domain.EntityTypeUser, user.ID, domain.ActionTypeDelete, user.ID, "")
	})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "User deactivated", map[string]interface{}{"user_id": id})
	return nil
}
