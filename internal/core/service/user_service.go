package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/martijn/typesprint/internal/core/domain"
	"github.com/martijn/typesprint/internal/core/repository"
	"github.com/sirupsen/logrus"
)

type UserService struct {
	userRepo    repository.UserRepository
	scoreRepo   repository.ScoreRepository
	authService *AuthService
	logger      logrus.FieldLogger
}

func NewUserService(
	userRepo repository.UserRepository,
	scoreRepo repository.ScoreRepository,
	authService *AuthService,
	logger logrus.FieldLogger,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		scoreRepo:   scoreRepo,
		authService: authService,
		logger:      logger,
	}
}

func (s *UserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, NewInternalError(err)
	}
	return users, nil
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewNotFoundError("User not found")
		}
		return nil, NewInternalError(err)
	}
	return user, nil
}

// UpdateUser applies the provided fields to the caller's own record.
func (s *UserService) UpdateUser(ctx context.Context, userID int64, update domain.UserUpdate) (*domain.User, error) {
	if update.IsEmpty() {
		return nil, NewValidationError("No fields to update")
	}

	if update.Username != nil {
		if err := validateUsername(*update.Username); err != nil {
			return nil, err
		}
	}
	if update.Email != nil {
		if err := validateEmail(*update.Email); err != nil {
			return nil, err
		}
	}
	if update.Password != nil {
		if err := validatePassword(*update.Password); err != nil {
			return nil, err
		}
	}

	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.Username != nil {
		user.Username = strings.TrimSpace(*update.Username)
	}
	if update.Email != nil {
		email := normalizeEmail(*update.Email)
		if email != user.Email {
			existing, err := s.userRepo.FindByEmail(ctx, email)
			switch {
			case err == nil && existing.ID != user.ID:
				return nil, NewConflictError("Email already exists")
			case err != nil && !errors.Is(err, repository.ErrNotFound):
				return nil, NewInternalError(err)
			}
		}
		user.Email = email
	}
	if update.Password != nil {
		hash, err := s.authService.HashPassword(*update.Password)
		if err != nil {
			return nil, NewInternalError(err)
		}
		user.PasswordHash = hash
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.userRepo.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, NewConflictError("Email already exists")
		case errors.Is(err, repository.ErrNotFound):
			return nil, NewNotFoundError("User not found")
		default:
			return nil, NewInternalError(err)
		}
	}

	return user, nil
}

// DeleteUser removes the caller's record together with its scores.
func (s *UserService) DeleteUser(ctx context.Context, userID int64) error {
	fields := logrus.Fields{"user_id": userID}
	// scores are gone after the cascade, so count them first
	if scores, err := s.scoreRepo.CountByUser(ctx, userID); err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Warn("failed to count scores before delete")
	} else {
		fields["scores"] = scores
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NewNotFoundError("User not found")
		}
		return NewInternalError(err)
	}

	s.logger.WithFields(fields).Info("user deleted")
	return nil
}
