package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"chatquestbot/internal/clock"
	"chatquestbot/internal/models"
	"chatquestbot/internal/repository"
)

// ErrUserNotFound is returned when a lookup targets an unknown user.
var ErrUserNotFound = errors.New("user not found")

// UserService handles registration and identity lookups.
type UserService struct {
	users     repository.UserRepository
	operators map[int64]struct{}
	clock     clock.Clock
}

// NewUserService creates a new UserService
func NewUserService(users repository.UserRepository, operatorIDs []int64, clk clock.Clock) *UserService {
	operators := make(map[int64]struct{}, len(operatorIDs))
	for _, id := range operatorIDs {
		operators[id] = struct{}{}
	}
	return &UserService{users: users, operators: operators, clock: clk}
}

// Register creates the user on first contact or refreshes their identity
// fields. Warning and ban state is untouched either way.
func (s *UserService) Register(id int64, username, firstName, lastName string) (*models.User, error) {
	user := &models.User{
		ID:         id,
		Username:   username,
		FirstName:  firstName,
		LastName:   lastName,
		IsOperator: s.IsOperator(id),
		JoinedAt:   s.clock.Now(),
	}
	if err := s.users.Upsert(user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return s.users.FindByID(id)
}

// IsOperator reports whether the id is in the configured operator set.
func (s *UserService) IsOperator(id int64) bool {
	_, ok := s.operators[id]
	return ok
}

// IsBanned reports whether the user is banned. Unknown users are not.
func (s *UserService) IsBanned(id int64) (bool, error) {
	return s.users.IsBanned(id)
}

// Find returns a user by platform id.
func (s *UserService) Find(id int64) (*models.User, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// FindByUsername returns a user by their public username.
func (s *UserService) FindByUsername(username string) (*models.User, error) {
	user, err := s.users.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}
