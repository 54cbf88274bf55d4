package memory

import (
	"context"
	"strings"
	"sync"

	"compass/domain/core/entities"
	"compass/pkg/errors"
)

// UserRepository is an in-memory account store used for local development
// and tests
type UserRepository struct {
	mu      sync.RWMutex
	byID    map[string]*entities.User
	byEmail map[string]*entities.User
}

// NewUserRepository creates an empty in-memory user repository
func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[string]*entities.User),
		byEmail: make(map[string]*entities.User),
	}
}

// Save persists a new user; registering an email twice is an auth error
func (r *UserRepository) Save(ctx context.Context, user *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := strings.ToLower(user.Email())
	if _, exists := r.byEmail[email]; exists {
		return errors.NewAuthError(errors.ErrorTypeAuthExists, "an account with this email already exists")
	}
	r.byID[user.ID()] = user
	r.byEmail[email] = user
	return nil
}

// GetByEmail retrieves a user by email address
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, errors.NewNotFoundError("user")
	}
	return user, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, errors.NewNotFoundError("user")
	}
	return user, nil
}
