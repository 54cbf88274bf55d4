package entities

import (
	"net/mail"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	pkgerrors "compass/pkg/errors"
)

// MinPasswordLength is the minimum accepted password length for registration
const MinPasswordLength = 8

// User is a registered account. The password is stored only as a bcrypt hash.
type User struct {
	id           string
	email        string
	passwordHash string
	createdAt    time.Time
}

// NewUser registers a user from raw credentials, hashing the password
func NewUser(id, email, password string) (*User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, pkgerrors.NewAuthError(pkgerrors.ErrorTypeAuthBadIdentifier, "email address is not valid")
	}
	if len(password) < MinPasswordLength {
		return nil, pkgerrors.NewAuthError(pkgerrors.ErrorTypeAuthWeakSecret, "password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, pkgerrors.NewInternalError("failed to hash password").WithCause(err)
	}

	return &User{
		id:           id,
		email:        email,
		passwordHash: string(hash),
		createdAt:    time.Now(),
	}, nil
}

// ReconstructUser rebuilds a user from repository data
func ReconstructUser(id, email, passwordHash string, createdAt time.Time) *User {
	return &User{
		id:           id,
		email:        email,
		passwordHash: passwordHash,
		createdAt:    createdAt,
	}
}

// CheckPassword reports whether the candidate matches the stored hash
func (u *User) CheckPassword(candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.passwordHash), []byte(candidate)) == nil
}

func (u *User) ID() string           { return u.id }
func (u *User) Email() string        { return u.email }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) CreatedAt() time.Time { return u.createdAt }
