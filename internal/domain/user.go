package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User validation errors
var (
	ErrUserEmailEmpty      = fmt.Errorf("%w: email cannot be empty", ErrValidation)
	ErrUserEmailInvalid    = fmt.Errorf("%w: invalid email format", ErrValidation)
	ErrUserPasswordTooShort = fmt.Errorf("%w: password must be at least 12 characters", ErrValidation)
	ErrUserPasswordTooLong  = fmt.Errorf("%w: password must be at most 72 characters", ErrValidation)
)

// User represents a registered learner.
type User struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	Password       string    `json:"-"` // plaintext, only during registration; hashed before storage
	HashedPassword string    `json:"-"` // never exposed in JSON
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a User with the given email and plaintext password.
// The caller must hash the password before storing the user.
// Returns an error if validation fails.
func NewUser(email, password string, now time.Time) (*User, error) {
	user := &User{
		ID:        uuid.New(),
		Email:     email,
		Password:  password,
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.Email == "" {
		return ErrUserEmailEmpty
	}
	at := strings.Index(u.Email, "@")
	if at <= 0 || at == len(u.Email)-1 || !strings.Contains(u.Email[at:], ".") {
		return ErrUserEmailInvalid
	}
	if u.Password != "" {
		// bcrypt truncates beyond 72 bytes, so longer passwords are refused
		// rather than silently weakened.
		if len(u.Password) < 12 {
			return ErrUserPasswordTooShort
		}
		if len(u.Password) > 72 {
			return ErrUserPasswordTooLong
		}
	}
	return nil
}
