package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// DefaultRole is assigned to users created without an explicit role.
const DefaultRole = "User"

// MaxPasswordLength is bcrypt's input limit in bytes.
const MaxPasswordLength = 72

// Common validation errors. Each wraps ErrValidation.
var (
	ErrEmptyUserID     = fmt.Errorf("%w: user ID cannot be empty", ErrValidation)
	ErrEmptyUsername   = fmt.Errorf("%w: username cannot be empty", ErrValidation)
	ErrUsernameTooLong = fmt.Errorf("%w: username must be at most 255 characters long", ErrValidation)
	ErrEmptyPassword   = fmt.Errorf("%w: password cannot be empty", ErrValidation)
	ErrPasswordTooLong = fmt.Errorf("%w: password must be at most 72 bytes long", ErrValidation)
)

// User is an account that can log in to obtain a token.
type User struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	Password       string    `json:"-"` // Plaintext password, used temporarily before hashing
	HashedPassword string    `json:"-"` // Never expose password hash in JSON
	Role           string    `json:"role"`
	CreatedAt      time.Time `json:"createdAt"`
}

// NewUser creates a new User with a fresh UUID and creation timestamp.
// An empty role becomes DefaultRole. Returns an error if validation fails.
//
// The plaintext password is hashed by the UserStore when the user is created.
func NewUser(username, password, role string) (*User, error) {
	role = strings.TrimSpace(role)
	if role == "" {
		role = DefaultRole
	}

	user := &User{
		ID:        uuid.New(),
		Username:  strings.TrimSpace(username),
		Password:  password,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// A user must carry either a plaintext password (before hashing) or a hash.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if u.Username == "" {
		return ErrEmptyUsername
	}
	if utf8.RuneCountInString(u.Username) > 255 {
		return ErrUsernameTooLong
	}

	if u.Password != "" {
		if len(u.Password) > MaxPasswordLength {
			return ErrPasswordTooLong
		}
	} else if u.HashedPassword == "" {
		return ErrEmptyPassword
	}

	return nil
}
