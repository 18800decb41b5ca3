// Package identity manages user accounts and the active session. It is the
// capability that tells the event store who, if anyone, is signed in.
//
// Accounts and the active session persist through the same blob storage as
// the calendar itself, so a CLI invocation stays signed in across process
// restarts. Passwords are stored as bcrypt hashes only.
package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Logical store names within the blob layer.
const (
	usersBlob   = "users"
	sessionBlob = "session"
)

// minPasswordLength is the weakest password Register accepts.
const minPasswordLength = 8

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrWeakPassword       = fmt.Errorf("password must be at least %d characters", minPasswordLength)
	ErrNotAuthenticated   = errors.New("not signed in")
)

// User is an account record. PasswordHash never leaves this package: every
// User returned by the service has it zeroed.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email" validate:"required,email"`
	Name         string `json:"name"`
	PasswordHash []byte `json:"passwordHash,omitempty"`
}

type session struct {
	UserID string `json:"userId"`
}

// BlobStore is the durable layer accounts and the session persist through.
type BlobStore interface {
	Put(ctx context.Context, name string, data []byte) error
	Get(ctx context.Context, name string) (data []byte, ok bool, err error)
	Delete(ctx context.Context, name string) error
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Service owns the user collection and the active session. It implements
// the identity capability the event store consumes: CurrentUserID.
type Service struct {
	mu      sync.Mutex
	log     *slog.Logger
	blobs   BlobStore
	users   []User
	current string
}

// Open rehydrates accounts and the active session from durable storage.
func Open(ctx context.Context, blobs BlobStore, log *slog.Logger) (*Service, error) {
	const op = "identity.Open"

	s := &Service{log: log, blobs: blobs}

	data, ok, err := blobs.Get(ctx, usersBlob)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if ok && len(data) > 0 {
		if err := json.Unmarshal(data, &s.users); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	data, ok, err = blobs.Get(ctx, sessionBlob)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if ok && len(data) > 0 {
		var sess session
		if err := json.Unmarshal(data, &sess); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		// A session for a deleted account is treated as signed out.
		if s.indexByID(sess.UserID) >= 0 {
			s.current = sess.UserID
		}
	}

	return s, nil
}

// Register creates a new account and signs it in.
func (s *Service) Register(ctx context.Context, email, password, name string) (User, error) {
	const op = "identity.Register"

	if err := validate.Var(email, "required,email"); err != nil {
		return User{}, ErrInvalidEmail
	}
	if len(password) < minPasswordLength {
		return User{}, ErrWeakPassword
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexByEmail(email) >= 0 {
		s.log.Warn("registration rejected", "email", email, "error", ErrEmailTaken)
		return User{}, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("%s: %w", op, err)
	}

	user := User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
	}

	next := append(append([]User(nil), s.users...), user)
	if err := s.persistUsers(ctx, next); err != nil {
		return User{}, fmt.Errorf("%s: %w", op, err)
	}
	s.users = next

	if err := s.persistSession(ctx, user.ID); err != nil {
		return User{}, fmt.Errorf("%s: %w", op, err)
	}
	s.current = user.ID

	s.log.Info("user registered", "userID", user.ID, "email", email)
	return redact(user), nil
}

// Login verifies the credentials and makes the account the active session.
func (s *Service) Login(ctx context.Context, email, password string) (User, error) {
	const op = "identity.Login"

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexByEmail(email)
	if i < 0 {
		s.log.Warn("login failed", "email", email)
		return User{}, ErrInvalidCredentials
	}
	user := s.users[i]

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		s.log.Warn("login failed", "email", email)
		return User{}, ErrInvalidCredentials
	}

	if err := s.persistSession(ctx, user.ID); err != nil {
		return User{}, fmt.Errorf("%s: %w", op, err)
	}
	s.current = user.ID

	s.log.Info("user signed in", "userID", user.ID)
	return redact(user), nil
}

// Logout ends the active session. Logging out while signed out is a no-op.
func (s *Service) Logout(ctx context.Context) error {
	const op = "identity.Logout"

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == "" {
		return nil
	}
	if err := s.blobs.Delete(ctx, sessionBlob); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.current = ""
	return nil
}

// ChangePassword replaces the signed-in user's password after verifying the
// current one.
func (s *Service) ChangePassword(ctx context.Context, current, next string) error {
	const op = "identity.ChangePassword"

	if len(next) < minPasswordLength {
		return ErrWeakPassword
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexByID(s.current)
	if i < 0 {
		return ErrNotAuthenticated
	}

	if err := bcrypt.CompareHashAndPassword(s.users[i].PasswordHash, []byte(current)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	updated := append([]User(nil), s.users...)
	updated[i].PasswordHash = hash
	if err := s.persistUsers(ctx, updated); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.users = updated

	s.log.Info("password changed", "userID", s.current)
	return nil
}

// CurrentUserID returns the signed-in user's id, or "" when signed out.
func (s *Service) CurrentUserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// CurrentUser returns the signed-in account, if any.
func (s *Service) CurrentUser() (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexByID(s.current)
	if i < 0 {
		return User{}, false
	}
	return redact(s.users[i]), true
}

func (s *Service) indexByEmail(email string) int {
	for i, u := range s.users {
		if u.Email == email {
			return i
		}
	}
	return -1
}

func (s *Service) indexByID(id string) int {
	if id == "" {
		return -1
	}
	for i, u := range s.users {
		if u.ID == id {
			return i
		}
	}
	return -1
}

func (s *Service) persistUsers(ctx context.Context, users []User) error {
	data, err := json.Marshal(users)
	if err != nil {
		return err
	}
	return s.blobs.Put(ctx, usersBlob, data)
}

func (s *Service) persistSession(ctx context.Context, userID string) error {
	data, err := json.Marshal(session{UserID: userID})
	if err != nil {
		return err
	}
	return s.blobs.Put(ctx, sessionBlob, data)
}

func redact(u User) User {
	u.PasswordHash = nil
	return u
}
