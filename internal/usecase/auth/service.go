package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"skill-swap/internal/domain/user"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrAccountBanned          = errors.New("account is banned")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInternal               = errors.New("internal error")
)

type RegisterInput struct {
	Name             string
	Email            string
	Password         string
	Location         string
	LocationType     string
	AvailabilityType string
}

type LoginInput struct {
	Email    string
	Password string
}

// Service owns credential handling: registration, password verification and
// the ban gate. Token issuance lives one layer up.
type Service struct {
	users user.Repository
}

func NewService(users user.Repository) *Service {
	return &Service{users: users}
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (user.User, error) {
	name := strings.TrimSpace(in.Name)
	if len(name) < 2 {
		return user.User{}, ErrInvalidInput
	}
	email := normalizeEmail(in.Email)
	if email == "" {
		return user.User{}, ErrInvalidInput
	}
	if len(strings.TrimSpace(in.Password)) < 6 {
		return user.User{}, ErrInvalidInput
	}
	if in.LocationType != "" && in.LocationType != "remote" && in.LocationType != "local" {
		return user.User{}, ErrInvalidInput
	}
	if in.AvailabilityType != "" && !isValidAvailability(in.AvailabilityType) {
		return user.User{}, ErrInvalidInput
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return user.User{}, ErrInternal
	}
	if exists {
		return user.User{}, ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, ErrInternal
	}

	u := user.User{
		ID:               uuid.New(),
		Name:             name,
		Email:            email,
		PasswordHash:     string(hash),
		Location:         strings.TrimSpace(in.Location),
		LocationType:     in.LocationType,
		AvailabilityType: in.AvailabilityType,
	}

	if err := s.users.Create(ctx, u); err != nil {
		exists, exErr := s.users.ExistsByEmail(ctx, email)
		if exErr == nil && exists {
			return user.User{}, ErrEmailAlreadyRegistered
		}
		return user.User{}, ErrInternal
	}

	created, err := s.users.GetByID(ctx, u.ID)
	if err != nil {
		return user.User{}, ErrInternal
	}
	return sanitizeUser(created), nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (user.User, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return user.User{}, ErrInvalidCredentials
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrInvalidCredentials
		}
		return user.User{}, ErrInternal
	}

	if u.IsBanned {
		return user.User{}, ErrAccountBanned
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return user.User{}, ErrInvalidCredentials
	}

	return sanitizeUser(u), nil
}

func normalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 || !strings.Contains(email[at:], ".") {
		return ""
	}
	return email
}

func isValidAvailability(v string) bool {
	switch v {
	case "weekends", "weekdays", "evenings", "flexible":
		return true
	}
	return false
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
