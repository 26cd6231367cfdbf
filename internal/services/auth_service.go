package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"foodlog/internal/forms"
	"foodlog/internal/models"
	"foodlog/internal/repository"
)

// AuthService registers and authenticates users.
type AuthService struct {
	users       *repository.UserRepository
	adminEmails map[string]bool
	now         func() time.Time
}

// NewAuthService creates an AuthService. Users registering with one of
// adminEmails are flagged as admins.
func NewAuthService(users *repository.UserRepository, adminEmails []string) *AuthService {
	admins := make(map[string]bool, len(adminEmails))
	for _, e := range adminEmails {
		admins[strings.ToLower(strings.TrimSpace(e))] = true
	}
	return &AuthService{users: users, adminEmails: admins, now: time.Now}
}

// Register validates the signup form and persists a user with a bcrypt hash
// of the password.
func (s *AuthService) Register(ctx context.Context, f forms.SignupForm) (*models.User, error) {
	if err := invalid(f.Validate()); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(f.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		FullName:     f.FullName,
		Username:     f.Username,
		Email:        f.Email,
		Phone:        f.Phone,
		PasswordHash: string(hashed),
		IsAdmin:      s.adminEmails[f.Email],
		CreatedOn:    s.now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and records the login time.
func (s *AuthService) Login(ctx context.Context, f forms.LoginForm) (*models.User, error) {
	if err := invalid(f.Validate()); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, f.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(f.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	now := s.now().UTC()
	if err := s.users.TouchLastLogin(ctx, user.ID, now); err != nil {
		return nil, err
	}
	user.LastLogin = &now
	return user, nil
}

// User loads the account behind a session.
func (s *AuthService) User(ctx context.Context, id int) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}
