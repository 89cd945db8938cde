package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/auth"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/repository"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/validation"
)

// AuthService handles account registration, sign-in and profile changes.
type AuthService struct {
	userRepo   *repository.UserRepository
	tokens     *auth.TokenManager
	bcryptCost int
	now        Clock
}

// NewAuthService creates a new AuthService with the provided dependencies.
func NewAuthService(
	userRepo *repository.UserRepository,
	tokens *auth.TokenManager,
	bcryptCost int,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		now:        time.Now,
	}
}

// WithClock replaces the clock used for account timestamps.
func (s *AuthService) WithClock(now Clock) *AuthService {
	s.now = now
	return s
}

// Session is an authenticated user together with their token.
type Session struct {
	User  model.User
	Token string
}

// Register creates an account and signs it in.
// Returns apperrors.ErrEmailTaken when the email is already registered.
func (s *AuthService) Register(ctx context.Context, req request.RegisterRequest) (Session, error) {
	email := validation.NormalizeEmail(req.Email)

	taken, err := s.userRepo.EmailTaken(ctx, email, "")
	if err != nil {
		return Session{}, err
	}
	if taken {
		return Session{}, apperrors.ErrEmailTaken
	}

	hash, err := auth.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return Session{}, err
	}

	user := model.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.userRepo.InsertUser(ctx, &user); err != nil {
		return Session{}, err
	}

	return s.session(user)
}

// Login verifies credentials and issues a token.
// Unknown email and wrong password both return apperrors.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, req request.LoginRequest) (Session, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, validation.NormalizeEmail(req.Email))
	if errors.Is(err, apperrors.ErrUserNotFound) {
		return Session{}, apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return Session{}, err
	}

	ok, err := auth.CheckPassword(user.PasswordHash, req.Password)
	if err != nil {
		return Session{}, err
	}
	if !ok {
		return Session{}, apperrors.ErrInvalidCredentials
	}

	return s.session(user)
}

func (s *AuthService) session(user model.User) (Session, error) {
	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return Session{}, fmt.Errorf("failed to issue token: %w", err)
	}
	return Session{User: user, Token: token}, nil
}

// Authenticate resolves a token to its user ID.
func (s *AuthService) Authenticate(token string) (string, error) {
	if token == "" {
		return "", apperrors.ErrMissingToken
	}
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// TokenTTL is the lifetime of issued tokens, used for the session cookie.
func (s *AuthService) TokenTTL() time.Duration {
	return s.tokens.TTL()
}

// GetUser returns the account with the given ID.
func (s *AuthService) GetUser(ctx context.Context, userID string) (model.User, error) {
	return s.userRepo.GetUserByID(ctx, userID)
}

// UpdateProfile changes name and email.
// Returns apperrors.ErrEmailTaken when another account uses the email.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, req request.UpdateProfileRequest) (model.User, error) {
	email := validation.NormalizeEmail(req.Email)

	taken, err := s.userRepo.EmailTaken(ctx, email, userID)
	if err != nil {
		return model.User{}, err
	}
	if taken {
		return model.User{}, apperrors.ErrEmailTaken
	}

	if err := s.userRepo.UpdateProfile(ctx, userID, strings.TrimSpace(req.Name), email); err != nil {
		return model.User{}, err
	}

	return s.userRepo.GetUserByID(ctx, userID)
}

// UpdatePassword replaces the password after checking the current one.
// Returns apperrors.ErrIncorrectPassword when the current password does not match.
func (s *AuthService) UpdatePassword(ctx context.Context, userID string, req request.UpdatePasswordRequest) error {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	ok, err := auth.CheckPassword(user.PasswordHash, req.CurrentPassword)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.ErrIncorrectPassword
	}

	hash, err := auth.HashPassword(req.NewPassword, s.bcryptCost)
	if err != nil {
		return err
	}

	return s.userRepo.UpdatePasswordHash(ctx, userID, hash)
}
