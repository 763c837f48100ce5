package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/app/models"
	"github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/pkg/apperrors"
	"github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/pkg/auth"
	"github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/pkg/normalize"
)

// AuthService defines the interface for account operations. There are
// no passwords in this system: possession of the email is the
// credential, matching the original desk-run deployment.
type AuthService interface {
	// Signup registers an account. Signing up with an email that is
	// already registered returns the existing account rather than an
	// error (idempotent policy).
	Signup(ctx context.Context, name, email string) (*models.User, string, error)
	// Login looks an account up by email and issues a session token.
	Login(ctx context.Context, email string) (*models.User, string, error)
	// UpdateProfile applies a partial update to non-identity fields.
	UpdateProfile(ctx context.Context, userID string, fields map[string]interface{}) (*models.User, error)
	// ListUsers returns every account. Admin only; enforced at the route.
	ListUsers(ctx context.Context) ([]*models.User, error)
}

// authServiceImpl implements the AuthService interface
type authServiceImpl struct {
	users userStore
	jwt   *auth.JWTService
}

// NewAuthService creates a new auth service instance
func NewAuthService(users userStore, jwt *auth.JWTService) AuthService {
	return &authServiceImpl{
		users: users,
		jwt:   jwt,
	}
}

func (s *authServiceImpl) Signup(ctx context.Context, name, email string) (*models.User, string, error) {
	if strings.TrimSpace(name) == "" {
		return nil, "", fmt.Errorf("%w: full name is required for registration", apperrors.ErrValidationFailed)
	}
	email = normalize.Email(email)
	if email == "" {
		return nil, "", fmt.Errorf("%w: email is required", apperrors.ErrValidationFailed)
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		// Idempotent signup: the existing account is the result.
		return s.withToken(existing)
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, "", fmt.Errorf("error checking existing account: %w", err)
	}

	created, err := s.users.Insert(ctx, &models.User{Name: strings.TrimSpace(name), Email: email})
	if err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			// Lost a race with a concurrent signup; the unique index
			// caught it. Resolve to the winner's record.
			if winner, findErr := s.users.FindByEmail(ctx, email); findErr == nil {
				return s.withToken(winner)
			}
		}
		return nil, "", fmt.Errorf("error creating account: %w", err)
	}

	return s.withToken(created)
}

func (s *authServiceImpl) Login(ctx context.Context, email string) (*models.User, string, error) {
	email = normalize.Email(email)
	if email == "" {
		return nil, "", fmt.Errorf("%w: email is required", apperrors.ErrValidationFailed)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, "", apperrors.ErrUserNotFound
		}
		return nil, "", fmt.Errorf("error looking up account: %w", err)
	}

	return s.withToken(user)
}

func (s *authServiceImpl) UpdateProfile(ctx context.Context, userID string, fields map[string]interface{}) (*models.User, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", apperrors.ErrValidationFailed)
	}

	updated, err := s.users.UpdateFields(ctx, userID, fields)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error updating profile: %w", err)
	}
	return updated, nil
}

func (s *authServiceImpl) ListUsers(ctx context.Context) ([]*models.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	return users, nil
}

func (s *authServiceImpl) withToken(user *models.User) (*models.User, string, error) {
	token, err := s.jwt.GenerateToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("error issuing session token: %w", err)
	}
	return user, token, nil
}
