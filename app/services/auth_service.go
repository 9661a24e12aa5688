// Package services holds the business logic. Services receive
// repositories, return domain models, and surface every failure as a
// tagged apperr so controllers map them to the response envelope
// uniformly.
package services

import (
	"gorm.io/gorm"

	"github.com/aymanhs/souq/app/models"
	"github.com/aymanhs/souq/app/repositories"
	"github.com/aymanhs/souq/pkg/apperr"
	"github.com/aymanhs/souq/pkg/auth"
)

// AuthService implements signup, login and password change.
type AuthService struct {
	users *repositories.UserRepository
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{users: repositories.NewUserRepository(db)}
}

// TokenPair is the credential set returned on login/signup.
type TokenPair struct {
	AccessToken  string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// Signup creates a new account and returns it with a signed token pair.
// Role is always USER; privileged roles are assigned out of band.
func (s *AuthService) Signup(name, email, password string) (*models.User, *TokenPair, error) {
	taken, err := s.users.EmailTaken(email)
	if err != nil {
		return nil, nil, apperr.Internal(err)
	}
	if taken {
		return nil, nil, apperr.InvalidOperation("Email is already registered")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, nil, apperr.Internal(err)
	}

	user := &models.User{Name: name, Email: email, Password: hash, Role: models.RoleUser}
	if err := s.users.Create(user); err != nil {
		return nil, nil, apperr.Internal(err)
	}

	pair, err := s.tokenPair(user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Login verifies credentials and returns the user with a token pair.
// Unknown email and wrong password produce the same message so the
// endpoint doesn't confirm which emails exist.
func (s *AuthService) Login(email, password string) (*models.User, *TokenPair, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, nil, apperr.Auth("Invalid email or password")
		}
		return nil, nil, apperr.Internal(err)
	}

	if !auth.CheckPassword(user.Password, password) {
		return nil, nil, apperr.Auth("Invalid email or password")
	}

	pair, err := s.tokenPair(user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// ChangePassword updates a user's password after verifying the current
// one. callerID must match userID; nobody changes another account's
// password through this endpoint.
func (s *AuthService) ChangePassword(callerID, userID uint, current, next string) error {
	if callerID != userID {
		return apperr.Forbidden("You can only change your own password")
	}

	user, err := s.users.FindByID(userID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return apperr.NotFound("User")
		}
		return apperr.Internal(err)
	}

	if !auth.CheckPassword(user.Password, current) {
		return apperr.Auth("Current password is incorrect")
	}

	hash, err := auth.HashPassword(next)
	if err != nil {
		return apperr.Internal(err)
	}

	user.Password = hash
	if err := s.users.Update(user); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (s *AuthService) tokenPair(user *models.User) (*TokenPair, error) {
	access, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	refresh, err := auth.GenerateRefreshToken(user.ID, user.Role)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
