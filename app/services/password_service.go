package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/aymanhs/souq/app/jobs"
	"github.com/aymanhs/souq/app/repositories"
	"github.com/aymanhs/souq/config"
	"github.com/aymanhs/souq/pkg/apperr"
	"github.com/aymanhs/souq/pkg/auth"
	"github.com/aymanhs/souq/pkg/logger"
	"github.com/aymanhs/souq/pkg/queue"
)

// PasswordService implements the forgot/reset password flow. Reset
// tokens are signed with the user's current password hash, so each link
// works at most once.
type PasswordService struct {
	users *repositories.UserRepository
}

func NewPasswordService(db *gorm.DB) *PasswordService {
	return &PasswordService{users: repositories.NewUserRepository(db)}
}

// Forgot emails a reset link to the account holder. The response to the
// caller is the same whether or not the email exists.
func (s *PasswordService) Forgot(email string) error {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil // don't confirm which emails exist
		}
		return apperr.Internal(err)
	}

	token, err := auth.GenerateResetToken(user.ID, user.Password)
	if err != nil {
		return apperr.Internal(err)
	}

	link := fmt.Sprintf("%s/api/user-password/reset/%d/%s", config.BaseURL(), user.ID, token)

	job := &jobs.PasswordResetJob{Email: user.Email, Name: user.Name, Link: link}
	if err := queue.Dispatch(job); err != nil {
		logger.Error("password: dispatch reset mail", "user_id", user.ID, "error", err)
		return apperr.Internal(err)
	}
	return nil
}

// Reset validates the emailed token and sets the new password.
func (s *PasswordService) Reset(userID uint, token, newPassword string) error {
	user, err := s.users.FindByID(userID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return apperr.NotFound("User")
		}
		return apperr.Internal(err)
	}

	if _, err := auth.ValidateResetToken(token, user.Password); err != nil {
		return apperr.Auth("Reset link is invalid or expired")
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperr.Internal(err)
	}

	user.Password = hash
	if err := s.users.Update(user); err != nil {
		return apperr.Internal(err)
	}
	return nil
}
