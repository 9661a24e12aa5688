package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aymanhs/souq/app/models"
	"github.com/aymanhs/souq/pkg/apperr"
	"github.com/aymanhs/souq/pkg/auth"
)

func TestSignupAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db)

	user, pair, err := svc.Signup("Jane", "jane@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	claims, err := auth.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, models.RoleUser, claims.Role)

	// Stored password must be a hash, not the plain text.
	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.NotEqual(t, "secret123", stored.Password)

	_, pair, err = svc.Login("jane@example.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
}

func TestSignupDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db)

	_, _, err := svc.Signup("Jane", "jane@example.com", "secret123")
	require.NoError(t, err)

	_, _, err = svc.Signup("Impostor", "jane@example.com", "hunter22")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidOperation))
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db)

	_, _, err := svc.Signup("Jane", "jane@example.com", "secret123")
	require.NoError(t, err)

	_, _, err = svc.Login("jane@example.com", "wrong")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindAuth))

	// Unknown email yields the same error kind and message shape.
	_, _, err = svc.Login("nobody@example.com", "secret123")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindAuth))
}

func TestChangePassword(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db)

	user, _, err := svc.Signup("Jane", "jane@example.com", "secret123")
	require.NoError(t, err)

	// Wrong current password.
	err = svc.ChangePassword(user.ID, user.ID, "nope", "newpass99")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindAuth))

	// Someone else's account.
	err = svc.ChangePassword(user.ID+1, user.ID, "secret123", "newpass99")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))

	// Happy path; old password stops working.
	require.NoError(t, svc.ChangePassword(user.ID, user.ID, "secret123", "newpass99"))
	_, _, err = svc.Login("jane@example.com", "secret123")
	require.Error(t, err)
	_, _, err = svc.Login("jane@example.com", "newpass99")
	require.NoError(t, err)
}

func TestPasswordResetFlow(t *testing.T) {
	db := newTestDB(t)
	authSvc := NewAuthService(db)
	pwdSvc := NewPasswordService(db)

	user, _, err := authSvc.Signup("Jane", "jane@example.com", "secret123")
	require.NoError(t, err)

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)

	token, err := auth.GenerateResetToken(user.ID, stored.Password)
	require.NoError(t, err)

	require.NoError(t, pwdSvc.Reset(user.ID, token, "resetpass1"))
	_, _, err = authSvc.Login("jane@example.com", "resetpass1")
	require.NoError(t, err)

	// The same token is now signed with a stale password hash and dies.
	err = pwdSvc.Reset(user.ID, token, "another999")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindAuth))
}

func TestForgotUnknownEmailIsSilent(t *testing.T) {
	db := newTestDB(t)
	svc := NewPasswordService(db)

	// Must not reveal whether the email exists.
	require.NoError(t, svc.Forgot("ghost@example.com"))
}
