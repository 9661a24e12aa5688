package controllers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/aymanhs/souq/app/services"
	"github.com/aymanhs/souq/pkg/bind"
	"github.com/aymanhs/souq/pkg/middleware"
	"github.com/aymanhs/souq/pkg/response"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{service: services.NewAuthService(db)}
}

type signupInput struct {
	Name                 string `json:"name"                  validate:"required,min=2,max=255"`
	Email                string `json:"email"                 validate:"required,email"`
	Password             string `json:"password"              validate:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" validate:"confirmed"`
}

// Signup registers a new account and returns it with a token pair.
func (c *AuthController) Signup(w http.ResponseWriter, r *http.Request) {
	var in signupInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Fail(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationFailed(w, errs)
		return
	}

	user, pair, err := c.service.Signup(in.Name, in.Email, in.Password)
	if err != nil {
		response.FromError(w, err)
		return
	}

	setTokenCookie(w, pair.AccessToken)
	response.Created(w, map[string]interface{}{"user": user, "tokens": pair})
}

type loginInput struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login verifies credentials and returns a token pair. The access token
// is also set as a cookie for browser clients.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var in loginInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Fail(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationFailed(w, errs)
		return
	}

	user, pair, err := c.service.Login(in.Email, in.Password)
	if err != nil {
		response.FromError(w, err)
		return
	}

	setTokenCookie(w, pair.AccessToken)
	response.Success(w, map[string]interface{}{"user": user, "tokens": pair})
}

type changePasswordInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword"     validate:"required,min=8"`
}

// ChangePassword updates the password of the account in the URL. The
// authenticated caller must be that same account.
func (c *AuthController) ChangePassword(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.IdentityFromCtx(r.Context())

	var in changePasswordInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Fail(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationFailed(w, errs)
		return
	}

	if err := c.service.ChangePassword(id.UserID, uintParam(r, "id"), in.CurrentPassword, in.NewPassword); err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, map[string]string{"message": "Password updated"})
}

func setTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
