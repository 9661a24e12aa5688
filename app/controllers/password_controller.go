package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/aymanhs/souq/app/services"
	"github.com/aymanhs/souq/pkg/bind"
	"github.com/aymanhs/souq/pkg/response"
)

type PasswordController struct {
	service *services.PasswordService
}

func NewPasswordController(db *gorm.DB) *PasswordController {
	return &PasswordController{service: services.NewPasswordService(db)}
}

type forgotInput struct {
	Email string `json:"email" validate:"required,email"`
}

// Forgot emails a reset link. The response never reveals whether the
// email is registered.
func (c *PasswordController) Forgot(w http.ResponseWriter, r *http.Request) {
	var in forgotInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Fail(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationFailed(w, errs)
		return
	}

	if err := c.service.Forgot(in.Email); err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, map[string]string{
		"message": "If that email is registered, a reset link is on its way",
	})
}

type resetInput struct {
	Password             string `json:"password"              validate:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" validate:"confirmed"`
}

// Reset consumes the emailed link ({id}/{token}) and sets the new
// password.
func (c *PasswordController) Reset(w http.ResponseWriter, r *http.Request) {
	var in resetInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Fail(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationFailed(w, errs)
		return
	}

	if err := c.service.Reset(uintParam(r, "id"), chi.URLParam(r, "token"), in.Password); err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, map[string]string{"message": "Password has been reset"})
}
