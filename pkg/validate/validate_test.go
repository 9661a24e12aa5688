package validate_test

import (
	"testing"

	"github.com/aymanhs/souq/pkg/validate"
)

type signupInput struct {
	Name                 string `json:"name"                  validate:"required,min=2,max=50"`
	Email                string `json:"email"                 validate:"required,email"`
	Password             string `json:"password"              validate:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" validate:"confirmed"`
	Role                 string `json:"role"                  validate:"nullable,in=USER,MANAGER,ADMIN"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(signupInput{
		Name:                 "john doe",
		Email:                "john@example.com",
		Password:             "secret123",
		PasswordConfirmation: "secret123",
		Role:                 "USER",
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(signupInput{})
	if !validate.HasErrors(errs) {
		t.Error("expected required errors")
	}
	if _, ok := errs["name"]; !ok {
		t.Error("expected name to be required")
	}
	if _, ok := errs["email"]; !ok {
		t.Error("expected email to be required")
	}
}

func TestEmailRule(t *testing.T) {
	type in struct {
		Email string `json:"email" validate:"required,email"`
	}
	errs := validate.Struct(in{Email: "not-an-email"})
	if _, ok := errs["email"]; !ok {
		t.Error("expected email validation error")
	}
	errs = validate.Struct(in{Email: "valid@example.com"})
	if validate.HasErrors(errs) {
		t.Errorf("expected valid email to pass, got: %v", errs)
	}
}

func TestNumericBounds(t *testing.T) {
	type in struct {
		Quantity int `json:"quantity" validate:"required,gt=0,lte=1000"`
	}
	if errs := validate.Struct(in{Quantity: -3}); !validate.HasErrors(errs) {
		t.Error("expected negative quantity to fail")
	}
	if errs := validate.Struct(in{Quantity: 2}); validate.HasErrors(errs) {
		t.Errorf("expected quantity 2 to pass, got: %v", errs)
	}
}

func TestInRule(t *testing.T) {
	type in struct {
		Status string `json:"status" validate:"required,in=PENDING,SHIPPED,DELIVERED"`
	}
	if errs := validate.Struct(in{Status: "CANCELLED"}); !validate.HasErrors(errs) {
		t.Error("expected unknown status to fail")
	}
	if errs := validate.Struct(in{Status: "SHIPPED"}); validate.HasErrors(errs) {
		t.Errorf("expected SHIPPED to pass: %v", errs)
	}
}

func TestInFollowedByOtherRule(t *testing.T) {
	type in struct {
		Role string `json:"role" validate:"required,in=USER,MANAGER,ADMIN,max=20"`
	}
	if errs := validate.Struct(in{Role: "MANAGER"}); validate.HasErrors(errs) {
		t.Errorf("expected MANAGER to pass: %v", errs)
	}
	if errs := validate.Struct(in{Role: "ROOT"}); !validate.HasErrors(errs) {
		t.Error("expected ROOT to fail the in rule")
	}
}

func TestConfirmedRule(t *testing.T) {
	type in struct {
		Password             string `json:"password"              validate:"required,min=8"`
		PasswordConfirmation string `json:"password_confirmation" validate:"confirmed"`
	}
	if errs := validate.Struct(in{Password: "secret123", PasswordConfirmation: "wrong"}); !validate.HasErrors(errs) {
		t.Error("expected confirmation mismatch to fail")
	}
	if errs := validate.Struct(in{Password: "secret123", PasswordConfirmation: "secret123"}); validate.HasErrors(errs) {
		t.Errorf("expected matching confirmation to pass: %v", errs)
	}
}

func TestNullableSkipsRules(t *testing.T) {
	type in struct {
		Phone string `json:"phone" validate:"nullable,numeric,min=7"`
	}
	if errs := validate.Struct(in{Phone: ""}); validate.HasErrors(errs) {
		t.Errorf("expected empty nullable to pass: %v", errs)
	}
	if errs := validate.Struct(in{Phone: "abc"}); !validate.HasErrors(errs) {
		t.Error("expected non-numeric phone to fail")
	}
}

func TestFirstFailingRuleWins(t *testing.T) {
	type in struct {
		Name string `json:"name" validate:"required,min=2"`
	}
	errs := validate.Struct(in{})
	if errs["name"] != "The name field is required." {
		t.Errorf("expected required message first, got: %q", errs["name"])
	}
}
