package validator

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
)

func newValidate() *validator.Validate {
	v := validator.New()
	RegisterOn(v)
	return v
}

func TestCurrencySymbol(t *testing.T) {
	v := newValidate()
	for _, ok := range []string{"₹", "$", "€", "£", "¥", "₿"} {
		if err := v.Var(ok, "currency_symbol"); err != nil {
			t.Errorf("expected %q to be valid: %v", ok, err)
		}
	}
	for _, bad := range []string{"", "USD", "₽", "$$"} {
		if err := v.Var(bad, "currency_symbol"); err == nil {
			t.Errorf("expected %q to be rejected", bad)
		}
	}
}

func TestCategoryIcon(t *testing.T) {
	v := newValidate()
	for _, ok := range []string{"", "fa-dog", "fa-tag", "fa-shoe-prints"} {
		if err := v.Var(ok, "category_icon"); err != nil {
			t.Errorf("expected %q to be valid: %v", ok, err)
		}
	}
	for _, bad := range []string{"fa-skull", "dog", "<script>"} {
		if err := v.Var(bad, "category_icon"); err == nil {
			t.Errorf("expected %q to be rejected", bad)
		}
	}
}

func TestMoney(t *testing.T) {
	v := newValidate()
	type form struct {
		Amount string `validate:"required,money"`
	}

	if err := v.Struct(form{Amount: "12.50"}); err != nil {
		t.Errorf("expected valid amount: %v", err)
	}
	for _, bad := range []string{"0", "-1", "1.234", "abc"} {
		if err := v.Struct(form{Amount: bad}); err == nil {
			t.Errorf("expected %q to be rejected", bad)
		}
	}
}

func TestFieldErrorsUseFormNames(t *testing.T) {
	type form struct {
		ConfirmPassword string `form:"confirm_password" validate:"required"`
		Plain           string `validate:"required"`
	}
	err := newValidate().Struct(form{})
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) != 2 {
		t.Fatalf("expected two validation errors, got %v", err)
	}
	if verrs[0].Field() != "confirm_password" {
		t.Errorf("expected confirm_password, got %q", verrs[0].Field())
	}
	if verrs[1].Field() != "Plain" {
		t.Errorf("expected Plain, got %q", verrs[1].Field())
	}
}
