// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"expensetracker/internal/models"
	"expensetracker/internal/money"
)

var (
	currencySymbols = choiceSet(models.CurrencySymbols)
	categoryIcons   = choiceSet(models.CategoryIcons)
)

func choiceSet(choices []models.Choice) map[string]bool {
	set := make(map[string]bool, len(choices))
	for _, c := range choices {
		set[c.Value] = true
	}
	return set
}

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterOn(v)
	}
}

// RegisterOn registers the custom validators on v. Field errors report the
// form field name so messages match what the user saw.
func RegisterOn(v *validator.Validate) {
	v.RegisterTagNameFunc(formFieldName)
	_ = v.RegisterValidation("currency_symbol", validateCurrencySymbol)
	_ = v.RegisterValidation("category_icon", validateCategoryIcon)
	_ = v.RegisterValidation("money", validateMoney)
}

func validateCurrencySymbol(fl validator.FieldLevel) bool {
	return currencySymbols[fl.Field().String()]
}

// validateCategoryIcon accepts an empty value; the default icon is applied later.
func validateCategoryIcon(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s == "" || categoryIcons[s]
}

func validateMoney(fl validator.FieldLevel) bool {
	return money.Valid(fl.Field().String())
}

func formFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}
