package utils

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

func InitValidator() {
	if Validate != nil {
		return
	}
	Validate = NewValidator()
}

// NewValidator returns a validator with the "slug" rule registered.
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
	return v
}

func IsSlug(s string) bool {
	return slugPattern.MatchString(s)
}
