// Package validation holds the custom validator rules shared by request DTOs.
package validation

import (
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Rule tags usable in `binding:"..."` struct tags
const (
	TagLogin    = "login"
	TagNotBlank = "notblank"
)

// LoginPattern allows letters, digits, dots, dashes and underscores
var LoginPattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

var (
	bindingOnce sync.Once
	bindingErr  error
)

// Register adds the custom rules to v
func Register(v *validator.Validate) error {
	if err := v.RegisterValidation(TagLogin, validateLogin); err != nil {
		return err
	}
	return v.RegisterValidation(TagNotBlank, validateNotBlank)
}

// RegisterBindingRules installs the rules on gin's default validator. It is
// safe to call more than once.
func RegisterBindingRules() error {
	bindingOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			bindingErr = Register(v)
		}
	})
	return bindingErr
}

func validateLogin(fl validator.FieldLevel) bool {
	return LoginPattern.MatchString(strings.TrimSpace(fl.Field().String()))
}

// notblank rejects strings made only of whitespace; pointers are dereferenced
// by the validator, so nil optional fields never reach it.
func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
