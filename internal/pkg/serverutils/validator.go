package serverutils

import (
	"fmt"
	"strings"

	"rockspec-notes/internal/pkg/apperr"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest runs the struct tags of a request DTO and converts the
// first failure into a field-scoped ValidationError, so the form contract
// stays "first invalid field wins". Field order follows struct declaration.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return err
	}

	fe := errs[0]
	field := strings.ToLower(fe.Field())
	return apperr.NewValidation(field, messageFor(fe.Field(), field, fe.Tag()))
}

func messageFor(name, field, tag string) string {
	if field == "email" {
		return "Email is invalid"
	}
	if tag == "min" && field == "password" {
		return "Password is too short"
	}
	return fmt.Sprintf("%s is required", name)
}
