package server

import (
	"github.com/go-playground/validator/v10"
)

// requestValidator implements echo.Validator using go-playground/validator
type requestValidator struct {
	v *validator.Validate
}

func newRequestValidator() *requestValidator {
	return &requestValidator{v: validator.New()}
}

// Validate performs struct validation
func (rv *requestValidator) Validate(i interface{}) error {
	return rv.v.Struct(i)
}
