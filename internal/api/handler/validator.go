package handler

import (
	"github.com/reelhouse/movie-catalog/internal/pkg/validation"
)

// echoValidator lets Echo call c.Validate(req). Failures are returned as a
// *domain.ValidationError listing every violation.
type echoValidator struct {
	v *validation.Validator
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	return &echoValidator{v: validation.New()}
}

// Validate satisfies the echo.Validator interface.
func (ev *echoValidator) Validate(i any) error {
	return ev.v.Struct(i)
}
