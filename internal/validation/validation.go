// Package validation registers the portal's enum tags on gin's validator so
// form structs can declare `binding:"sector"` and friends.
package validation

import (
	"fmt"
	"support-portal/internal/domain"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var tags = map[string]validator.Func{
	"sector": func(fl validator.FieldLevel) bool {
		return domain.Sector(fl.Field().String()).Valid()
	},
	"contenttype": func(fl validator.FieldLevel) bool {
		return domain.ContentType(fl.Field().String()).Valid()
	},
	"role": func(fl validator.FieldLevel) bool {
		return domain.Role(fl.Field().String()).Valid()
	},
	"category": func(fl validator.FieldLevel) bool {
		return domain.Category(fl.Field().String()).Valid()
	},
}

// Register installs the custom tags on v.
func Register(v *validator.Validate) error {
	for tag, fn := range tags {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %q: %w", tag, err)
		}
	}
	return nil
}

// RegisterGin installs the custom tags on the engine behind gin's binding.
func RegisterGin() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	return Register(v)
}
