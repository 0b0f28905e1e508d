package http

import (
	"fmt"

	"github.com/gdugdh24/sparring-backend/internal/usecase/availability"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the custom binding rules used by request structs.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding validator %T", binding.Validator.Engine())
	}
	return v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return availability.IsClockTime(fl.Field().String())
	})
}
