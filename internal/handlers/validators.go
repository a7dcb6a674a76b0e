package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidators wires custom binding validators into gin's
// validator engine. Call once at startup, before routes are served.
func RegisterCustomValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("workdays", validWorkDays)
}

// validWorkDays accepts a []int of weekday numbers (0=Sunday..6=Saturday)
// with no duplicates.
func validWorkDays(fl validator.FieldLevel) bool {
	days, ok := fl.Field().Interface().([]int)
	if !ok {
		return false
	}
	seen := make(map[int]bool, len(days))
	for _, d := range days {
		if d < 0 || d > 6 || seen[d] {
			return false
		}
		seen[d] = true
	}
	return true
}
