// Package validation holds the input rules checked before any write.
//
// Rules run in a fixed order and the first failing rule aborts with a
// validation error carrying a human-readable message. Nothing here touches
// storage except the category name checks, which go through NameTakenFunc.
package validation

import (
	"math"
	"strconv"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/mmynk/catalog/internal/errors"
	"github.com/mmynk/catalog/internal/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// cost: a finite, non-negative decimal. Combined with "numeric" so
	// forms such as "Inf" or "0x1p3" are rejected.
	if err := v.RegisterValidation("cost", isCost); err != nil {
		panic(err)
	}
	return v
}

func isCost(fl validator.FieldLevel) bool {
	f, err := strconv.ParseFloat(fl.Field().String(), 64)
	if err != nil {
		return false
	}
	return f >= 0 && !math.IsInf(f, 0) && !math.IsNaN(f)
}

// rule is a single check on one field. when, if set, gates the rule on the
// rest of the payload.
type rule struct {
	field   string
	tag     string
	message string
	when    func(models.Fields) bool
}

func check(fields models.Fields, rules []rule) error {
	for _, r := range rules {
		if r.when != nil && !r.when(fields) {
			continue
		}
		if err := validate.Var(fields.Get(r.field), r.tag); err != nil {
			return apperrors.NewValidationError(r.message)
		}
	}
	return nil
}

// ParseCost converts a validated cost string. Callers must validate first.
func ParseCost(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
