package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/FactorySim_Go/internal/operator"
)

var (
	requestValidator *validator.Validate
	validatorOnce    sync.Once
)

// validatorInstance builds the shared validator on first use. Field errors
// are reported under their JSON names.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation(TagStrategy, isStrategy)
		_ = v.RegisterValidation(TagEntityName, isEntityName)
		requestValidator = v
	})
	return requestValidator
}

// fieldErrors maps each failing field to a message safe to show
func fieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"body": "Invalid request format"}
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = fieldMessage(fe)
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case TagStrategy:
		return "Must be one of: " + strings.Join(strategyNames(), ", ")
	case TagEntityName:
		return "Must not be blank or contain control characters"
	case "max":
		return fmt.Sprintf("Must be at most %s characters", fe.Param())
	case "gt":
		return fmt.Sprintf("Must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("Must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("Must be at most %s", fe.Param())
	}
	return "Invalid value"
}

func isStrategy(fl validator.FieldLevel) bool {
	_, err := operator.ParseStrategy(fl.Field().String())
	return err == nil
}

// isEntityName accepts catalog, worker and station names: something other
// than whitespace and no control characters
func isEntityName(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if strings.TrimSpace(s) == "" {
		return false
	}
	return strings.IndexFunc(s, unicode.IsControl) < 0
}

func strategyNames() []string {
	names := make([]string, 0, len(operator.Strategies()))
	for _, s := range operator.Strategies() {
		names = append(names, s.String())
	}
	return names
}
