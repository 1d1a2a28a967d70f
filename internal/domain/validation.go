package domain

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their wire names.
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	_ = validate.RegisterValidation("provider", func(fl validator.FieldLevel) bool {
		return Provider(fl.Field().String()).IsValid()
	})
}

// Validate checks presence and shape of the request fields. It never
// touches the network.
func (r *UnifiedAgentRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return newValidationError(verrs)
		}
		return err
	}
	return nil
}

func newValidationError(errs validator.ValidationErrors) *ValidationError {
	fields := make(map[string]string, len(errs))
	for _, err := range errs {
		field := err.Field()
		switch err.Tag() {
		case "required":
			fields[field] = fmt.Sprintf("%s is required", field)
		case "provider":
			fields[field] = fmt.Sprintf("%s must be one of: %s", field, providerList())
		case "url":
			fields[field] = fmt.Sprintf("%s must be a valid URL", field)
		case "gte", "lte":
			fields[field] = fmt.Sprintf("%s must be between 0 and 2", field)
		default:
			fields[field] = fmt.Sprintf("%s validation failed on '%s' tag", field, err.Tag())
		}
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	return &ValidationError{
		Message: "invalid request: " + strings.Join(names, ", "),
		Fields:  fields,
	}
}

func providerList() string {
	ps := Providers()
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = string(p)
	}
	return strings.Join(out, ", ")
}
