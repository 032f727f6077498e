package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their YAML names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidationError lists every problem found in a config.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation errors:\n  - %s", strings.Join(e.Problems, "\n  - "))
}

// Validate checks the config for:
//   - Field constraints declared in struct tags
//   - A table name when the network source is sqlite
//
// Every problem found is reported in one *ValidationError.
func Validate(cfg *ServiceConfig) error {
	if cfg == nil {
		return fmt.Errorf("config: nil config")
	}
	var errs []string

	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("config: %w", err)
		}
		for _, fe := range verrs {
			errs = append(errs, describe(fe))
		}
	}
	if cfg.Network.Source == SourceSQLite && cfg.Network.Table == "" {
		errs = append(errs, "network.table: required when source is sqlite")
	}

	if len(errs) > 0 {
		return &ValidationError{Problems: errs}
	}
	return nil
}

func describe(fe validator.FieldError) string {
	// Drop the root struct name: "ServiceConfig.routing.speed" → "routing.speed".
	field := fe.Namespace()
	if i := strings.IndexByte(field, '.'); i >= 0 {
		field = field[i+1:]
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s: is required", field)
	case "oneof":
		return fmt.Sprintf("%s: must be one of [%s], got %v", field, fe.Param(), fe.Value())
	case "gt":
		return fmt.Sprintf("%s: must be greater than %s, got %v", field, fe.Param(), fe.Value())
	case "gte":
		return fmt.Sprintf("%s: must be at least %s, got %v", field, fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s: failed %q check", field, fe.Tag())
	}
}
