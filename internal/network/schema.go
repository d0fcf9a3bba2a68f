package network

import (
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
)

// Schema validates a decoded value against its contract. Endpoints attach
// one to their request and response sides; a nil schema skips validation.
type Schema[T any] interface {
	Validate(v T) error
}

// ValidationError reports which fields of a value violated the schema.
// It is never retried: the same value would fail the same way.
type ValidationError struct {
	Subject string // "request" or "response"
	Fields  []string
	cause   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s validation failed: %v", e.Subject, e.Fields)
}

func (e *ValidationError) Unwrap() error { return e.cause }

var validate = validator.New(validator.WithRequiredStructEnabled())

type structSchema[T any] struct{}

func (structSchema[T]) Validate(v T) error {
	// validator only accepts structs; unwrap slices so list responses
	// validate element-wise.
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if err := toValidationError(validate.Struct(rv.Index(i).Interface())); err != nil {
				return err
			}
		}
		return nil
	case reflect.Struct:
		return toValidationError(validate.Struct(v))
	default:
		return nil
	}
}

func toValidationError(err error) error {
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}
	return &ValidationError{Fields: fields, cause: err}
}

// Struct returns a Schema backed by T's `validate` tags. Slice types
// validate each element.
func Struct[T any]() Schema[T] {
	return structSchema[T]{}
}

// SchemaFunc adapts a plain function to the Schema interface.
type SchemaFunc[T any] func(v T) error

func (f SchemaFunc[T]) Validate(v T) error { return f(v) }
