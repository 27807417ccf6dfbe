package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type ErrorResponse struct {
	FailedField string
	Tag         string
	Value       string
	Kind        reflect.Kind
}

// ValidationError is the first failed check of a payload, ready to show to a client.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func init() {
	// Report fields under their JSON names so messages match the payload the client sent.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// ValidateStruct returns every failed check in struct field order.
func ValidateStruct(data interface{}) []*ErrorResponse {
	var errs []*ErrorResponse
	err := validate.Struct(data)
	if err != nil {
		var validationErrs validator.ValidationErrors
		if !errors.As(err, &validationErrs) {
			return []*ErrorResponse{{FailedField: "", Tag: "invalid"}}
		}
		for _, err := range validationErrs {
			errs = append(errs, &ErrorResponse{
				FailedField: err.Field(),
				Tag:         err.Tag(),
				Value:       err.Param(),
				Kind:        err.Kind(),
			})
		}
	}
	return errs
}

// First converts the first failed check into a ValidationError, or nil when errs is empty.
func First(errs []*ErrorResponse) *ValidationError {
	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Field: errs[0].FailedField, Message: Message(errs[0])}
}

// Message renders a failed check as a sentence.
func Message(e *ErrorResponse) string {
	switch e.Tag {
	case "required":
		return fmt.Sprintf("%s is required", e.FailedField)
	case "max":
		if e.Kind == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", e.FailedField, e.Value)
		}
		return fmt.Sprintf("%s must be less than or equal to %s", e.FailedField, e.Value)
	case "min":
		if e.Kind == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", e.FailedField, e.Value)
		}
		return fmt.Sprintf("%s must be greater than or equal to %s", e.FailedField, e.Value)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", e.FailedField, e.Value)
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", e.FailedField, e.Value)
	case TagType:
		return fmt.Sprintf("%s must be %s", e.FailedField, describeKind(e.Kind))
	default:
		if e.FailedField == "" {
			return "invalid payload"
		}
		return fmt.Sprintf("%s is invalid", e.FailedField)
	}
}

// TagType marks a field whose JSON value has the wrong type.
const TagType = "type"

// DecodeFields decodes a JSON object into the struct target points to, one
// field at a time. Keys are matched exactly against the json tag names, unknown
// keys are dropped and null values are treated as absent. A value of the wrong
// type becomes an ErrorResponse with TagType instead of aborting the decode, so
// the caller can rank it against validation failures by field order. err is
// only returned when data is not a JSON object.
func DecodeFields(data []byte, target interface{}, unmarshal func([]byte, interface{}) error) ([]*ErrorResponse, error) {
	var raw map[string]json.RawMessage
	if err := unmarshal(data, &raw); err != nil {
		return nil, err
	}

	v := reflect.ValueOf(target).Elem()
	var errs []*ErrorResponse
	for i, name := range fieldNames(v.Type()) {
		value, ok := raw[name]
		if name == "" || !ok || string(value) == "null" {
			continue
		}
		field := v.Field(i)
		if err := unmarshal(value, field.Addr().Interface()); err != nil {
			field.Set(reflect.Zero(field.Type()))
			errs = append(errs, &ErrorResponse{FailedField: name, Tag: TagType, Kind: field.Kind()})
		}
	}
	return errs, nil
}

// FirstInOrder returns the failure on the earliest field of target's struct
// type. Lists are consulted in the order given when several fail on one field.
func FirstInOrder(target interface{}, lists ...[]*ErrorResponse) *ValidationError {
	t := reflect.TypeOf(target)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	for _, name := range fieldNames(t) {
		if name == "" {
			continue
		}
		for _, errs := range lists {
			for _, e := range errs {
				if e.FailedField == name {
					return &ValidationError{Field: name, Message: Message(e)}
				}
			}
		}
	}
	for _, errs := range lists {
		if verr := First(errs); verr != nil {
			return verr
		}
	}
	return nil
}

// fieldNames returns the json name of every field of t in declaration order,
// with "" for fields that are not serialized.
func fieldNames(t reflect.Type) []string {
	names := make([]string, t.NumField())
	for i := range names {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			continue
		}
		if name == "" {
			name = f.Name
		}
		names[i] = name
	}
	return names
}

func describeKind(k reflect.Kind) string {
	switch k {
	case reflect.String:
		return "a string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "an integer"
	case reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.Bool:
		return "a boolean"
	default:
		return "valid"
	}
}
