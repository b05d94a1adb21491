package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance. Field names in error reports use
// json tag names so callers see wire-contract names, not Go identifiers.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}

type (
	// FieldError describes a single malformed field: which field, which
	// constraint it failed, and what shape was expected.
	FieldError struct {
		Field      string `json:"field"`      // wire-contract field path, e.g. "quality_report.risk_factor.severity"
		Constraint string `json:"constraint"` // failed rule, e.g. "required", "oneof"
		Expected   string `json:"expected"`   // constraint parameter, e.g. the oneof value set
		Actual     any    `json:"actual,omitempty"`
	}

	// ValidationError aggregates every offending field found in one pass, so
	// a caller can report precisely which inputs were malformed rather than
	// failing on the first.
	ValidationError struct {
		Fields []FieldError `json:"fields"`
	}
)

// Error lists every offending field and its expected shape.
func (e *ValidationError) Error() string {
	messages := make([]string, 0, len(e.Fields))

	for _, fe := range e.Fields {
		msg := fmt.Sprintf("%s: failed %q", fe.Field, fe.Constraint)
		if fe.Expected != "" {
			msg += fmt.Sprintf(" (expected %s)", fe.Expected)
		}

		messages = append(messages, msg)
	}

	return "validation failed: " + strings.Join(messages, "; ")
}

// FieldNames returns the offending field paths, in reported order.
func (e *ValidationError) FieldNames() []string {
	names := make([]string, 0, len(e.Fields))
	for _, fe := range e.Fields {
		names = append(names, fe.Field)
	}

	return names
}

// Validate checks a DTO against its declared constraints. Returns nil when
// valid, a *ValidationError naming every offending field when not. Values are
// never coerced: a malformed input is reported, not repaired.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// Non-struct input or other misuse; surface as-is.
		return err
	}

	fields := make([]FieldError, 0, len(verrs))

	for _, fe := range verrs {
		fields = append(fields, FieldError{
			Field:      trimNamespaceRoot(fe.Namespace()),
			Constraint: fe.Tag(),
			Expected:   fe.Param(),
			Actual:     fe.Value(),
		})
	}

	return &ValidationError{Fields: fields}
}

// ParseAndValidate decodes raw JSON into a DTO, applies nothing else, and
// validates it. Decode failures surface as-is; validation failures surface as
// *ValidationError.
func ParseAndValidate[T any](raw []byte) (T, error) {
	var result T

	if err := json.Unmarshal(raw, &result); err != nil {
		return result, fmt.Errorf("failed to decode %T: %w", result, err)
	}

	if err := Validate(result); err != nil {
		return result, err
	}

	return result, nil
}

// ToDocument converts a DTO into the plain mapping the storage gateway
// persists, via a JSON round trip so wire-contract field names are preserved.
func ToDocument(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %T: %w", v, err)
	}

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to convert %T to document: %w", v, err)
	}

	return doc, nil
}

// trimNamespaceRoot drops the leading struct name from a validator namespace:
// "WaterAnalysisResponse.chemical_status" -> "chemical_status".
func trimNamespaceRoot(namespace string) string {
	if idx := strings.Index(namespace, "."); idx != -1 {
		return namespace[idx+1:]
	}

	return namespace
}
