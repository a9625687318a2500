package scoring

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Sentinel kinds for input errors.
var (
	ErrMalformedInput = errors.New("malformed input")
	ErrMissingField   = errors.New("missing required field")
	ErrInvalidField   = errors.New("invalid field")
)

// RequiredFields lists the fields a prediction request must carry, in the
// order they are checked.
var RequiredFields = []string{"pclass", "sex", "age", "sibsp", "parch", "fare", "embarked"}

// FieldError names the field that failed validation.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	if errors.Is(e.Err, ErrMissingField) {
		return fmt.Sprintf("Campo requerido faltante: %s", e.Field)
	}
	return fmt.Sprintf("Campo inválido: %s", e.Field)
}

func (e *FieldError) Unwrap() error { return e.Err }

// DecodeInput parses a JSON request body. Every required field must be
// present and non-null; the first one missing, in RequiredFields order, is
// reported. Values are not range checked.
func DecodeInput(body []byte) (Input, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return Input{}, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	if raw == nil {
		return Input{}, fmt.Errorf("%w: body must be a JSON object", ErrMalformedInput)
	}

	for _, field := range RequiredFields {
		v, ok := raw[field]
		if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			return Input{}, &FieldError{Field: field, Err: ErrMissingField}
		}
	}

	var in Input
	targets := map[string]any{
		"pclass":   &in.Pclass,
		"sex":      &in.Sex,
		"age":      &in.Age,
		"sibsp":    &in.SibSp,
		"parch":    &in.Parch,
		"fare":     &in.Fare,
		"embarked": &in.Embarked,
	}
	for _, field := range RequiredFields {
		if err := json.Unmarshal(raw[field], targets[field]); err != nil {
			return Input{}, &FieldError{Field: field, Err: fmt.Errorf("%w: %v", ErrInvalidField, err)}
		}
	}
	if v, ok := raw["name"]; ok {
		// name is informational only; a non-string value is ignored.
		_ = json.Unmarshal(v, &in.Name)
	}
	return in, nil
}
