package tools

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/lightprotocol/light-mcp/internal/search"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed data/schema/search_docs.json
var searchDocsSchema []byte

const searchDocsSchemaURL = "https://zkcompression.com/schema/search_docs.json"

// ErrInvalidArguments is wrapped by every ArgumentsError
var ErrInvalidArguments = errors.New("invalid search_docs arguments")

// Violation is one schema failure at a JSON path
type Violation struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ArgumentsError reports why a raw argument object was rejected
type ArgumentsError struct {
	Violations []Violation
}

func (e *ArgumentsError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, fmt.Sprintf("%s: %s", v.Path, v.Message))
	}
	return fmt.Sprintf("%s: %s", ErrInvalidArguments, strings.Join(parts, "; "))
}

func (e *ArgumentsError) Unwrap() error {
	return ErrInvalidArguments
}

// IsInvalidRequest reports whether err was caused by the caller's arguments
func IsInvalidRequest(err error) bool {
	return errors.Is(err, ErrInvalidArguments) ||
		errors.Is(err, search.ErrEmptyQuery) ||
		errors.Is(err, search.ErrInvalidMode) ||
		errors.Is(err, search.ErrInvalidContentFilter)
}

// SearchDocsSchema returns the input schema advertised for search_docs
func SearchDocsSchema() json.RawMessage {
	return json.RawMessage(searchDocsSchema)
}

// ArgumentsValidator checks raw search_docs arguments against the schema
type ArgumentsValidator struct {
	schema *jsonschema.Schema
}

// NewArgumentsValidator compiles the embedded search_docs schema
func NewArgumentsValidator() (*ArgumentsValidator, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(searchDocsSchema))
	if err != nil {
		return nil, fmt.Errorf("invalid embedded schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(searchDocsSchemaURL, doc); err != nil {
		return nil, fmt.Errorf("failed to add schema: %w", err)
	}

	schema, err := compiler.Compile(searchDocsSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("schema compilation error: %w", err)
	}

	return &ArgumentsValidator{schema: schema}, nil
}

// Decode validates raw and decodes it into SearchDocsInput. Failures are
// returned as *ArgumentsError.
func (v *ArgumentsValidator) Decode(raw []byte) (SearchDocsInput, error) {
	var input SearchDocsInput

	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return input, &ArgumentsError{Violations: []Violation{{Path: "$", Message: fmt.Sprintf("invalid JSON: %v", err)}}}
	}

	if err := v.schema.Validate(instance); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			return input, &ArgumentsError{Violations: collectViolations(validationErr)}
		}
		return input, &ArgumentsError{Violations: []Violation{{Path: "$", Message: err.Error()}}}
	}

	if err := json.Unmarshal(raw, &input); err != nil {
		return input, &ArgumentsError{Violations: []Violation{{Path: "$", Message: err.Error()}}}
	}
	return input, nil
}

// collectViolations flattens the validation tree into its leaf failures
func collectViolations(validationErr *jsonschema.ValidationError) []Violation {
	if len(validationErr.Causes) == 0 {
		path := "$"
		if len(validationErr.InstanceLocation) > 0 {
			path = "$." + strings.Join(validationErr.InstanceLocation, ".")
		}
		return []Violation{{Path: path, Message: validationErr.Error()}}
	}

	var violations []Violation
	for _, cause := range validationErr.Causes {
		violations = append(violations, collectViolations(cause)...)
	}
	return violations
}
