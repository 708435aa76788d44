// Package validation checks documents against the JSON schemas embedded in
// the binary.
package validation

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// ErrSchemaViolation is wrapped by every failed validation
var ErrSchemaViolation = errors.New(ErrMsgSchemaFailed)

// SchemaValidator validates JSON data against JSON schemas
type SchemaValidator interface {
	ValidateFile(dataPath, schemaName string) error
	ValidateBytes(data []byte, schemaName string) error
	ValidateValue(v any, schemaName string) error
}

type validator struct {
	mu       sync.Mutex
	compiler *jsonschema.Compiler
	schemas  map[string]*jsonschema.Schema
}

// NewSchemaValidator creates a new schema validator
func NewSchemaValidator() SchemaValidator {
	return &validator{
		compiler: jsonschema.NewCompiler(),
		schemas:  make(map[string]*jsonschema.Schema),
	}
}

// ValidateFile validates a JSON file against an embedded schema
func (v *validator) ValidateFile(dataPath, schemaName string) error {
	data, err := os.ReadFile(dataPath)
	if err != nil {
		return fmt.Errorf(ErrMsgReadData+": %w", dataPath, err)
	}

	return v.ValidateBytes(data, schemaName)
}

// ValidateBytes validates JSON data bytes against an embedded schema
func (v *validator) ValidateBytes(data []byte, schemaName string) error {
	schema, err := v.loadSchema(schemaName)
	if err != nil {
		return fmt.Errorf(ErrMsgLoadSchema+": %w", schemaName, err)
	}

	// jsonschema decodes numbers as json.Number so integer checks are exact
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgParseData, err)
	}

	if err := schema.Validate(doc); err != nil {
		return formatValidationError(err)
	}

	return nil
}

// ValidateValue encodes v as JSON and validates the result. Documents
// decoded from other formats (YAML) go through here.
func (v *validator) ValidateValue(value any, schemaName string) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgEncodeValue, err)
	}
	return v.ValidateBytes(data, schemaName)
}

// loadSchema compiles an embedded schema once and caches it
func (v *validator) loadSchema(schemaName string) (*jsonschema.Schema, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if schema, ok := v.schemas[schemaName]; ok {
		return schema, nil
	}

	schemaData, err := schemaFS.ReadFile("schemas/" + schemaName)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgReadSchema, err)
	}

	schemaDoc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaData))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgParseSchema, err)
	}

	if err := v.compiler.AddResource(schemaName, schemaDoc); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgAddResource, err)
	}

	schema, err := v.compiler.Compile(schemaName)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgCompileSchema, err)
	}

	v.schemas[schemaName] = schema
	return schema, nil
}

// formatValidationError lists every leaf failure with its document location
func formatValidationError(err error) error {
	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) {
		var lines []string
		collectErrors(validationErr, &lines)
		return fmt.Errorf("%w:\n%s", ErrSchemaViolation, strings.Join(lines, "\n"))
	}
	return fmt.Errorf("%s: %w", ErrMsgValidation, err)
}

// collectErrors walks the cause tree, keeping only leaves
func collectErrors(err *jsonschema.ValidationError, lines *[]string) {
	if len(err.Causes) == 0 {
		*lines = append(*lines, formatError(err))
		return
	}
	for _, cause := range err.Causes {
		collectErrors(cause, lines)
	}
}

func formatError(err *jsonschema.ValidationError) string {
	location := "(root)"
	if len(err.InstanceLocation) > 0 {
		location = "/" + strings.Join(err.InstanceLocation, "/")
	}

	if err.ErrorKind != nil {
		if keywords := err.ErrorKind.KeywordPath(); len(keywords) > 0 {
			return fmt.Sprintf("  - at %s: %s validation failed", location, strings.Join(keywords, "."))
		}
	}
	return fmt.Sprintf("  - at %s: validation failed", location)
}
