// Package schemas provides JSON Schema validation for parsed resume records and other JSON artifacts.
package schemas

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/jonathan/resume-parser/internal/types"
)

// recordSchemaName identifies the embedded schema in errors
const recordSchemaName = "parsed_resume.schema.json"

//go:embed parsed_resume.schema.json
var recordSchemaJSON string

var (
	recordSchemaOnce sync.Once
	recordSchema     *gojsonschema.Schema
	recordSchemaErr  error
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// RecordSchema returns the embedded JSON Schema describing ParsedResumeRecord
func RecordSchema() string {
	return recordSchemaJSON
}

func compiledRecordSchema() (*gojsonschema.Schema, error) {
	recordSchemaOnce.Do(func() {
		recordSchema, recordSchemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(recordSchemaJSON))
	})
	if recordSchemaErr != nil {
		return nil, &SchemaLoadError{Path: recordSchemaName, Message: "invalid embedded schema", Cause: recordSchemaErr}
	}
	return recordSchema, nil
}

// ValidateRecord validates a record against the embedded ParsedResumeRecord schema
func ValidateRecord(record *types.ParsedResumeRecord) error {
	if record == nil {
		return &ValidationError{Errors: []FieldError{{Field: "(root)", Message: "record is nil"}}}
	}
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	return ValidateRecordJSON(data)
}

// ValidateRecordJSON validates raw JSON against the embedded ParsedResumeRecord schema
func ValidateRecordJSON(data []byte) error {
	schema, err := compiledRecordSchema()
	if err != nil {
		return err
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return &ValidationError{Errors: []FieldError{{Field: "(root)", Message: fmt.Sprintf("invalid JSON document: %v", err)}}}
	}
	return resultError(result)
}

// ValidateJSON validates a JSON file against a JSON Schema file
func ValidateJSON(schemaPath, jsonPath string) error {
	schemaAbsPath, err := filepath.Abs(schemaPath)
	if err != nil {
		return fmt.Errorf("failed to resolve schema path: %w", err)
	}

	jsonAbsPath, err := filepath.Abs(jsonPath)
	if err != nil {
		return fmt.Errorf("failed to resolve JSON path: %w", err)
	}

	if _, err := os.Stat(schemaAbsPath); os.IsNotExist(err) {
		return fmt.Errorf("schema file not found: %s", schemaAbsPath)
	}

	if _, err := os.Stat(jsonAbsPath); os.IsNotExist(err) {
		return fmt.Errorf("JSON file not found: %s", jsonAbsPath)
	}

	schemaLoader := gojsonschema.NewReferenceLoader("file://" + filepath.ToSlash(schemaAbsPath))
	documentLoader := gojsonschema.NewReferenceLoader("file://" + filepath.ToSlash(jsonAbsPath))

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{
			Path:    schemaAbsPath,
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}

	return resultError(result)
}

// ValidateJSONString validates JSON string content against schema string content
func ValidateJSONString(schemaContent, jsonContent string) error {
	schemaLoader := gojsonschema.NewStringLoader(schemaContent)
	documentLoader := gojsonschema.NewStringLoader(jsonContent)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{
			Path:    "(string schema)",
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}

	return resultError(result)
}

// resultError converts a failed validation result into a ValidationError
func resultError(result *gojsonschema.Result) error {
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}
