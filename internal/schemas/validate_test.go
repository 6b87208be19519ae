package schemas

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-parser/internal/parsing"
	"github.com/jonathan/resume-parser/internal/types"
)

const personSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["name", "age"],
  "properties": {
    "name": {"type": "string"},
    "age": {"type": "integer"}
  }
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestValidateRecord_ParserOutput(t *testing.T) {
	inputs := []string{
		"",
		"John Smith\njohn@x.io\nEXPERIENCE\nJan 2020 - Present\nAcme Inc\nEngineer\nEDUCATION\n2016 - 2020\nState University\nBS Physics",
		"SUMMARY\nSKILLS\nLANGUAGES",
		"random \x00 text 2020 May 2021",
	}

	for _, in := range inputs {
		assert.NoError(t, ValidateRecord(parsing.ParseResumeText(in)), "input %q", in)
	}
}

func TestValidateRecord_Nil(t *testing.T) {
	var validationErr *ValidationError
	require.True(t, errors.As(ValidateRecord(nil), &validationErr))
}

func TestValidateRecordJSON_MissingField(t *testing.T) {
	err := ValidateRecordJSON([]byte(`{"name": "Jane"}`))

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Greater(t, len(validationErr.Errors), 1)
	assert.Contains(t, err.Error(), "experiences")
}

func TestValidateRecordJSON_NullArray(t *testing.T) {
	record := types.NewParsedResumeRecord()
	record.Experiences = nil

	err := ValidateRecord(record)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "experiences", validationErr.Errors[0].Field)
}

func TestValidateRecordJSON_BadEntryID(t *testing.T) {
	record := types.NewParsedResumeRecord()
	record.Education = []types.EducationEntry{{ID: 0, School: "State University"}}

	err := ValidateRecord(record)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Contains(t, validationErr.Errors[0].Field, "education.0.id")
}

func TestValidateRecordJSON_Malformed(t *testing.T) {
	var validationErr *ValidationError
	require.True(t, errors.As(ValidateRecordJSON([]byte(`{not json`)), &validationErr))
}

func TestRecordSchema_Embedded(t *testing.T) {
	assert.Contains(t, RecordSchema(), `"ParsedResumeRecord"`)
}

func TestValidateJSON_ValidJSON(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "schema.json", personSchema)
	jsonPath := writeFile(t, dir, "doc.json", `{"name": "Jane", "age": 30}`)

	assert.NoError(t, ValidateJSON(schemaPath, jsonPath))
}

func TestValidateJSON_InvalidJSON_WrongType(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "schema.json", personSchema)
	jsonPath := writeFile(t, dir, "doc.json", `{"name": "Jane", "age": "thirty"}`)

	err := ValidateJSON(schemaPath, jsonPath)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.Equal(t, "age", validationErr.Errors[0].Field)
}

func TestValidateJSON_NonExistentFiles(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "schema.json", personSchema)

	err := ValidateJSON(filepath.Join(dir, "missing.json"), schemaPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	err = ValidateJSON(schemaPath, filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSONString(t *testing.T) {
	assert.NoError(t, ValidateJSONString(personSchema, `{"name": "Jane", "age": 30}`))

	err := ValidateJSONString(personSchema, `{"name": "Jane"}`)
	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "(root)", validationErr.Errors[0].Field)
}

func TestValidateJSONString_InvalidSchema(t *testing.T) {
	err := ValidateJSONString(`{"type": 12}`, `{}`)

	var loadErr *SchemaLoadError
	require.True(t, errors.As(err, &loadErr))
}
