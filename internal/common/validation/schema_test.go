package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
	"type": "object",
	"properties": {
		"name": {"type": "string"},
		"count": {"type": ["integer", "null"]}
	},
	"required": ["name"]
}`

func TestSchema_ValidateJSON(t *testing.T) {
	schema := MustSchema(testSchema)

	tests := []struct {
		name          string
		doc           string
		expectedValid bool
		expectedField string
	}{
		{name: "valid document", doc: `{"name":"a","count":2}`, expectedValid: true},
		{name: "null allowed", doc: `{"name":"a","count":null}`, expectedValid: true},
		{name: "missing required", doc: `{"count":1}`, expectedValid: false, expectedField: "(root)"},
		{name: "wrong type", doc: `{"name":1}`, expectedValid: false, expectedField: "name"},
		{name: "not an object", doc: `["a"]`, expectedValid: false, expectedField: "(root)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := schema.ValidateJSON([]byte(tt.doc))
			require.NoError(t, err)
			assert.Equal(t, tt.expectedValid, result.Valid)
			if !tt.expectedValid {
				require.NotEmpty(t, result.Errors)
				assert.True(t, result.HasErrors(tt.expectedField), result.GetErrorMessages())
			}
		})
	}
}

func TestSchema_ValidateJSON_NotJSON(t *testing.T) {
	schema := MustSchema(testSchema)

	_, err := schema.ValidateJSON([]byte("sure, here you go"))
	assert.Error(t, err)
}

func TestSchema_ValidateValue(t *testing.T) {
	schema := MustSchema(testSchema)

	result, err := schema.ValidateValue(map[string]interface{}{"name": "a"})
	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestNewSchema_Invalid(t *testing.T) {
	_, err := NewSchema(`{"type": "nonsense"}`)
	assert.Error(t, err)

	assert.Panics(t, func() { MustSchema(`not a schema`) })
}

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("agent@example.com"))
	assert.False(t, ValidateEmail("agent@"))
	assert.False(t, ValidateEmail(""))
}

func TestValidatePhone(t *testing.T) {
	assert.True(t, ValidatePhone("+13055550100"))
	assert.False(t, ValidatePhone("3055550100"))
	assert.False(t, ValidatePhone("+1 305"))
}
