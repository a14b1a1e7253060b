package tool

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// SchemaValidator turns a JSON schema into an InputValidator so tools can
// declare their input contract instead of hand-rolling field checks. Embed it
// in a tool implementation to pick up the capability:
//
//	type lookupTool struct {
//		*tool.SchemaValidator
//	}
//
//	func newLookupTool() (*lookupTool, error) {
//		v, err := tool.NewSchemaValidator(map[string]any{
//			"type":     "object",
//			"required": []any{"player_id"},
//			"properties": map[string]any{
//				"player_id": map[string]any{"type": "string"},
//			},
//		})
//		...
//	}
type SchemaValidator struct {
	schema *gojsonschema.Schema
}

// NewSchemaValidator compiles the given schema document. The schema is any
// JSON-serializable value, typically a map[string]any literal.
func NewSchemaValidator(schema any) (*SchemaValidator, error) {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(schema))
	if err != nil {
		return nil, fmt.Errorf("failed to compile input schema: %w", err)
	}

	return &SchemaValidator{schema: compiled}, nil
}

// MustSchemaValidator is NewSchemaValidator that panics on a bad schema.
// For use with compile-time-constant schemas in tool constructors.
func MustSchemaValidator(schema any) *SchemaValidator {
	v, err := NewSchemaValidator(schema)
	if err != nil {
		panic(err)
	}
	return v
}

// ValidateInput implements InputValidator by checking the input document
// against the compiled schema.
func (v *SchemaValidator) ValidateInput(input map[string]any) ValidationResult {
	result, err := v.schema.Validate(gojsonschema.NewGoLoader(input))
	if err != nil {
		return Invalid(FieldError{
			Parameter: "",
			Message:   fmt.Sprintf("input is not a valid document: %v", err),
		})
	}

	if result.Valid() {
		return Valid()
	}

	fieldErrs := make([]FieldError, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		fe := FieldError{
			Parameter: re.Field(),
			Message:   re.Description(),
		}
		if expected, ok := re.Details()["expected"].(string); ok {
			fe.ExpectedType = expected
		}
		if given, ok := re.Details()["given"].(string); ok {
			fe.ReceivedType = given
		}
		fieldErrs = append(fieldErrs, fe)
	}

	return Invalid(fieldErrs...)
}

// Ensure SchemaValidator satisfies the capability at compile time.
var _ InputValidator = (*SchemaValidator)(nil)
