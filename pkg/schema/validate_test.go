package schema_test

import (
	"testing"

	"github.com/aretw0/reattach/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validate(t *testing.T, doc map[string]any) error {
	t.Helper()
	v, err := schema.NewValidator()
	require.NoError(t, err)
	raw, err := schema.Normalize(doc)
	require.NoError(t, err)
	return v.Validate(raw)
}

func TestValidate_Valid(t *testing.T) {
	err := validate(t, map[string]any{
		"id": "doc",
		"root": map[string]any{
			"id":   "page",
			"type": "PAGE",
			"children": []any{
				map[string]any{
					"id": "f1", "type": "FRAME", "name": "Card", "width": 100, "height": 40,
					"fills":   []any{map[string]any{"type": "SOLID", "color": map[string]any{"r": 1, "g": 0, "b": 0, "a": 1}}},
					"opacity": 0.5,
				},
				map[string]any{
					"id": "t1", "type": "TEXT",
					"text": map[string]any{"characters": "Hi", "style": map[string]any{"fontName": map[string]any{"family": "Inter", "style": "Bold"}}},
				},
			},
		},
		"selection": []any{"f1"},
	})
	assert.NoError(t, err)
}

func TestValidate_Violations(t *testing.T) {
	err := validate(t, map[string]any{
		"id": "doc",
		"root": map[string]any{
			"id":   "page",
			"type": "PAGE",
			"children": []any{
				map[string]any{"id": "f1", "type": "BLOB"},
				map[string]any{"id": "f2", "type": "FRAME", "opacity": 3},
			},
		},
	})
	require.Error(t, err)

	errs := schema.ValidationErrors(err)
	require.NotEmpty(t, errs)

	var paths []string
	for _, e := range errs {
		paths = append(paths, e.(*schema.ValidationError).Path)
	}
	assert.Contains(t, paths, "/root/children/0/type")
	assert.Contains(t, paths, "/root/children/1/opacity")
}

func TestValidate_MissingRoot(t *testing.T) {
	err := validate(t, map[string]any{"id": "doc"})
	require.Error(t, err)
	assert.NotEmpty(t, schema.ValidationErrors(err))
}

func TestValidate_UnknownField(t *testing.T) {
	err := validate(t, map[string]any{
		"id":   "doc",
		"root": map[string]any{"id": "page", "type": "PAGE", "colour": "red"},
	})
	assert.Error(t, err)
}

func TestAggregateError_Message(t *testing.T) {
	single := &schema.AggregateError{Errors: []error{&schema.ValidationError{Path: "/id", Reason: "missing"}}}
	assert.Equal(t, "/id: missing", single.Error())

	multi := &schema.AggregateError{Errors: []error{
		&schema.ValidationError{Path: "/a", Reason: "x"},
		&schema.ValidationError{Path: "/b", Reason: "y"},
	}}
	assert.Contains(t, multi.Error(), "2 validation errors")
	assert.Nil(t, schema.ValidationErrors(assert.AnError))
}
