package schema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed document.schema.json
var documentSchema []byte

const documentSchemaURL = "https://reattach.dev/schemas/document.json"

// Validator checks documents against the embedded schema.
// It is safe for concurrent use.
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator compiles the document schema.
func NewValidator() (*Validator, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(documentSchema))
	if err != nil {
		return nil, fmt.Errorf("unmarshal document schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(documentSchemaURL, doc); err != nil {
		return nil, fmt.Errorf("add document schema resource: %w", err)
	}
	s, err := c.Compile(documentSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile document schema: %w", err)
	}
	return &Validator{schema: s}, nil
}

// Validate checks a normalised document value. Violations are returned as an
// *AggregateError listing each offending location.
func (v *Validator) Validate(doc any) error {
	err := v.schema.Validate(doc)
	if err == nil {
		return nil
	}

	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	var errs []error
	collect(verr, &errs)
	if len(errs) == 0 {
		errs = append(errs, &ValidationError{Path: "/", Reason: verr.Error()})
	}
	return &AggregateError{Errors: errs}
}

// collect walks a ValidationError tree and keeps its leaves.
func collect(verr *jsonschema.ValidationError, out *[]error) {
	if len(verr.Causes) == 0 {
		*out = append(*out, &ValidationError{
			Path:   "/" + strings.Join(verr.InstanceLocation, "/"),
			Reason: verr.BasicOutput().Error.String(),
		})
		return
	}
	for _, cause := range verr.Causes {
		collect(cause, out)
	}
}

// Normalize round-trips v through JSON so that it has the shape the
// validator expects (maps of string keys, json.Number for numbers).
func Normalize(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return jsonschema.UnmarshalJSON(bytes.NewReader(b))
}
