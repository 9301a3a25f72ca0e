package file

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/reattach/pkg/domain"
	"github.com/aretw0/reattach/pkg/schema"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Format is a document encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatOf picks the encoding from a file extension. Unknown extensions are YAML.
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// SniffFormat guesses the encoding of inline document text: JSON when it
// starts with '{', YAML otherwise.
func SniffFormat(data []byte) Format {
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		return FormatJSON
	}
	return FormatYAML
}

// LoadDocument reads, validates and decodes a document file.
func LoadDocument(path string) (*domain.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	doc, err := DecodeDocument(data, FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// DecodeDocument validates data against the document schema and decodes it.
func DecodeDocument(data []byte, format Format) (*domain.Document, error) {
	var raw any
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse yaml: %w", err)
		}
	}

	normalized, err := schema.Normalize(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize document: %w", err)
	}

	v, err := schema.NewValidator()
	if err != nil {
		return nil, err
	}
	if err := v.Validate(normalized); err != nil {
		return nil, fmt.Errorf("invalid document: %w", err)
	}

	var doc domain.Document
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Squash:  true,
		Result:  &doc,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(normalized); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}

	if err := doc.Root.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// SaveDocument writes doc to path atomically in the format its extension implies.
func SaveDocument(path string, doc *domain.Document) error {
	data, err := EncodeDocument(doc, FormatOf(path))
	if err != nil {
		return err
	}
	return writeAtomic(path, data)
}

// EncodeDocument serialises doc.
func EncodeDocument(doc *domain.Document, format Format) ([]byte, error) {
	if format == FormatJSON {
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal document: %w", err)
		}
		return append(data, '\n'), nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
