package serialization

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// Format identifies the on-disk encoding of a task document
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

const schemaURL = "https://mtodo.dev/schema/todos.schema.json"

//go:embed schema/todos.schema.json
var documentSchema []byte

// ErrEmptyDocument is returned when decoding blank input
var ErrEmptyDocument = errors.New("document is empty")

// FormatFromPath picks the encoding from a file extension. Anything that is
// not .yaml or .yml is treated as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// DocumentCodec encodes and decodes task documents and validates decoded
// documents against the embedded schema
type DocumentCodec struct {
	format Format
	schema *jsonschema.Schema
}

// NewDocumentCodec creates a codec for the given format
func NewDocumentCodec(format Format) (*DocumentCodec, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, bytes.NewReader(documentSchema)); err != nil {
		return nil, fmt.Errorf("failed to load document schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile document schema: %w", err)
	}

	return &DocumentCodec{format: format, schema: schema}, nil
}

// Format returns the codec's encoding
func (c *DocumentCodec) Format() Format {
	return c.format
}

// Encode serializes v. JSON output is indented and newline terminated.
func (c *DocumentCodec) Encode(v interface{}) ([]byte, error) {
	switch c.format {
	case FormatYAML:
		var buf bytes.Buffer
		encoder := yaml.NewEncoder(&buf)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return nil, fmt.Errorf("failed to marshal yaml document: %w", err)
		}
		if err := encoder.Close(); err != nil {
			return nil, fmt.Errorf("failed to marshal yaml document: %w", err)
		}
		return buf.Bytes(), nil
	default:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal json document: %w", err)
		}
		return append(data, '\n'), nil
	}
}

// Decode parses data into v. The document is first normalised to JSON,
// a bare top-level list is wrapped as {"todos": [...]}, and the result is
// validated against the schema before being unmarshalled into v.
func (c *DocumentCodec) Decode(data []byte, v interface{}) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return ErrEmptyDocument
	}

	var generic interface{}
	switch c.format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &generic); err != nil {
			return fmt.Errorf("failed to parse yaml document: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &generic); err != nil {
			return fmt.Errorf("failed to parse json document: %w", err)
		}
	}

	if list, ok := generic.([]interface{}); ok {
		generic = map[string]interface{}{"todos": list}
	}

	normalised, err := json.Marshal(generic)
	if err != nil {
		return fmt.Errorf("failed to normalise document: %w", err)
	}

	if err := c.Validate(normalised); err != nil {
		return err
	}

	if err := json.Unmarshal(normalised, v); err != nil {
		return fmt.Errorf("failed to decode document: %w", err)
	}
	return nil
}

// Validate checks a JSON document against the schema
func (c *DocumentCodec) Validate(jsonData []byte) error {
	var obj interface{}
	if err := json.Unmarshal(jsonData, &obj); err != nil {
		return fmt.Errorf("failed to parse document for validation: %w", err)
	}
	if err := c.schema.Validate(obj); err != nil {
		return &SchemaError{Violations: collectViolations(err)}
	}
	return nil
}

// SchemaError lists where a document breaks the schema
type SchemaError struct {
	Violations []string
}

// Error implements error
func (e *SchemaError) Error() string {
	return "document does not match schema: " + strings.Join(e.Violations, "; ")
}

func collectViolations(err error) []string {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return []string{err.Error()}
	}
	var out []string
	var walk func(*jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			loc := e.InstanceLocation
			if loc == "" {
				loc = "/"
			}
			out = append(out, fmt.Sprintf("%s: %s", loc, e.Message))
			return
		}
		for _, cause := range e.Causes {
			walk(cause)
		}
	}
	walk(ve)
	return out
}
