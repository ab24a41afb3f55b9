package opencli

import (
	"bytes"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// ToJSON serializes the document as compact JSON.
func (o *OpenCli) ToJSON() ([]byte, error) {
	return encodeJSON(o, "")
}

// ToJSONIndent serializes the document as JSON indented with two spaces.
func (o *OpenCli) ToJSONIndent() ([]byte, error) {
	return encodeJSON(o, "  ")
}

// encodeJSON encodes with HTML escaping off so schema names like
// "Response<User>" appear literally.
func encodeJSON(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, Errorf(CodeParse, "encode json: %v", err)
	}
	// Encoder appends a trailing newline; keep it for file output.
	return buf.Bytes(), nil
}

// ToYAML serializes the document as YAML indented with two spaces.
func (o *OpenCli) ToYAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(o); err != nil {
		return nil, Errorf(CodeParse, "encode yaml: %v", err)
	}
	if err := enc.Close(); err != nil {
		return nil, Errorf(CodeParse, "encode yaml: %v", err)
	}
	return buf.Bytes(), nil
}

// ParseDocument parses a document from JSON or YAML, sniffing the format
// from the first non-blank byte.
func ParseDocument(data []byte) (*OpenCli, error) {
	var doc OpenCli
	if looksLikeJSON(data) {
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, Errorf(CodeParse, "parse json: %v", err)
		}
		return &doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, Errorf(CodeParse, "parse yaml: %v", err)
	}
	return &doc, nil
}

// looksLikeJSON reports whether data starts with a JSON object or array
// after leading whitespace.
func looksLikeJSON(data []byte) bool {
	trimmed := strings.TrimLeft(string(data), " \t\r\n")
	return len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[')
}
