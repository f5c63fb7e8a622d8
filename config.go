package psuutils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is a parsed configuration document. The zero Document is empty.
type Document struct {
	fields map[string]json.RawMessage
}

// NewDocument parses raw JSON. It returns an error unless raw is a JSON object.
func NewDocument(raw []byte) (Document, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Document{}, err
	}
	if fields == nil {
		return Document{}, fmt.Errorf("document is not an object")
	}
	return Document{fields: fields}, nil
}

func newYAMLDocument(raw []byte) (Document, error) {
	var values map[string]any
	if err := yaml.Unmarshal(raw, &values); err != nil {
		return Document{}, err
	}
	if values == nil {
		return Document{}, fmt.Errorf("document is not a mapping")
	}
	fields := make(map[string]json.RawMessage, len(values))
	for k, v := range values {
		b, err := json.Marshal(v)
		if err != nil {
			return Document{}, fmt.Errorf("key %s: %w", k, err)
		}
		fields[k] = b
	}
	return Document{fields: fields}, nil
}

// LoadDocument reads the document at path. Open and parse failures are
// logged and yield an empty Document and false; a document that parsed,
// even "{}", yields true.
func LoadDocument(path string, logger Logger) (Document, bool) {
	if logger == nil {
		logger = NopLogger()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		logger.Error("unable to open file", "path", path, "err", err)
		return Document{}, false
	}

	var doc Document
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		doc, err = newYAMLDocument(raw)
	default:
		doc, err = NewDocument(raw)
	}
	if err != nil {
		logger.Error("failed to parse config", "path", path, "err", err)
		return Document{}, false
	}
	return doc, true
}

func (d Document) IsEmpty() bool { return len(d.fields) == 0 }

func (d Document) Has(key string) bool {
	_, ok := d.fields[key]
	return ok
}

// Keys returns the top-level keys in sorted order.
func (d Document) Keys() []string {
	keys := make([]string, 0, len(d.fields))
	for k := range d.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Decode unmarshals the value under key into v. A missing key leaves v untouched.
func (d Document) Decode(key string, v any) error {
	raw, ok := d.fields[key]
	if !ok {
		return nil
	}
	return json.Unmarshal(raw, v)
}
