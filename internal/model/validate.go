package model

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed resume.schema.json
var schemaJSON []byte

var (
	schemaOnce     sync.Once
	compiledSchema *gojsonschema.Schema
	schemaErr      error
)

// Schema returns the raw JSON Schema document so callers (the oracle prompt)
// can quote it verbatim.
func Schema() []byte {
	return schemaJSON
}

func loadSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiledSchema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
	})
	return compiledSchema, schemaErr
}

// ValidateMap validates a generic map against resume.schema.json.
func ValidateMap(m map[string]interface{}) error {
	schema, err := loadSchema()
	if err != nil {
		return fmt.Errorf("load resume schema: %w", err)
	}
	res, err := schema.Validate(gojsonschema.NewGoLoader(m))
	if err != nil {
		return err
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("schema validation failed: %s", strings.Join(msgs, "; "))
}

// DecodeResume turns a raw JSON object into normalized ResumeData: required
// defaults are filled on the map, the map is checked against the schema and
// the result is decoded into the typed model. The caller decides which error
// category a failure belongs to.
func DecodeResume(raw []byte) (*ResumeData, error) {
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("decode resume json: %w", err)
	}
	if m == nil {
		return nil, fmt.Errorf("decode resume json: expected an object, got null")
	}
	m = NormalizeMap(m)
	if err := ValidateMap(m); err != nil {
		return nil, err
	}
	normalized, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("re-encode resume: %w", err)
	}
	var r ResumeData
	if err := json.Unmarshal(normalized, &r); err != nil {
		return nil, fmt.Errorf("decode resume: %w", err)
	}
	return Normalize(&r), nil
}
