// Where: cli/internal/infra/schema/schema.go
// What: Embedded JSON schemas for generated deployment documents.
// Why: Check rendered output against a machine-readable contract before writing it.
package schema

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemaFS embed.FS

const (
	wranglerSchema = "wrangler.schema.json"
	samSchema      = "sam.schema.json"
)

type compiled struct {
	once   sync.Once
	schema *jsonschema.Schema
	err    error
}

var schemas = map[string]*compiled{
	wranglerSchema: {},
	samSchema:      {},
}

func loadSchema(name string) (*jsonschema.Schema, error) {
	entry, ok := schemas[name]
	if !ok {
		return nil, errors.Newf("unknown schema %s", name)
	}
	entry.once.Do(func() {
		payload, err := schemaFS.ReadFile("schemas/" + name)
		if err != nil {
			entry.err = errors.Wrapf(err, "read schema %s", name)
			return
		}
		url := "mem://schemas/" + name
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(url, bytes.NewReader(payload)); err != nil {
			entry.err = errors.Wrapf(err, "add schema %s", name)
			return
		}
		entry.schema, entry.err = compiler.Compile(url)
	})
	return entry.schema, entry.err
}

// validateJSON checks a JSON document against the named schema.
func validateJSON(name string, jsonData []byte) error {
	sch, err := loadSchema(name)
	if err != nil {
		return err
	}
	var document any
	if err := json.Unmarshal(jsonData, &document); err != nil {
		return errors.Wrap(err, "decode json")
	}
	if err := sch.Validate(document); err != nil {
		return errors.Wrap(err, "schema validation failed")
	}
	return nil
}

// Mismatch reports a generated document that does not describe what was derived.
type Mismatch struct {
	Field string
	Want  string
	Got   string
}

func (m *Mismatch) Error() string {
	return fmt.Sprintf("%s: expected %q, got %q", m.Field, m.Want, m.Got)
}
