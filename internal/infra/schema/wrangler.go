// Where: cli/internal/infra/schema/wrangler.go
// What: wrangler.toml parsing and validation.
// Why: A manifest that fails to parse or binds the wrong bucket must never reach disk.
package schema

import (
	"encoding/json"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
)

// WranglerExpect lists the derived names the manifest must carry.
type WranglerExpect struct {
	WorkerName string
	Binding    string
	BucketName string
}

type wranglerManifest struct {
	Name      string `toml:"name"`
	R2Buckets []struct {
		Binding    string `toml:"binding"`
		BucketName string `toml:"bucket_name"`
	} `toml:"r2_buckets"`
}

// ValidateWrangler parses content as TOML, checks it against the wrangler
// schema, and verifies the worker is bound to the expected bucket.
func ValidateWrangler(content []byte, want WranglerExpect) error {
	var document map[string]any
	if _, err := toml.Decode(string(content), &document); err != nil {
		return errors.Wrap(err, "parse wrangler.toml")
	}
	jsonData, err := json.Marshal(document)
	if err != nil {
		return errors.Wrap(err, "encode wrangler.toml as json")
	}
	if err := validateJSON(wranglerSchema, jsonData); err != nil {
		return err
	}

	var manifest wranglerManifest
	if _, err := toml.Decode(string(content), &manifest); err != nil {
		return errors.Wrap(err, "decode wrangler.toml")
	}
	if manifest.Name != want.WorkerName {
		return &Mismatch{Field: "name", Want: want.WorkerName, Got: manifest.Name}
	}
	for _, bucket := range manifest.R2Buckets {
		if bucket.Binding != want.Binding {
			continue
		}
		if bucket.BucketName != want.BucketName {
			return &Mismatch{Field: "r2_buckets." + want.Binding, Want: want.BucketName, Got: bucket.BucketName}
		}
		return nil
	}
	return &Mismatch{Field: "r2_buckets.binding", Want: want.Binding}
}
