// Where: cli/internal/meta/meta.go
// What: CLI-local metadata constants.
// Why: Keep product naming and file layout in one place.
package meta

const (
	// Project Identity
	AppName   = "otlp2parquet"
	Slug      = "otlp2parquet"
	EnvPrefix = "OTLP2PARQUET"

	// CreateEnvPrefix namespaces the create flags' environment variables.
	// The bare EnvPrefix belongs to the runtime variables written into
	// generated documents.
	CreateEnvPrefix = EnvPrefix + "_CREATE"

	// Directory Layout
	HomeDir        = ".otlp2parquet"
	ConfigFileName = "config.yaml"

	// Default artifact names
	WranglerFileName    = "wrangler.toml"
	SAMTemplateFileName = "template.yaml"

	// StdoutPath selects standard output instead of a file.
	StdoutPath = "-"
)
