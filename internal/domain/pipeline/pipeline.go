// Where: cli/internal/domain/pipeline/pipeline.go
// What: Ingestion pipeline settings shared by every deployment target.
// Why: Both generated documents configure the same runtime through env vars.
package pipeline

import (
	"sort"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/otlp2parquet/cli/internal/meta"
)

const (
	DefaultBatchMaxRows    = 200000
	DefaultBatchMaxAgeSecs = 60
	DefaultLogLevel        = "info"

	maxBatchRows    = 10_000_000
	maxBatchAgeSecs = 3600
)

var logLevels = []string{"error", "warn", "info", "debug", "trace"}

// Settings controls batching and logging of the deployed pipeline.
type Settings struct {
	BatchMaxRows    int
	BatchMaxAgeSecs int
	LogLevel        string
}

// WithDefaults fills unset fields with built-in defaults.
func (s Settings) WithDefaults() Settings {
	if s.BatchMaxRows == 0 {
		s.BatchMaxRows = DefaultBatchMaxRows
	}
	if s.BatchMaxAgeSecs == 0 {
		s.BatchMaxAgeSecs = DefaultBatchMaxAgeSecs
	}
	s.LogLevel = strings.ToLower(strings.TrimSpace(s.LogLevel))
	if s.LogLevel == "" {
		s.LogLevel = DefaultLogLevel
	}
	return s
}

// Validate checks ranges after defaults have been applied.
func (s Settings) Validate() error {
	if s.BatchMaxRows < 1 || s.BatchMaxRows > maxBatchRows {
		return errors.Newf("--batch-max-rows must be between 1 and %d, got %d", maxBatchRows, s.BatchMaxRows)
	}
	if s.BatchMaxAgeSecs < 1 || s.BatchMaxAgeSecs > maxBatchAgeSecs {
		return errors.Newf("--batch-max-age must be between 1 and %d seconds, got %d", maxBatchAgeSecs, s.BatchMaxAgeSecs)
	}
	for _, level := range logLevels {
		if s.LogLevel == level {
			return nil
		}
	}
	return errors.Newf("--log-level must be one of %s, got %q", strings.Join(logLevels, ", "), s.LogLevel)
}

// EnvVar is a single runtime environment variable.
type EnvVar struct {
	Name  string
	Value string
}

// Env returns the runtime variables for these settings plus extra, sorted by name.
func (s Settings) Env(extra map[string]string) []EnvVar {
	vars := map[string]string{
		Key("BATCH_MAX_ROWS"):     strconv.Itoa(s.BatchMaxRows),
		Key("BATCH_MAX_AGE_SECS"): strconv.Itoa(s.BatchMaxAgeSecs),
		Key("LOG_LEVEL"):          s.LogLevel,
	}
	for k, v := range extra {
		vars[k] = v
	}
	out := make([]EnvVar, 0, len(vars))
	for k, v := range vars {
		out = append(out, EnvVar{Name: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Key prefixes a runtime variable name with the product prefix.
func Key(suffix string) string {
	return meta.EnvPrefix + "_" + suffix
}
