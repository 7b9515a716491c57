// Where: cli/internal/infra/logging/logging.go
// What: Structured diagnostic logger setup.
// Why: Keep debug output on stderr so generated documents on stdout stay clean.
package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/otlp2parquet/cli/internal/meta"
)

// Setup installs the process-wide logger. Debug records are emitted only when
// verbose is set; warnings and errors are always shown.
func Setup(out io.Writer, verbose bool) *log.Logger {
	if out == nil {
		out = os.Stderr
	}
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(out, log.Options{
		Prefix:          meta.Slug,
		Level:           level,
		ReportTimestamp: verbose,
	})
	log.SetDefault(logger)
	return logger
}
