// Where: cli/internal/command/error_helpers.go
// What: Shared CLI error reporting.
// Why: Print failures with their hints and map them to stable exit codes.
package command

import (
	"github.com/otlp2parquet/cli/internal/domain/failure"
	"github.com/otlp2parquet/cli/internal/infra/ui"
)

// exitArgument is returned for command-line usage errors.
const exitArgument = 2

// exitWithError prints err and any attached hints, and returns the exit
// code for its failure kind.
func exitWithError(out ui.UserInterface, err error) int {
	out.Error(err.Error(), failure.Hints(err)...)
	return failure.ExitCode(err)
}
