// Where: cli/cmd/otlp2parquet/cli.go
// What: CLI dependency wiring helpers.
// Why: Centralize construction for testability.
package main

import (
	"context"
	"io"
	"os"

	"github.com/otlp2parquet/cli/internal/command"
	"github.com/otlp2parquet/cli/internal/infra/awsregion"
	"github.com/otlp2parquet/cli/internal/infra/fileops"
	"github.com/otlp2parquet/cli/internal/infra/interaction"
	"github.com/otlp2parquet/cli/internal/usecase/create"
)

var (
	getwd     = os.Getwd
	newRegion = func() create.RegionResolver { return awsregion.New() }
)

// buildDependencies constructs all runtime dependencies required by the CLI.
func buildDependencies(ctx context.Context) command.Dependencies {
	return command.Dependencies{
		Context:  ctx,
		Out:      os.Stdout,
		ErrOut:   os.Stderr,
		In:       os.Stdin,
		Prompter: interaction.HuhPrompter{},
		Getwd:    getwd,
		NewGenerator: func(stdout io.Writer) *create.Generator {
			return &create.Generator{
				Stdout:    stdout,
				Regions:   newRegion(),
				WriteFile: fileops.WriteFileAtomic,
			}
		},
	}
}
