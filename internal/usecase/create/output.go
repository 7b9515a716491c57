// Where: cli/internal/usecase/create/output.go
// What: Output destination checks and writes.
// Why: Never clobber an existing document by accident, never leave a partial one.
package create

import (
	"context"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/otlp2parquet/cli/internal/domain/failure"
	"github.com/otlp2parquet/cli/internal/infra/fileops"
	"github.com/otlp2parquet/cli/internal/meta"
)

func isStdout(path string) bool {
	return path == meta.StdoutPath
}

func checkOutput(platform, path string, force bool) error {
	if isStdout(path) || force {
		return nil
	}
	if fileops.FileOrDirExists(path) {
		return failure.WithHint(
			failure.Argumentf(platform, "check output", "%s already exists", path),
			"pass --force to overwrite it, or --output to choose another path",
		)
	}
	return nil
}

func (g *Generator) emit(ctx context.Context, platform, path string, doc []byte) error {
	if err := ctx.Err(); err != nil {
		return failure.IO(platform, "write output", err)
	}
	if isStdout(path) {
		out := g.Stdout
		if out == nil {
			out = os.Stdout
		}
		if _, err := out.Write(doc); err != nil {
			return failure.IO(platform, "write stdout", err)
		}
		return nil
	}
	write := g.WriteFile
	if write == nil {
		write = fileops.WriteFileAtomic
	}
	if err := write(path, doc, fileops.DefaultFileMode); err != nil {
		return failure.IO(platform, "write "+path, errors.Wrap(err, "write document"))
	}
	return nil
}
