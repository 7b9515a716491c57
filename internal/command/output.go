// Where: cli/internal/command/output.go
// What: Output helpers for command adapters.
// Why: Centralize UserInterface usage and result reporting.
package command

import (
	"fmt"
	"io"

	"github.com/otlp2parquet/cli/internal/infra/ui"
	"github.com/otlp2parquet/cli/internal/usecase/create"
)

func newUI(out io.Writer, emoji bool) ui.UserInterface {
	return ui.NewUI(out, emoji)
}

// report prints the outcome of a create run. When the document went to
// stdout, everything else goes to stderr so the document can be piped.
func report(cli CLI, deps Dependencies, res create.Result, err error) int {
	emoji := !cli.NoEmoji
	if err != nil {
		return exitWithError(newUI(deps.ErrOut, emoji), err)
	}

	out := deps.Out
	if res.ToStdout() {
		out = deps.ErrOut
	}
	console := newUI(out, emoji)
	if !res.ToStdout() {
		console.Success(fmt.Sprintf("Wrote %s", res.Output))
		console.Block("📦", "Resources", res.Resources)
	}
	console.Steps("🚀", "Next steps", res.NextSteps)
	return 0
}
