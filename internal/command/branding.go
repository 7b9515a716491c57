// Where: cli/internal/command/branding.go
// What: Brand-aware CLI naming.
// Why: Keep user-facing command names consistent when the binary is renamed.
package command

import (
	"strings"

	"github.com/otlp2parquet/cli/internal/infra/envutil"
	"github.com/otlp2parquet/cli/internal/meta"
)

func cliName() string {
	name := envutil.GetHostEnv("CLI_NAME")
	if name == "" {
		name = strings.TrimSpace(meta.Slug)
	}
	if name == "" {
		name = "otlp2parquet"
	}
	return name
}
