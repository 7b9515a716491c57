// Where: cli/internal/command/app.go
// What: CLI entrypoint logic.
// Why: Provide a testable command dispatcher.
package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/otlp2parquet/cli/internal/infra/envutil"
	"github.com/otlp2parquet/cli/internal/infra/interaction"
	"github.com/otlp2parquet/cli/internal/infra/logging"
	"github.com/otlp2parquet/cli/internal/meta"
	"github.com/otlp2parquet/cli/internal/usecase/create"
	"github.com/otlp2parquet/cli/internal/version"
)

// Dependencies holds all injected dependencies required for CLI command execution.
// Generated documents go to Out; messages go to Out when a file was written
// and to ErrOut when the document itself went to Out.
type Dependencies struct {
	Context      context.Context
	Out          io.Writer
	ErrOut       io.Writer
	In           *os.File
	Prompter     interaction.Prompter
	Getwd        func() (string, error)
	NewGenerator func(stdout io.Writer) *create.Generator
}

// CLI defines the command-line interface structure parsed by Kong.
// It contains global flags and all subcommand definitions.
type CLI struct {
	EnvFile string     `name:"env-file" help:"Path to .env file (default: ./.env when present)"`
	Config  string     `name:"config" env:"OTLP2PARQUET_CONFIG" help:"Path to defaults file (default: nearest .otlp2parquet/config.yaml)"`
	Verbose bool       `short:"v" help:"Verbose diagnostic output on stderr"`
	NoEmoji bool       `name:"no-emoji" env:"OTLP2PARQUET_NO_EMOJI" help:"Disable emoji output"`
	Create  CreateCmd  `cmd:"" help:"Generate a deployment configuration"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

type (
	// CreateCmd groups the per-platform generators.
	CreateCmd struct {
		Cloudflare CloudflareCmd `cmd:"" name:"cloudflare" aliases:"cf" help:"Generate wrangler.toml for Cloudflare Workers + R2"`
		AWS        AWSCmd        `cmd:"" name:"aws" help:"Generate a SAM template.yaml for AWS Lambda + S3 / S3 Tables"`
	}

	VersionCmd struct{}
)

// Run is the main entry point for CLI command execution.
// It parses the command-line arguments, identifies the requested command,
// and dispatches to the appropriate handler. It returns the process exit code.
func Run(args []string, deps Dependencies) int {
	deps = deps.withDefaults()
	errUI := newUI(deps.ErrOut, true)

	// Handle no arguments: show usage
	if len(args) == 0 {
		return runNoArgs(deps.Out)
	}

	// Load the env file before parsing so kong env tags see its values.
	envFile, err := envutil.LoadEnvFile(envutil.FlagValue(args, "env-file"))
	if err != nil {
		errUI.Warn(fmt.Sprintf("Warning: %v", err))
	}

	cli := CLI{}
	parser, err := kong.New(&cli,
		kong.Name(cliName()),
		kong.Description(meta.AppName+" deployment configuration generator"),
		kong.Writers(deps.Out, deps.ErrOut),
	)
	if err != nil {
		return exitWithError(errUI, err)
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		return handleParseError(err, deps)
	}

	logger := logging.Setup(deps.ErrOut, cli.Verbose)
	if envFile != "" {
		logger.Debug("loaded env file", "path", envFile)
	}

	command := ctx.Command()
	if exitCode, handled := dispatchCommand(command, cli, deps); handled {
		return exitCode
	}

	errUI.Warn("unknown command")
	return 1
}

func (d Dependencies) withDefaults() Dependencies {
	if d.Context == nil {
		d.Context = context.Background()
	}
	if d.Out == nil {
		d.Out = os.Stdout
	}
	if d.ErrOut == nil {
		d.ErrOut = os.Stderr
	}
	if d.Getwd == nil {
		d.Getwd = os.Getwd
	}
	if d.NewGenerator == nil {
		d.NewGenerator = func(stdout io.Writer) *create.Generator {
			g := create.NewGenerator()
			g.Stdout = stdout
			return g
		}
	}
	return d
}

type commandHandler func(CLI, Dependencies) int

func dispatchCommand(command string, cli CLI, deps Dependencies) (int, bool) {
	exactHandlers := map[string]commandHandler{
		"create cloudflare": runCreateCloudflare,
		"create aws":        runCreateAWS,
		"version":           runVersion,
	}

	if handler, ok := exactHandlers[command]; ok {
		return handler(cli, deps), true
	}

	return 1, false
}

// runVersion prints the version information of the CLI.
func runVersion(_ CLI, deps Dependencies) int {
	newUI(deps.Out, false).Info(version.GetVersion())
	return 0
}

// runNoArgs handles the case when the CLI is invoked without arguments.
func runNoArgs(out io.Writer) int {
	ui := newUI(out, false)
	cmd := cliName()
	ui.Info("Usage:")
	ui.Info(fmt.Sprintf("  %s create cloudflare --name <project> [flags]", cmd))
	ui.Info(fmt.Sprintf("  %s create aws --stack-name <stack> [flags]", cmd))
	ui.Info("")
	ui.Info(fmt.Sprintf("Try: %s create --help", cmd))
	return 0
}

// handleParseError provides user-friendly error messages for parse failures.
func handleParseError(err error, deps Dependencies) int {
	ui := newUI(deps.ErrOut, true)
	msg := err.Error()
	cmd := cliName()
	if strings.Contains(msg, "expected string value") || strings.Contains(msg, "expected int value") {
		switch {
		case strings.Contains(msg, "--output"):
			ui.Warn("`-o/--output` expects a value. Provide a file path, or - for stdout.")
			ui.Info(fmt.Sprintf("Example: %s create aws --stack-name otlp-prod -o -", cmd))
			return exitArgument
		case strings.Contains(msg, "--env-file"):
			ui.Warn("`--env-file` expects a value. Provide a file path.")
			ui.Info(fmt.Sprintf("Example: %s --env-file .env.prod create cloudflare", cmd))
			return exitArgument
		}
	}
	ui.Error(msg, fmt.Sprintf("run %s create --help for usage", cmd))
	return exitArgument
}
