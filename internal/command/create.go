// Where: cli/internal/command/create.go
// What: create cloudflare / create aws command adapters.
// Why: Merge flags, env, defaults file, and prompts into one argument bundle.
package command

import (
	"strings"

	"github.com/charmbracelet/log"
	"github.com/otlp2parquet/cli/internal/domain/aws"
	"github.com/otlp2parquet/cli/internal/domain/cloudflare"
	"github.com/otlp2parquet/cli/internal/domain/failure"
	"github.com/otlp2parquet/cli/internal/domain/names"
	"github.com/otlp2parquet/cli/internal/domain/pipeline"
	"github.com/otlp2parquet/cli/internal/infra/config"
	"github.com/otlp2parquet/cli/internal/infra/interaction"
	"github.com/otlp2parquet/cli/internal/usecase/create"
)

type (
	// PipelineFlags are shared by both generators.
	PipelineFlags struct {
		BatchMaxRows int    `name:"batch-max-rows" env:"OTLP2PARQUET_CREATE_BATCH_MAX_ROWS" help:"Rows buffered before a Parquet file is flushed (default: 200000)"`
		BatchMaxAge  int    `name:"batch-max-age" env:"OTLP2PARQUET_CREATE_BATCH_MAX_AGE" help:"Seconds before a partial batch is flushed (default: 60)"`
		LogLevel     string `name:"log-level" env:"OTLP2PARQUET_CREATE_LOG_LEVEL" help:"Runtime log level: error, warn, info, debug, trace (default: info)"`
	}

	// OutputFlags select where the document goes.
	OutputFlags struct {
		Output string `short:"o" name:"output" env:"OTLP2PARQUET_CREATE_OUTPUT" help:"Output path, or - for stdout"`
		Force  bool   `short:"f" name:"force" help:"Overwrite an existing output file"`
	}

	// CloudflareCmd defines the create cloudflare flags.
	CloudflareCmd struct {
		Name              string        `short:"n" name:"name" env:"OTLP2PARQUET_CREATE_NAME" help:"Worker / project name"`
		Bucket            string        `name:"bucket" env:"OTLP2PARQUET_CREATE_BUCKET" help:"R2 bucket name (default: <name>-data)"`
		AccountID         string        `name:"account-id" env:"OTLP2PARQUET_CREATE_ACCOUNT_ID,CLOUDFLARE_ACCOUNT_ID" help:"Cloudflare account id"`
		Jurisdiction      string        `name:"jurisdiction" env:"OTLP2PARQUET_CREATE_JURISDICTION" help:"R2 jurisdiction: eu or fedramp"`
		Catalog           string        `name:"catalog" env:"OTLP2PARQUET_CREATE_CATALOG" help:"Catalog mode: plain or iceberg (default: plain)"`
		CompatibilityDate string        `name:"compatibility-date" env:"OTLP2PARQUET_CREATE_COMPATIBILITY_DATE" help:"Workers compatibility date (default: 2025-01-01)"`
		Main              string        `name:"main" env:"OTLP2PARQUET_CREATE_MAIN" help:"Worker entry point (default: build/worker/shim.mjs)"`
		BasicAuth         bool          `name:"basic-auth" env:"OTLP2PARQUET_CREATE_BASIC_AUTH" help:"Require HTTP basic auth on ingest"`
		Pipeline          PipelineFlags `embed:""`
		Out               OutputFlags   `embed:""`
	}

	// AWSCmd defines the create aws flags.
	AWSCmd struct {
		StackName     string        `short:"s" name:"stack-name" env:"OTLP2PARQUET_CREATE_STACK_NAME" help:"CloudFormation stack name"`
		Bucket        string        `name:"bucket" env:"OTLP2PARQUET_CREATE_BUCKET" help:"S3 bucket name (default: <stack-name>-data)"`
		Storage       string        `name:"storage" env:"OTLP2PARQUET_CREATE_STORAGE" help:"Storage: s3 or s3tables (default: s3)"`
		TableBucket   string        `name:"table-bucket" env:"OTLP2PARQUET_CREATE_TABLE_BUCKET" help:"S3 Tables bucket (default: <stack-name>-tables)"`
		Namespace     string        `name:"namespace" env:"OTLP2PARQUET_CREATE_NAMESPACE" help:"S3 Tables namespace (default: derived from stack name)"`
		Region        string        `name:"region" env:"OTLP2PARQUET_CREATE_REGION" help:"AWS region (default: AWS shared config, then us-east-1)"`
		Arch          string        `name:"arch" env:"OTLP2PARQUET_CREATE_ARCH" help:"Lambda architecture: arm64 or x86_64 (default: arm64)"`
		Memory        int           `name:"memory" env:"OTLP2PARQUET_CREATE_MEMORY" help:"Lambda memory in MB (default: 512)"`
		Timeout       int           `name:"timeout" env:"OTLP2PARQUET_CREATE_TIMEOUT" help:"Lambda timeout in seconds (default: 30)"`
		CodeURI       string        `name:"code-uri" env:"OTLP2PARQUET_CREATE_CODE_URI" help:"Lambda code location (default: target/lambda/otlp2parquet/)"`
		NoFunctionURL bool          `name:"no-function-url" help:"Do not create a Lambda function URL"`
		AuthType      string        `name:"auth-type" env:"OTLP2PARQUET_CREATE_AUTH_TYPE" help:"Function URL auth: AWS_IAM or NONE (default: AWS_IAM)"`
		LogRetention  int           `name:"log-retention" env:"OTLP2PARQUET_CREATE_LOG_RETENTION" help:"CloudWatch log retention in days (default: 14)"`
		Pipeline      PipelineFlags `embed:""`
		Out           OutputFlags   `embed:""`
	}
)

func (p PipelineFlags) settings() pipeline.Settings {
	return pipeline.Settings{
		BatchMaxRows:    p.BatchMaxRows,
		BatchMaxAgeSecs: p.BatchMaxAge,
		LogLevel:        p.LogLevel,
	}
}

func (c CloudflareCmd) args() cloudflare.Args {
	return cloudflare.Args{
		Name:              c.Name,
		Bucket:            c.Bucket,
		AccountID:         c.AccountID,
		Jurisdiction:      c.Jurisdiction,
		Catalog:           c.Catalog,
		CompatibilityDate: c.CompatibilityDate,
		Main:              c.Main,
		BasicAuth:         c.BasicAuth,
		Pipeline:          c.Pipeline.settings(),
		Output:            c.Out.Output,
		Force:             c.Out.Force,
	}
}

func (c AWSCmd) args(functionURL bool) aws.Args {
	return aws.Args{
		StackName:        c.StackName,
		Bucket:           c.Bucket,
		Storage:          c.Storage,
		TableBucket:      c.TableBucket,
		Namespace:        c.Namespace,
		Region:           c.Region,
		Architecture:     c.Arch,
		MemorySize:       c.Memory,
		Timeout:          c.Timeout,
		CodeURI:          c.CodeURI,
		FunctionURL:      functionURL && !c.NoFunctionURL,
		AuthType:         c.AuthType,
		LogRetentionDays: c.LogRetention,
		Pipeline:         c.Pipeline.settings(),
		Output:           c.Out.Output,
		Force:            c.Out.Force,
	}
}

func runCreateCloudflare(cli CLI, deps Dependencies) int {
	defaults, err := loadDefaults(cloudflare.Platform, cli, deps)
	if err != nil {
		return exitWithError(newUI(deps.ErrOut, !cli.NoEmoji), err)
	}
	args := defaults.ApplyCloudflare(cli.Create.Cloudflare.args())
	if strings.TrimSpace(args.Name) == "" && interaction.CanPrompt(deps.Prompter, deps.In) {
		name, err := deps.Prompter.Input("Worker name", "otlp-demo", validator(names.CloudflareWorker))
		if err != nil {
			return exitWithError(newUI(deps.ErrOut, !cli.NoEmoji), failure.Argument(cloudflare.Platform, "prompt --name", err))
		}
		args.Name = name
	}

	runner := create.NewRunner(deps.NewGenerator(deps.Out))
	res, err := runner.Run(deps.Context, create.Cloudflare{Args: args})
	return report(cli, deps, res, err)
}

func runCreateAWS(cli CLI, deps Dependencies) int {
	defaults, err := loadDefaults(aws.Platform, cli, deps)
	if err != nil {
		return exitWithError(newUI(deps.ErrOut, !cli.NoEmoji), err)
	}
	args := defaults.ApplyAWS(cli.Create.AWS.args(defaults.AWS.FunctionURLEnabled()))
	if strings.TrimSpace(args.StackName) == "" && interaction.CanPrompt(deps.Prompter, deps.In) {
		stack, err := deps.Prompter.Input("Stack name", "otlp-prod", validator(names.CloudFormationStack))
		if err != nil {
			return exitWithError(newUI(deps.ErrOut, !cli.NoEmoji), failure.Argument(aws.Platform, "prompt --stack-name", err))
		}
		args.StackName = stack
	}

	runner := create.NewRunner(deps.NewGenerator(deps.Out))
	res, err := runner.Run(deps.Context, create.AWS{Args: args})
	return report(cli, deps, res, err)
}

func loadDefaults(platform string, cli CLI, deps Dependencies) (config.Defaults, error) {
	cwd, err := deps.Getwd()
	if err != nil {
		return config.Defaults{}, failure.IO(platform, "resolve working directory", err)
	}
	defaults, path, err := config.ResolveDefaults(cli.Config, cwd)
	if err != nil {
		return config.Defaults{}, failure.WithHint(
			failure.Argument(platform, "load defaults file", err),
			"fix or remove the file, or pass --config <path>",
		)
	}
	if path != "" {
		log.Debug("loaded defaults file", "path", path)
	}
	return defaults, nil
}

// validator rejects prompt answers the name deriver cannot use.
func validator(kind names.Kind) func(string) error {
	return func(value string) error {
		_, err := names.Derive(value, kind)
		return err
	}
}
